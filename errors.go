package tty2img

import (
	"fmt"
)

// FontLoadError reports a font file that could not be read or parsed
// while building a Renderer.
type FontLoadError struct {
	Variant Variant
	Path    string
	Err     error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("load %s font %q: %v", e.Variant, e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}

// FontSizeNegotiationError reports that no candidate point size met the
// size policy for the configured grid and pixel cap.
type FontSizeNegotiationError struct {
	Columns, Lines      int
	MaxWidth, MaxHeight int
	Reason              string
}

func (e *FontSizeNegotiationError) Error() string {
	return fmt.Sprintf("negotiate font size for %dx%d cells in %dx%d pixels: %s",
		e.Columns, e.Lines, e.MaxWidth, e.MaxHeight, e.Reason)
}

// ColorFormatError reports a color token that is neither a known name
// nor a valid hex value.
type ColorFormatError struct {
	Token string
	Err   error
}

func (e *ColorFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid color %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("invalid color %q", e.Token)
}

func (e *ColorFormatError) Unwrap() error {
	return e.Err
}

// MissingGlyphWarning describes a character that neither its variant
// nor any fallback family can draw. It is reported to the diagnostic
// sink and never returned as an error.
type MissingGlyphWarning struct {
	Variant Variant
	Rune    rune
}

func (w MissingGlyphWarning) String() string {
	return fmt.Sprintf("missing glyph %q (U+%04X) in %s font and all fallback families",
		w.Rune, w.Rune, w.Variant)
}
