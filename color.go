package tty2img

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// brightNames maps the aixterm "bright" color names a terminal emulator
// reports to their palette index.
var brightNames = map[string]int{
	"brightblack":   8,
	"brightred":     9,
	"brightgreen":   10,
	"brightbrown":   11,
	"brightyellow":  11,
	"brightblue":    12,
	"brightmagenta": 13,
	"brightcyan":    14,
	"brightwhite":   15,
}

// NormalizeColor prefixes bare six digit hex tokens ("ff8800") with
// '#', the form terminal emulators report. Short hex is only accepted
// with an explicit '#', so words like "bad" are never taken as colors.
// Names and already prefixed tokens are returned unchanged.
func NormalizeColor(token string) string {
	if isColorName(token) {
		return token
	}
	if len(token) == 6 && isHexDigits(token) {
		return "#" + token
	}
	return token
}

// ParseColor converts a color token to an opaque RGBA value. Tokens may
// be CSS/terminal color names or hex values, with or without '#'.
// DefaultColor is not accepted here; callers substitute their own
// defaults first.
func ParseColor(token string) (color.RGBA, error) {
	tok := NormalizeColor(strings.TrimSpace(token))
	if tok == "" {
		return color.RGBA{}, &ColorFormatError{Token: token}
	}

	if strings.HasPrefix(tok, "#") {
		digits := tok[1:]
		if (len(digits) != 3 && len(digits) != 6) || !isHexDigits(digits) {
			return color.RGBA{}, &ColorFormatError{Token: token}
		}
		c, err := colorful.Hex(tok)
		if err != nil {
			return color.RGBA{}, &ColorFormatError{Token: token, Err: err}
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}

	name := strings.ToLower(tok)
	if idx, ok := brightNames[name]; ok {
		return tcellToRGBA(tcell.PaletteColor(idx)), nil
	}
	if c, ok := tcell.ColorNames[name]; ok {
		return tcellToRGBA(c), nil
	}
	return color.RGBA{}, &ColorFormatError{
		Token: token,
		Err:   fmt.Errorf("unknown color name"),
	}
}

// resolveColor substitutes fallback for DefaultColor before parsing.
func resolveColor(token string, fallback color.RGBA) (color.RGBA, error) {
	if token == DefaultColor || token == "" {
		return fallback, nil
	}
	return ParseColor(token)
}

func tcellToRGBA(c tcell.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

func isColorName(token string) bool {
	name := strings.ToLower(token)
	if _, ok := brightNames[name]; ok {
		return true
	}
	_, ok := tcell.ColorNames[name]
	return ok
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
