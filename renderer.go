package tty2img

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/wbrown/tty2img/canvas"
)

// Renderer turns terminal snapshots into images. Fonts, the glyph
// cache and the background template are built once in NewRenderer and
// reused by every Render call, so a Renderer should be kept around for
// repeated renders.
//
// A Renderer serves one caller at a time. Concurrent Render calls on
// the same Renderer need external locking, or one Renderer per
// goroutine.
type Renderer struct {
	cfg Config

	fonts    *FontSet
	glyphs   *GlyphResolver
	template *canvas.Canvas

	fg, bg color.RGBA
	margin int
	factor int
}

// NewRenderer creates a Renderer from DefaultConfig with the given
// options applied.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

// New creates a Renderer from a complete configuration. It fails with a
// *ColorFormatError for bad default colors, a *FontLoadError for an
// unreadable font, or a *FontSizeNegotiationError when no point size
// satisfies the size policy.
func New(cfg Config) (*Renderer, error) {
	cfg.FallbackFamilies = append([]string(nil), cfg.FallbackFamilies...)

	fg, err := ParseColor(cfg.Foreground)
	if err != nil {
		return nil, fmt.Errorf("default foreground: %w", err)
	}
	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("default background: %w", err)
	}

	fonts, err := LoadFontSet(cfg)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		cfg:      cfg,
		fonts:    fonts,
		glyphs:   NewGlyphResolver(fonts, cfg.FontIndex, cfg.FallbackFamilies, cfg.Diagnostics),
		template: canvas.New(cfg.MaxWidth, cfg.MaxHeight, bg),
		fg:       fg,
		bg:       bg,
		factor:   cfg.factor(),
	}
	r.margin = cfg.Margin * r.factor
	return r, nil
}

// Render draws s and returns the finished image. The image always has
// the size reported by Size, whatever the snapshot's grid size; cells
// past the canvas edge are clipped. s is not modified.
func (r *Renderer) Render(s *Snapshot) (*image.RGBA, error) {
	img := r.template.Clone()
	showCursor := r.cfg.ShowCursor && !s.Cursor.Hidden

	for _, row := range s.RowIndices() {
		if err := r.renderRow(img, s, row, showCursor); err != nil {
			return nil, err
		}
	}

	// A cursor on a row without populated cells gets its block here.
	if showCursor && len(s.Row(s.Cursor.Y)) == 0 {
		x := r.margin + r.fonts.CharWidth*s.Cursor.X
		y := r.margin + r.fonts.CharHeight*s.Cursor.Y
		img.FillRect(x, y, r.fonts.CharWidth, r.fonts.CharHeight, r.fg)
	}

	return img.Downsample(r.factor).RGBA, nil
}

func (r *Renderer) renderRow(img *canvas.Canvas, s *Snapshot, row int, showCursor bool) error {
	cw, ch := r.fonts.CharWidth, r.fonts.CharHeight
	y := r.margin + row*ch
	x := r.margin
	lastCol := -1

	for _, cell := range s.Row(row) {
		// Absent columns (tabs, sparse rows) still take up cell width.
		x += cw * (cell.Col - lastCol - 1)
		lastCol = cell.Col
		if cell.IsPlaceholder() {
			continue
		}

		isCursor := showCursor && s.Cursor.Y == row && s.Cursor.X == cell.Col
		fg, bg, err := r.cellColors(cell, isCursor)
		if err != nil {
			return fmt.Errorf("cell (%d,%d): %w", row, cell.Col, err)
		}

		if bg != r.bg {
			img.FillRect(x, y, cw, ch, bg)
		}

		text := norm.NFC.String(cell.Data)
		first, _ := utf8.DecodeRuneInString(text)
		glyph := r.glyphs.Resolve(VariantOf(cell.Attrs), first)

		if cell.Attrs.Has(AttrUnderline) {
			img.HLine(x, y+ch-1, cw, fg)
		}
		if cell.Attrs.Has(AttrStrikethrough) {
			img.HLine(x, y+ch/2, cw, fg)
		}

		f := glyph.Font
		if err := img.DrawText(f.TTF(), f.Size(), x, y+f.Ascent(), text, fg); err != nil {
			return fmt.Errorf("cell (%d,%d): draw %q: %w", row, cell.Col, text, err)
		}
		x += cw + glyph.ExtraAdvance
	}

	if showCursor && s.Cursor.Y == row {
		if _, populated := s.At(row, s.Cursor.X); !populated {
			x += cw * (s.Cursor.X - lastCol - 1)
			img.FillRect(x, y, cw, ch, r.fg)
		}
	}
	return nil
}

// cellColors resolves a cell's effective colors. Reverse video swaps
// first and the cursor swaps again, so a reversed cursor cell ends up
// with its original colors.
func (r *Renderer) cellColors(c Cell, isCursor bool) (fg, bg color.RGBA, err error) {
	fg, err = resolveColor(c.FG, r.fg)
	if err != nil {
		return fg, bg, fmt.Errorf("foreground: %w", err)
	}
	bg, err = resolveColor(c.BG, r.bg)
	if err != nil {
		return fg, bg, fmt.Errorf("background: %w", err)
	}
	if c.Attrs.Has(AttrReverse) {
		fg, bg = bg, fg
	}
	if isCursor {
		fg, bg = bg, fg
	}
	return fg, bg, nil
}

// Config returns the configuration the renderer was built with.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Size returns the dimensions of rendered images.
func (r *Renderer) Size() (width, height int) {
	if r.factor > 1 {
		return r.cfg.MaxWidth / r.factor, r.cfg.MaxHeight / r.factor
	}
	return r.cfg.MaxWidth, r.cfg.MaxHeight
}

// CellSize returns the cell width and height in working canvas pixels
// (before antialiasing downsampling).
func (r *Renderer) CellSize() (width, height int) {
	return r.fonts.CharWidth, r.fonts.CharHeight
}

// FontSize returns the negotiated point size used for rasterization.
func (r *Renderer) FontSize() float64 {
	return r.fonts.Size
}

// CacheStats returns the glyph cache hit/miss statistics.
func (r *Renderer) CacheStats() (hits, misses int, hitRate float64) {
	return r.glyphs.CacheStats()
}
