// Package canvas provides the raster surface terminal cells are painted
// on, plus resizing and image file helpers.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Canvas wraps image.RGBA with the drawing primitives the renderer
// needs. A Canvas is not safe for concurrent use.
type Canvas struct {
	*image.RGBA

	// Glyph rasterizer state, created on first DrawText.
	ctx     *freetype.Context
	ctxFont *truetype.Font
	ctxSize float64
}

// New creates a width x height canvas filled with bg.
func New(width, height int, bg color.Color) *Canvas {
	c := &Canvas{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	draw.Draw(c.RGBA, c.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return c
}

// FromImage copies any image.Image into a new Canvas whose origin is
// (0, 0).
func FromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	c := &Canvas{
		RGBA: image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy())),
	}
	draw.Draw(c.RGBA, c.Bounds(), img, bounds.Min, draw.Src)
	return c
}

// Width returns the canvas width.
func (c *Canvas) Width() int {
	return c.Bounds().Dx()
}

// Height returns the canvas height.
func (c *Canvas) Height() int {
	return c.Bounds().Dy()
}

// Clone creates a deep copy of the pixels. The copy shares no state
// with the original.
func (c *Canvas) Clone() *Canvas {
	clone := &Canvas{
		RGBA: image.NewRGBA(c.Bounds()),
	}
	copy(clone.Pix, c.Pix)
	return clone
}

// FillRect paints the w x h rectangle at (x, y) with col. Parts outside
// the canvas are clipped.
func (c *Canvas) FillRect(x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	rect := image.Rect(x, y, x+w, y+h).Intersect(c.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(c.RGBA, rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// HLine draws a one pixel high horizontal line of width w starting at
// (x, y).
func (c *Canvas) HLine(x, y, w int, col color.Color) {
	c.FillRect(x, y, w, 1, col)
}

// DrawText rasterizes text with f at size points, with the pen starting
// at x on the given baseline. Glyphs are antialiased and composited
// over the existing pixels.
func (c *Canvas) DrawText(f *truetype.Font, size float64, x, baseline int, text string, col color.Color) error {
	if text == "" {
		return nil
	}
	if c.ctx == nil {
		ctx := freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetClip(c.Bounds())
		ctx.SetDst(c.RGBA)
		ctx.SetHinting(font.HintingFull)
		c.ctx = ctx
	}
	// SetFont and SetFontSize flush the glyph cache, so only call them
	// on change.
	if f != c.ctxFont {
		c.ctx.SetFont(f)
		c.ctxFont = f
	}
	if size != c.ctxSize {
		c.ctx.SetFontSize(size)
		c.ctxSize = size
	}
	c.ctx.SetSrc(image.NewUniform(col))
	_, err := c.ctx.DrawString(text, freetype.Pt(x, baseline))
	return err
}
