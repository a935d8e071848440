package tty2img

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
)

// goMonoOptions loads the Go Mono family for all four variants.
func goMonoOptions() []Option {
	return []Option{
		WithFontData(Normal, gomono.TTF),
		WithFontData(Bold, gomonobold.TTF),
		WithFontData(Italic, gomonoitalic.TTF),
		WithFontData(BoldItalic, gomonobolditalic.TTF),
	}
}

// newTestRenderer builds a small white-on-black renderer over a 10x3
// grid in a 200x100 canvas, with opts applied last.
func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	all := append(goMonoOptions(),
		WithGrid(10, 3),
		WithMaxSize(200, 100),
		WithColors("#ffffff", "#000000"),
	)
	r, err := NewRenderer(append(all, opts...)...)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r
}

// cellRect returns the working canvas rectangle of a cell, assuming no
// fallback glyph widened the row before it.
func cellRect(r *Renderer, row, col int) image.Rectangle {
	cw, ch := r.CellSize()
	x := r.margin + col*cw
	y := r.margin + row*ch
	return image.Rect(x, y, x+cw, y+ch)
}

// writeFontFile stores data in a temp file and returns its path.
func writeFontFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// fakeIndex claims every codepoint for the families it maps.
type fakeIndex map[string]string

func (f fakeIndex) Lookup(family string, r rune) (string, bool) {
	path, ok := f[family]
	return path, ok
}

// diagnostics collects sink messages.
type diagnostics struct {
	msgs []string
}

func (d *diagnostics) sink(msg string) {
	d.msgs = append(d.msgs, msg)
}
