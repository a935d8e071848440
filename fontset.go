package tty2img

import (
	"fmt"
	"math"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Variant is one of the four font style combinations.
type Variant int

const (
	Normal Variant = iota
	Bold
	Italic
	BoldItalic

	variantCount = 4
)

// VariantOf picks the variant for a cell's bold and italic flags.
func VariantOf(a Attr) Variant {
	switch {
	case a.Has(AttrBold) && a.Has(AttrItalic):
		return BoldItalic
	case a.Has(AttrBold):
		return Bold
	case a.Has(AttrItalic):
		return Italic
	}
	return Normal
}

func (v Variant) String() string {
	switch v {
	case Normal:
		return "normal"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// referenceGlyph is the glyph whose advance defines the cell width.
const referenceGlyph = 'X'

// Font is a parsed TrueType font bound to a point size.
type Font struct {
	ttf  *truetype.Font
	face font.Face
	size float64
}

func newFont(ttf *truetype.Font, size float64) *Font {
	return &Font{
		ttf:  ttf,
		size: size,
		face: truetype.NewFace(ttf, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}
}

// HasGlyph reports whether the font maps r to a real glyph.
func (f *Font) HasGlyph(r rune) bool {
	return f.ttf.Index(r) != 0
}

// Advance returns the horizontal advance of r in whole pixels.
func (f *Font) Advance(r rune) int {
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return adv.Round()
}

// Ascent returns the distance from the top of a line to the baseline.
func (f *Font) Ascent() int {
	return f.face.Metrics().Ascent.Ceil()
}

// Descent returns the distance from the baseline to the bottom of a line.
func (f *Font) Descent() int {
	return f.face.Metrics().Descent.Ceil()
}

// Size returns the point size the font is bound to.
func (f *Font) Size() float64 {
	return f.size
}

// TTF returns the parsed font for rasterization.
func (f *Font) TTF() *truetype.Font {
	return f.ttf
}

// FontSet holds the four style variants at the negotiated size along
// with the cell geometry derived from the normal variant. Every variant
// is assumed to share the normal variant's advance width.
type FontSet struct {
	variants [variantCount]*Font

	CharWidth  int
	CharHeight int
	Ascent     int
	Size       float64
}

// Variant returns the font for v.
func (fs *FontSet) Variant(v Variant) *Font {
	return fs.variants[v]
}

// LoadFontSet parses the four configured fonts, negotiates the point
// size for the configured grid and cap, and binds every variant to that
// size. Geometry is in working canvas pixels, so margin and line
// spacing are scaled by the antialiasing factor.
func LoadFontSet(cfg Config) (*FontSet, error) {
	var parsed [variantCount]*truetype.Font
	for v := Normal; v < variantCount; v++ {
		ttf, err := loadVariant(v, cfg.FontPaths[v], cfg.FontData[v])
		if err != nil {
			return nil, err
		}
		parsed[v] = ttf
	}

	f := cfg.factor()
	req := sizeRequest{
		columns:     cfg.Columns,
		lines:       cfg.Lines,
		margin:      cfg.Margin * f,
		lineSpacing: cfg.LineSpacing * f,
		maxWidth:    cfg.MaxWidth,
		maxHeight:   cfg.MaxHeight,
		minSize:     cfg.MinFontSize * f,
		nominal:     int(math.Round(cfg.FontSize * float64(f))),
		ceiling:     MaxFontSize * f,
		policy:      cfg.SizePolicy,
	}
	size, err := negotiateSize(parsed[Normal], req)
	if err != nil {
		return nil, err
	}

	fs := &FontSet{Size: float64(size)}
	for v := Normal; v < variantCount; v++ {
		fs.variants[v] = newFont(parsed[v], fs.Size)
	}
	normal := fs.variants[Normal]
	fs.CharWidth = normal.Advance(referenceGlyph)
	fs.Ascent = normal.Ascent()
	fs.CharHeight = normal.Ascent() + normal.Descent() + req.lineSpacing
	return fs, nil
}

// loadVariant parses data if present, otherwise the file at path.
func loadVariant(v Variant, path string, data []byte) (*truetype.Font, error) {
	var ttf *truetype.Font
	var err error
	if data != nil {
		if path == "" {
			path = "<memory>"
		}
		ttf, err = freetype.ParseFont(data)
	} else {
		ttf, err = loadFontFile(path)
	}
	if err != nil {
		return nil, &FontLoadError{Variant: v, Path: path, Err: err}
	}
	return ttf, nil
}

// loadFontFile reads and parses a single TrueType file. Variants and
// fallback fonts both load through it.
func loadFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return freetype.ParseFont(data)
}

type sizeRequest struct {
	columns, lines      int
	margin, lineSpacing int
	maxWidth, maxHeight int
	minSize, nominal    int
	ceiling             int
	policy              SizePolicy
}

func (r sizeRequest) fail(reason string) error {
	return &FontSizeNegotiationError{
		Columns:   r.columns,
		Lines:     r.lines,
		MaxWidth:  r.maxWidth,
		MaxHeight: r.maxHeight,
		Reason:    reason,
	}
}

// overflows reports whether the grid rendered at size exceeds the cap.
func (r sizeRequest) overflows(ttf *truetype.Font, size int) bool {
	f := newFont(ttf, float64(size))
	charWidth := f.Advance(referenceGlyph)
	charHeight := f.Ascent() + f.Descent() + r.lineSpacing
	width := charWidth*r.columns + 2*r.margin
	height := charHeight*r.lines + 2*r.margin
	return width > r.maxWidth || height > r.maxHeight
}

// negotiateSize scans integer point sizes upwards from the floor and
// applies the request's policy. See SizePolicy.
func negotiateSize(ttf *truetype.Font, r sizeRequest) (int, error) {
	if r.columns <= 0 || r.lines <= 0 {
		return 0, r.fail("grid must have at least one column and one line")
	}
	if r.maxWidth <= 0 || r.maxHeight <= 0 {
		return 0, r.fail("pixel cap must be positive")
	}
	floor := r.minSize
	if floor < 1 {
		floor = 1
	}

	switch r.policy {
	case SizeFirstOverflow:
		for size := floor; size <= r.ceiling; size++ {
			if r.overflows(ttf, size) {
				return size, nil
			}
		}
		return 0, r.fail(fmt.Sprintf("no size up to %d overflows the cap", r.ceiling))

	default:
		top := r.nominal
		if top < floor {
			top = floor
		}
		if r.overflows(ttf, floor) {
			return 0, r.fail(fmt.Sprintf("grid does not fit even at %d pt", floor))
		}
		best := floor
		for size := floor + 1; size <= top; size++ {
			if r.overflows(ttf, size) {
				break
			}
			best = size
		}
		return best, nil
	}
}
