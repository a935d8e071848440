package tty2img

// SizePolicy selects how LoadFontSet picks a point size for the
// configured grid and pixel cap.
type SizePolicy int

const (
	// SizeLargestFit scans from MinFontSize up to FontSize and adopts
	// the largest size whose projected grid fits inside the cap.
	SizeLargestFit SizePolicy = iota

	// SizeFirstOverflow scans from MinFontSize upwards and adopts the
	// first size whose projected grid exceeds the cap. Content past the
	// cap is clipped by the canvas.
	SizeFirstOverflow
)

func (p SizePolicy) String() string {
	switch p {
	case SizeLargestFit:
		return "largest-fit"
	case SizeFirstOverflow:
		return "first-overflow"
	}
	return "unknown"
}

// MaxFontSize bounds the SizeFirstOverflow scan (before antialiasing
// scaling).
const MaxFontSize = 512

// FontIndex finds fallback font files by family and codepoint coverage.
type FontIndex interface {
	// Lookup returns the path of a font file of the given family that
	// has a glyph for r.
	Lookup(family string, r rune) (path string, ok bool)
}

// Config holds everything a Renderer is built from. It is copied into
// the Renderer and never modified afterwards.
type Config struct {
	// Foreground and Background are the color tokens substituted for
	// DefaultColor.
	Foreground string
	Background string

	// FontPaths are the TrueType files for each Variant. FontData, when
	// set for a variant, is used instead of reading the path.
	FontPaths [variantCount]string
	FontData  [variantCount][]byte

	// FallbackFamilies are consulted in order through FontIndex for
	// characters the variant font lacks.
	FallbackFamilies []string
	FontIndex        FontIndex

	FontSize    float64
	MinFontSize int
	LineSpacing int
	Margin      int

	// Antialiasing is the supersampling factor; values below 2 disable
	// supersampling.
	Antialiasing int
	ShowCursor   bool

	// Columns and Lines describe the grid the font size is negotiated
	// for. MaxWidth and MaxHeight are the working canvas size.
	Columns   int
	Lines     int
	MaxWidth  int
	MaxHeight int

	SizePolicy SizePolicy

	// Diagnostics receives non-fatal warnings such as missing glyphs.
	Diagnostics func(msg string)
}

// DefaultConfig returns the configuration NewRenderer starts from.
func DefaultConfig() Config {
	return Config{
		Foreground: "#00ff00",
		Background: "black",
		FontPaths: [variantCount]string{
			Normal:     "DejaVuSansMono.ttf",
			Bold:       "DejaVuSansMono-Bold.ttf",
			Italic:     "DejaVuSansMono-Oblique.ttf",
			BoldItalic: "DejaVuSansMono-BoldOblique.ttf",
		},
		FontSize:     17,
		MinFontSize:  8,
		LineSpacing:  0,
		Margin:       5,
		Antialiasing: 1,
		ShowCursor:   true,
		Columns:      80,
		Lines:        24,
		MaxWidth:     1920,
		MaxHeight:    1080,
		SizePolicy:   SizeLargestFit,
	}
}

// factor returns the effective supersampling factor (at least 1).
func (c Config) factor() int {
	if c.Antialiasing < 1 {
		return 1
	}
	return c.Antialiasing
}

// Option is a functional option for configuring a Renderer.
type Option func(*Config)

// WithColors sets the default foreground and background colors.
func WithColors(fg, bg string) Option {
	return func(c *Config) {
		c.Foreground = fg
		c.Background = bg
	}
}

// WithFonts sets the font file for each variant.
func WithFonts(normal, bold, italic, boldItalic string) Option {
	return func(c *Config) {
		c.FontPaths = [variantCount]string{normal, bold, italic, boldItalic}
	}
}

// WithFontData supplies an in-memory TrueType font for one variant.
func WithFontData(v Variant, data []byte) Option {
	return func(c *Config) {
		c.FontData[v] = data
	}
}

// WithFallbackFamilies sets the fallback family search order.
func WithFallbackFamilies(families ...string) Option {
	return func(c *Config) {
		c.FallbackFamilies = append([]string(nil), families...)
	}
}

// WithFontIndex sets the index used to locate fallback font files.
func WithFontIndex(index FontIndex) Option {
	return func(c *Config) {
		c.FontIndex = index
	}
}

// WithFontSize sets the nominal point size.
func WithFontSize(size float64) Option {
	return func(c *Config) {
		c.FontSize = size
	}
}

// WithMinFontSize sets the smallest point size tried during negotiation.
func WithMinFontSize(size int) Option {
	return func(c *Config) {
		c.MinFontSize = size
	}
}

// WithLineSpacing sets extra pixels between lines.
func WithLineSpacing(px int) Option {
	return func(c *Config) {
		c.LineSpacing = px
	}
}

// WithMargin sets the margin on every side of the grid.
func WithMargin(px int) Option {
	return func(c *Config) {
		c.Margin = px
	}
}

// WithAntialiasing sets the supersampling factor.
func WithAntialiasing(factor int) Option {
	return func(c *Config) {
		c.Antialiasing = factor
	}
}

// WithShowCursor enables or disables drawing the cursor.
func WithShowCursor(show bool) Option {
	return func(c *Config) {
		c.ShowCursor = show
	}
}

// WithGrid sets the grid size used for font size negotiation.
func WithGrid(columns, lines int) Option {
	return func(c *Config) {
		c.Columns = columns
		c.Lines = lines
	}
}

// WithMaxSize sets the working canvas size in pixels.
func WithMaxSize(width, height int) Option {
	return func(c *Config) {
		c.MaxWidth = width
		c.MaxHeight = height
	}
}

// WithSizePolicy selects the font size negotiation policy.
func WithSizePolicy(policy SizePolicy) Option {
	return func(c *Config) {
		c.SizePolicy = policy
	}
}

// WithDiagnostics sets the sink for non-fatal warnings.
func WithDiagnostics(sink func(msg string)) Option {
	return func(c *Config) {
		c.Diagnostics = sink
	}
}
