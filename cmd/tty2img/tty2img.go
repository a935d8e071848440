package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wbrown/tty2img"
	"github.com/wbrown/tty2img/canvas"
	"github.com/wbrown/tty2img/fontindex"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func run(args []string, stdout, stderr io.Writer) error {
	defaults := tty2img.DefaultConfig()
	fs := flag.NewFlagSet("tty2img", flag.ContinueOnError)
	fs.SetOutput(stderr)

	inputFile := fs.String("input", "",
		"Path to the plain text input file (required)")
	outputFile := fs.String("output", "screen.png",
		"Path to save the image (.png, .jpg, .gif or .tif)")
	columns := fs.Int("cols", defaults.Columns,
		"Terminal width in cells")
	lines := fs.Int("lines", defaults.Lines,
		"Terminal height in cells")
	maxWidth := fs.Int("width", defaults.MaxWidth,
		"Canvas width in pixels")
	maxHeight := fs.Int("height", defaults.MaxHeight,
		"Canvas height in pixels")
	fg := fs.String("fg", defaults.Foreground,
		"Default foreground color (name or hex)")
	bg := fs.String("bg", defaults.Background,
		"Default background color (name or hex)")
	fontNormal := fs.String("font", defaults.FontPaths[tty2img.Normal],
		"Regular TTF font file")
	fontBold := fs.String("bold", defaults.FontPaths[tty2img.Bold],
		"Bold TTF font file")
	fontItalic := fs.String("italic", defaults.FontPaths[tty2img.Italic],
		"Italic TTF font file")
	fontBoldItalic := fs.String("bolditalic", defaults.FontPaths[tty2img.BoldItalic],
		"Bold italic TTF font file")
	fontSize := fs.Float64("size", defaults.FontSize,
		"Nominal font size in points")
	minSize := fs.Int("minsize", defaults.MinFontSize,
		"Smallest font size tried when fitting the grid")
	margin := fs.Int("margin", defaults.Margin,
		"Margin around the grid in pixels")
	lineSpacing := fs.Int("linespace", defaults.LineSpacing,
		"Extra pixels between lines")
	antialias := fs.Int("aa", defaults.Antialiasing,
		"Supersampling factor, 1 to disable")
	noCursor := fs.Bool("nocursor", false,
		"Do not draw the cursor")
	policy := fs.String("policy", defaults.SizePolicy.String(),
		"Font size policy: largest-fit or first-overflow")
	fallback := fs.String("fallback", "",
		"Comma separated fallback font families, in search order")
	fontDirs := fs.String("fontdir", "",
		"Comma separated font directories for fallback lookup (default: system font directories)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inputFile == "" {
		fs.PrintDefaults()
		return fmt.Errorf("please provide the text using the -input flag")
	}

	var sizePolicy tty2img.SizePolicy
	switch strings.ToLower(*policy) {
	case "largest-fit":
		sizePolicy = tty2img.SizeLargestFit
	case "first-overflow":
		sizePolicy = tty2img.SizeFirstOverflow
	default:
		return fmt.Errorf("invalid size policy %q, options are largest-fit or first-overflow", *policy)
	}

	text, err := os.ReadFile(*inputFile)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := []tty2img.Option{
		tty2img.WithColors(*fg, *bg),
		tty2img.WithFonts(*fontNormal, *fontBold, *fontItalic, *fontBoldItalic),
		tty2img.WithFontSize(*fontSize),
		tty2img.WithMinFontSize(*minSize),
		tty2img.WithMargin(*margin),
		tty2img.WithLineSpacing(*lineSpacing),
		tty2img.WithAntialiasing(*antialias),
		tty2img.WithShowCursor(!*noCursor),
		tty2img.WithGrid(*columns, *lines),
		tty2img.WithMaxSize(*maxWidth, *maxHeight),
		tty2img.WithSizePolicy(sizePolicy),
		tty2img.WithDiagnostics(func(msg string) {
			fmt.Fprintf(stderr, "WARNING: %s\n", msg)
		}),
	}

	if families := splitList(*fallback); len(families) > 0 {
		dirs := splitList(*fontDirs)
		if len(dirs) == 0 {
			dirs = fontindex.SystemDirs()
		}
		index, err := fontindex.New(dirs...)
		if err != nil {
			return fmt.Errorf("indexing fonts: %w", err)
		}
		opts = append(opts,
			tty2img.WithFallbackFamilies(families...),
			tty2img.WithFontIndex(index))
	}

	beginInit := time.Now()
	renderer, err := tty2img.NewRenderer(opts...)
	if err != nil {
		return err
	}
	cw, ch := renderer.CellSize()
	fmt.Fprintf(stdout, "Font size: %vpt, cell %dx%d\n", renderer.FontSize(), cw, ch)
	fmt.Fprintf(stdout, "Initialization time: %v\n", time.Since(beginInit))

	beginRender := time.Now()
	snapshot := tty2img.SnapshotFromText(string(text), *columns, *lines)
	img, err := renderer.Render(snapshot)
	if err != nil {
		return err
	}
	if err := canvas.SaveImage(img, *outputFile); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}

	hits, misses, _ := renderer.CacheStats()
	fmt.Fprintf(stdout, "Output written to %s\n", *outputFile)
	fmt.Fprintf(stdout, "Render time: %v\n", time.Since(beginRender))
	fmt.Fprintf(stdout, "Glyph cache: %d hits, %d misses\n", hits, misses)
	return nil
}
