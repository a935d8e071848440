package tty2img

import (
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func newTestFontSet(t *testing.T) *FontSet {
	t.Helper()
	fs, err := LoadFontSet(testConfig())
	if err != nil {
		t.Fatalf("LoadFontSet failed: %v", err)
	}
	return fs
}

// countingIndex records lookups and answers from a fixed table.
type countingIndex struct {
	paths   map[string]string
	lookups []string
}

func (c *countingIndex) Lookup(family string, r rune) (string, bool) {
	c.lookups = append(c.lookups, family)
	path, ok := c.paths[family]
	return path, ok
}

func TestResolvePrimary(t *testing.T) {
	fs := newTestFontSet(t)
	index := &countingIndex{}
	g := NewGlyphResolver(fs, index, []string{"Anything"}, nil)

	for v := Normal; v < variantCount; v++ {
		res := g.Resolve(v, 'A')
		if res.Font != fs.Variant(v) {
			t.Errorf("Variant %v: expected its own font for 'A'", v)
		}
		if res.ExtraAdvance != 0 {
			t.Errorf("Variant %v: expected no extra advance, got %d", v, res.ExtraAdvance)
		}
	}
	if len(index.lookups) != 0 {
		t.Errorf("Covered characters should not consult the index, got %v", index.lookups)
	}
}

func TestResolveFallback(t *testing.T) {
	fs := newTestFontSet(t)
	path := writeFontFile(t, "Go-Regular.ttf", goregular.TTF)
	index := &countingIndex{paths: map[string]string{"Go": path}}
	var diag diagnostics
	g := NewGlyphResolver(fs, index, []string{"Missing", "Go", "Never"}, diag.sink)

	res := g.Resolve(Bold, '中')
	if res.Font == nil || res.Font == fs.Variant(Bold) {
		t.Fatal("Expected a fallback font")
	}
	if res.Font.Size() != fs.Size {
		t.Errorf("Fallback font bound to %v, want %v", res.Font.Size(), fs.Size)
	}
	if res.ExtraAdvance != extraAdvance(res.Font.Advance('中'), fs.CharWidth) {
		t.Errorf("Unexpected extra advance %d", res.ExtraAdvance)
	}
	if got := strings.Join(index.lookups, ","); got != "Missing,Go" {
		t.Errorf("Expected families tried in order until a hit, got %s", got)
	}
	if len(diag.msgs) != 0 {
		t.Errorf("Expected no diagnostics, got %v", diag.msgs)
	}

	// A second character from the same family reuses the loaded font.
	other := g.Resolve(Normal, '文')
	if other.Font != res.Font {
		t.Error("Expected the fallback font to be loaded once per path")
	}
}

func TestResolveSkipsBrokenFallback(t *testing.T) {
	fs := newTestFontSet(t)
	broken := writeFontFile(t, "broken.ttf", []byte("garbage"))
	good := writeFontFile(t, "Go-Regular.ttf", goregular.TTF)
	index := &countingIndex{paths: map[string]string{"Broken": broken, "Go": good}}
	var diag diagnostics
	g := NewGlyphResolver(fs, index, []string{"Broken", "Go"}, diag.sink)

	res := g.Resolve(Normal, '中')
	if res.Font == fs.Variant(Normal) {
		t.Error("Expected the second family to serve the glyph")
	}
	if len(diag.msgs) != 1 || !strings.Contains(diag.msgs[0], "skipping fallback font") {
		t.Fatalf("Expected one skip diagnostic, got %v", diag.msgs)
	}

	// The broken path is remembered and not reported again.
	g.Resolve(Normal, '文')
	if len(diag.msgs) != 1 {
		t.Errorf("Broken font reported more than once: %v", diag.msgs)
	}
}

func TestResolveMissingGlyph(t *testing.T) {
	fs := newTestFontSet(t)
	var diag diagnostics
	g := NewGlyphResolver(fs, fakeIndex{}, []string{"Nothing"}, diag.sink)

	for i := 0; i < 3; i++ {
		res := g.Resolve(Italic, '中')
		if res.Font != fs.Variant(Italic) {
			t.Fatal("Expected the variant font when no family covers the glyph")
		}
	}
	if len(diag.msgs) != 1 {
		t.Fatalf("Expected the missing glyph reported once, got %v", diag.msgs)
	}
	want := MissingGlyphWarning{Variant: Italic, Rune: '中'}.String()
	if diag.msgs[0] != want {
		t.Errorf("Expected %q, got %q", want, diag.msgs[0])
	}
	if !strings.Contains(want, "U+4E2D") || !strings.Contains(want, "italic") {
		t.Errorf("Warning should name the codepoint and variant: %q", want)
	}

	// Another variant is a separate cache entry.
	g.Resolve(Normal, '中')
	if len(diag.msgs) != 2 {
		t.Errorf("Expected a second warning for another variant, got %v", diag.msgs)
	}
}

func TestResolveNilIndexAndSink(t *testing.T) {
	fs := newTestFontSet(t)
	g := NewGlyphResolver(fs, nil, []string{"Go"}, nil)

	if res := g.Resolve(Normal, '中'); res.Font != fs.Variant(Normal) {
		t.Error("Expected the variant font without an index")
	}
}

func TestResolverCacheStats(t *testing.T) {
	fs := newTestFontSet(t)
	g := NewGlyphResolver(fs, nil, nil, nil)

	if hits, misses, rate := g.CacheStats(); hits != 0 || misses != 0 || rate != 0 {
		t.Errorf("Expected empty stats, got %d/%d/%v", hits, misses, rate)
	}

	g.Resolve(Normal, 'a')
	g.Resolve(Normal, 'a')
	g.Resolve(Normal, 'a')
	g.Resolve(Bold, 'a')

	hits, misses, rate := g.CacheStats()
	if hits != 2 || misses != 2 {
		t.Errorf("Expected 2 hits and 2 misses, got %d/%d", hits, misses)
	}
	if rate != 0.5 {
		t.Errorf("Expected hit rate 0.5, got %v", rate)
	}
	if g.CacheLen() != 2 {
		t.Errorf("Expected 2 cache entries, got %d", g.CacheLen())
	}
}

func TestExtraAdvance(t *testing.T) {
	tests := []struct {
		advance, charWidth, want int
	}{
		{10, 10, 0},
		{8, 10, 0},
		{0, 10, 0},
		{17, 10, 7},
	}
	for _, tt := range tests {
		if got := extraAdvance(tt.advance, tt.charWidth); got != tt.want {
			t.Errorf("extraAdvance(%d, %d) = %d, want %d", tt.advance, tt.charWidth, got, tt.want)
		}
	}
}
