package tty2img

import (
	"fmt"
)

// ResolvedGlyph is the font a character is drawn with and how far past
// the canonical cell width its advance reaches.
type ResolvedGlyph struct {
	Font         *Font
	ExtraAdvance int
}

type glyphKey struct {
	variant Variant
	r       rune
}

// GlyphResolver maps (variant, character) to a drawable font, searching
// fallback families through a FontIndex when the variant lacks a glyph.
// Results are memoized for the resolver's lifetime without eviction,
// which is fine for terminal character sets but unbounded for arbitrary
// Unicode input.
//
// A GlyphResolver is not safe for concurrent use.
type GlyphResolver struct {
	fonts    *FontSet
	index    FontIndex
	families []string
	diag     func(string)

	cache     map[glyphKey]ResolvedGlyph
	fallbacks map[string]*Font // by path, nil when the file failed to load

	hits   int
	misses int
}

// NewGlyphResolver creates a resolver over fonts. index may be nil, in
// which case no fallback search happens. diag may be nil.
func NewGlyphResolver(fonts *FontSet, index FontIndex, families []string, diag func(string)) *GlyphResolver {
	return &GlyphResolver{
		fonts:     fonts,
		index:     index,
		families:  append([]string(nil), families...),
		diag:      diag,
		cache:     make(map[glyphKey]ResolvedGlyph),
		fallbacks: make(map[string]*Font),
	}
}

// Resolve returns the font to draw r with in variant v. When neither
// the variant nor any fallback family covers r, a MissingGlyphWarning is
// reported and the variant font is returned.
func (g *GlyphResolver) Resolve(v Variant, r rune) ResolvedGlyph {
	key := glyphKey{variant: v, r: r}
	if res, ok := g.cache[key]; ok {
		g.hits++
		return res
	}
	g.misses++
	res := g.resolve(v, r)
	g.cache[key] = res
	return res
}

func (g *GlyphResolver) resolve(v Variant, r rune) ResolvedGlyph {
	primary := g.fonts.Variant(v)
	if primary.HasGlyph(r) {
		return ResolvedGlyph{Font: primary}
	}

	if g.index != nil {
		for _, family := range g.families {
			path, ok := g.index.Lookup(family, r)
			if !ok {
				continue
			}
			f := g.fallbackFont(path)
			if f == nil {
				continue
			}
			return ResolvedGlyph{
				Font:         f,
				ExtraAdvance: extraAdvance(f.Advance(r), g.fonts.CharWidth),
			}
		}
	}

	g.warn(MissingGlyphWarning{Variant: v, Rune: r}.String())
	return ResolvedGlyph{Font: primary}
}

// fallbackFont loads the font at path once and binds it to the font
// set's size.
func (g *GlyphResolver) fallbackFont(path string) *Font {
	if f, ok := g.fallbacks[path]; ok {
		return f
	}
	var f *Font
	ttf, err := loadFontFile(path)
	if err != nil {
		g.warn(fmt.Sprintf("skipping fallback font %q: %v", path, err))
	} else {
		f = newFont(ttf, g.fonts.Size)
	}
	g.fallbacks[path] = f
	return f
}

func (g *GlyphResolver) warn(msg string) {
	if g.diag != nil {
		g.diag(msg)
	}
}

// extraAdvance is how much wider than a cell an advance is, never
// negative.
func extraAdvance(advance, charWidth int) int {
	if advance > charWidth {
		return advance - charWidth
	}
	return 0
}

// CacheStats returns cache hit/miss statistics.
func (g *GlyphResolver) CacheStats() (hits, misses int, hitRate float64) {
	total := g.hits + g.misses
	if total == 0 {
		return 0, 0, 0
	}
	return g.hits, g.misses, float64(g.hits) / float64(total)
}

// CacheLen returns the number of memoized (variant, character) entries.
func (g *GlyphResolver) CacheLen() int {
	return len(g.cache)
}
