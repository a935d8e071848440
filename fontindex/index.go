// Package fontindex locates font files by family name and codepoint
// coverage. It scans directories once and parses fonts lazily on
// lookup.
package fontindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// Index maps family names to font files. Lookup is safe for concurrent
// use.
type Index struct {
	families map[string][]entry // lower-case family name -> files
	names    map[string]string  // lower-case family name -> display name

	mu    sync.Mutex
	fonts map[string]*sfnt.Font // parsed on first lookup
}

type entry struct {
	path    string
	regular bool
}

// New creates an Index over the fonts found in dirs, recursively.
// Directories that do not exist are skipped, as are files that are not
// parseable TrueType/OpenType fonts.
func New(dirs ...string) (*Index, error) {
	ix := &Index{
		families: make(map[string][]entry),
		names:    make(map[string]string),
		fonts:    make(map[string]*sfnt.Font),
	}
	for _, dir := range dirs {
		if err := ix.addDir(dir); err != nil {
			return nil, err
		}
	}
	ix.sortEntries()
	return ix, nil
}

// SystemDirs returns the usual font directories for the host OS.
func SystemDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
			filepath.Join(home, "Library", "Fonts"),
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("WINDIR"), "Fonts"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Microsoft", "Windows", "Fonts"),
		}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
		}
	}
}

func (ix *Index) addDir(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			if d != nil && d.IsDir() && path != dir {
				// Unreadable subdirectory.
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || !hasFontExtension(path) {
			return nil
		}
		// Unparseable files are not fonts we can use.
		_ = ix.add(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan font directory %s: %w", dir, err)
	}
	return nil
}

// Add parses the font at path and registers it under its family and
// typographic family names. Add must not run concurrently with Lookup.
func (ix *Index) Add(path string) error {
	if err := ix.add(path); err != nil {
		return err
	}
	ix.sortEntries()
	return nil
}

func (ix *Index) add(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	subfamily, _ := f.Name(nil, sfnt.NameIDSubfamily)
	e := entry{
		path:    path,
		regular: strings.EqualFold(subfamily, "regular") || strings.EqualFold(subfamily, "book"),
	}

	added := false
	for _, id := range []sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDTypographicFamily} {
		name, err := f.Name(nil, id)
		if err != nil || name == "" {
			continue
		}
		key := strings.ToLower(name)
		if containsPath(ix.families[key], path) {
			continue
		}
		ix.families[key] = append(ix.families[key], e)
		ix.names[key] = name
		added = true
	}
	if !added {
		return fmt.Errorf("%s: no family name", path)
	}
	return nil
}

// Families returns the indexed family names, sorted.
func (ix *Index) Families() []string {
	names := make([]string, 0, len(ix.names))
	for _, name := range ix.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the first file of family (case-insensitive) with a
// glyph for r. Regular faces are preferred over other styles.
func (ix *Index) Lookup(family string, r rune) (string, bool) {
	for _, e := range ix.families[strings.ToLower(family)] {
		f := ix.font(e.path)
		if f == nil {
			continue
		}
		gi, err := f.GlyphIndex(nil, r)
		if err == nil && gi != 0 {
			return e.path, true
		}
	}
	return "", false
}

func (ix *Index) font(path string) *sfnt.Font {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if f, ok := ix.fonts[path]; ok {
		return f
	}
	var f *sfnt.Font
	if data, err := os.ReadFile(path); err == nil {
		f, _ = sfnt.Parse(data)
	}
	ix.fonts[path] = f
	return f
}

func (ix *Index) sortEntries() {
	for _, entries := range ix.families {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].regular != entries[j].regular {
				return entries[i].regular
			}
			return entries[i].path < entries[j].path
		})
	}
}

func containsPath(entries []entry, path string) bool {
	for _, e := range entries {
		if e.path == path {
			return true
		}
	}
	return false
}

func hasFontExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}
