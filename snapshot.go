package tty2img

import (
	"sort"
	"strings"
)

// DefaultColor is the color token that stands for the renderer's
// configured default foreground or background.
const DefaultColor = "default"

// Attr is a set of text style flags carried by a Cell.
type Attr uint8

// Cell style flags.
const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrStrikethrough
	AttrReverse
)

// AttrNone is the empty style set.
const AttrNone Attr = 0

// Has returns true if every flag in attr is set.
func (a Attr) Has(attr Attr) bool {
	return a&attr == attr
}

// With returns a copy of the set with attr added.
func (a Attr) With(attr Attr) Attr {
	return a | attr
}

// String returns the flags joined by "|", or "none".
func (a Attr) String() string {
	if a == AttrNone {
		return "none"
	}
	names := []struct {
		attr Attr
		name string
	}{
		{AttrBold, "bold"},
		{AttrItalic, "italic"},
		{AttrUnderline, "underline"},
		{AttrStrikethrough, "strikethrough"},
		{AttrReverse, "reverse"},
	}
	var parts []string
	for _, n := range names {
		if a.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Cell is one populated grid position. An empty Data is a placeholder
// (the right half of a wide character) and is skipped when drawing.
// FG and BG hold color tokens: DefaultColor, a color name, or a hex
// value with or without the leading '#'.
type Cell struct {
	Col   int
	Data  string
	FG    string
	BG    string
	Attrs Attr
}

// NewCell returns a cell holding data with default colors and no style.
func NewCell(data string) Cell {
	return Cell{Data: data, FG: DefaultColor, BG: DefaultColor}
}

// IsPlaceholder reports whether the cell is an empty placeholder.
func (c Cell) IsPlaceholder() bool {
	return c.Data == ""
}

// Cursor is the terminal cursor position in cells (0-based).
type Cursor struct {
	X, Y   int
	Hidden bool
}

// Snapshot is a point-in-time view of a terminal grid. Only populated
// cells are stored; absent cells are blank with the default background.
// Each row keeps its cells sorted by column so rendering can walk them
// left to right.
type Snapshot struct {
	Columns int
	Lines   int
	Cursor  Cursor

	rows map[int][]Cell
}

// NewSnapshot creates an empty snapshot of the given grid size.
func NewSnapshot(columns, lines int) *Snapshot {
	return &Snapshot{
		Columns: columns,
		Lines:   lines,
		rows:    make(map[int][]Cell),
	}
}

// Set stores c at (row, col), replacing any cell already there.
func (s *Snapshot) Set(row, col int, c Cell) {
	if s.rows == nil {
		s.rows = make(map[int][]Cell)
	}
	c.Col = col
	cells := s.rows[row]
	i := sort.Search(len(cells), func(i int) bool { return cells[i].Col >= col })
	if i < len(cells) && cells[i].Col == col {
		cells[i] = c
		return
	}
	cells = append(cells, Cell{})
	copy(cells[i+1:], cells[i:])
	cells[i] = c
	s.rows[row] = cells
}

// At returns the cell stored at (row, col).
func (s *Snapshot) At(row, col int) (Cell, bool) {
	cells := s.rows[row]
	i := sort.Search(len(cells), func(i int) bool { return cells[i].Col >= col })
	if i < len(cells) && cells[i].Col == col {
		return cells[i], true
	}
	return Cell{}, false
}

// Row returns the populated cells of a row in ascending column order.
// The returned slice must not be modified.
func (s *Snapshot) Row(row int) []Cell {
	return s.rows[row]
}

// RowIndices returns the indices of rows with at least one populated
// cell, ascending.
func (s *Snapshot) RowIndices() []int {
	indices := make([]int, 0, len(s.rows))
	for row, cells := range s.rows {
		if len(cells) > 0 {
			indices = append(indices, row)
		}
	}
	sort.Ints(indices)
	return indices
}

// Len returns the number of populated cells.
func (s *Snapshot) Len() int {
	n := 0
	for _, cells := range s.rows {
		n += len(cells)
	}
	return n
}
