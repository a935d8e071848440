package tty2img

import (
	"strings"

	"github.com/rivo/uniseg"
)

// tabStop is the column interval tabs advance to.
const tabStop = 8

// SnapshotFromText lays plain text out on a columns x lines grid the
// way a terminal would print it: one cell per grapheme cluster, wide
// clusters followed by an empty placeholder cell, and tabs skipping to
// the next tab stop without populating the cells in between. Text past
// the grid is dropped. The cursor is left after the last character
// written.
func SnapshotFromText(text string, columns, lines int) *Snapshot {
	s := NewSnapshot(columns, lines)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	row, col := 0, 0
	for i, line := range strings.Split(text, "\n") {
		if i >= lines {
			break
		}
		row, col = i, 0

		state := -1
		rest := line
		for len(rest) > 0 {
			var cluster string
			var width int
			cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)

			if cluster == "\t" {
				col = (col/tabStop + 1) * tabStop
				if col > columns {
					col = columns
				}
				continue
			}
			if width == 0 {
				// Control characters take no cell.
				continue
			}
			if col+width > columns {
				break
			}

			s.Set(row, col, NewCell(cluster))
			for w := 1; w < width; w++ {
				s.Set(row, col+w, NewCell(""))
			}
			col += width
		}
	}

	if columns > 0 && col >= columns {
		col = columns - 1
	}
	s.Cursor = Cursor{X: col, Y: row}
	return s
}
