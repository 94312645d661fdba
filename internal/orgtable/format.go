package orgtable

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Format renders a grid as an aligned pipe table. Nil rows become
// separator lines. Every line is prefixed with indent; the result has no
// trailing newline.
func Format(grid [][]string, indent string) string {
	cols := 0
	for _, row := range grid {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for _, row := range grid {
		for j, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		if row == nil {
			b.WriteByte('|')
			for j, w := range widths {
				if j > 0 {
					b.WriteByte('+')
				}
				b.WriteString(strings.Repeat("-", w+2))
			}
			b.WriteByte('|')
			continue
		}
		b.WriteByte('|')
		for j, w := range widths {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			b.WriteByte(' ')
			b.WriteString(runewidth.FillRight(cell, w))
			b.WriteString(" |")
		}
	}
	return b.String()
}
