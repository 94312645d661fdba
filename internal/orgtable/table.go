// Package orgtable reads and edits pipe tables ("| a | b |") embedded in
// plain text. It is the table-structure side of tablemarks: it finds tables,
// exposes their cells as byte ranges, tracks a cursor, and performs
// structural edits that it reports as types.EditEvent values.
package orgtable

import (
	"strings"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Cell is one cell of a table line. Range spans the bytes between the two
// enclosing pipes; Text is the trimmed content.
type Cell struct {
	Range types.Range
	Text  string
}

// Line is one line of a table. Hline separators have no cells.
type Line struct {
	Range  types.Range
	Indent string
	Hline  bool
	Cells  []Cell
}

// Table is a parsed pipe table. Start is the offset of the table's first
// pipe; End is the end of its last line, excluding the newline.
type Table struct {
	Start int
	End   int
	Lines []Line
}

// FindTables returns every table in text in document order.
func FindTables(text string) []Table {
	var tables []Table
	var cur *Table
	flush := func() {
		if cur != nil {
			tables = append(tables, *cur)
			cur = nil
		}
	}

	pos := 0
	for pos <= len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		lineEnd := len(text)
		if end >= 0 {
			lineEnd = pos + end
		}
		line, ok := parseLine(text, pos, lineEnd)
		if ok {
			if cur == nil {
				cur = &Table{Start: line.Range.Start + len(line.Indent)}
			}
			cur.Lines = append(cur.Lines, line)
			cur.End = lineEnd
		} else {
			flush()
		}
		if end < 0 {
			break
		}
		pos = lineEnd + 1
	}
	flush()
	return tables
}

// TableAt returns the table containing offset.
func TableAt(text string, offset int) (Table, bool) {
	for _, t := range FindTables(text) {
		if offset >= t.Lines[0].Range.Start && offset <= t.End {
			return t, true
		}
	}
	return Table{}, false
}

// TableStartingAt returns the table whose first pipe is at start.
func TableStartingAt(text string, start int) (Table, bool) {
	for _, t := range FindTables(text) {
		if t.Start == start {
			return t, true
		}
	}
	return Table{}, false
}

func parseLine(text string, start, end int) (Line, bool) {
	raw := text[start:end]
	trimmed := strings.TrimLeft(raw, " \t")
	if !strings.HasPrefix(trimmed, "|") {
		return Line{}, false
	}
	indent := raw[:len(raw)-len(trimmed)]
	line := Line{Range: types.Range{Start: start, End: end}, Indent: indent}
	if strings.HasPrefix(trimmed, "|-") {
		line.Hline = true
		return line, true
	}

	base := start + len(indent)
	body := strings.TrimRight(trimmed, "\r")
	prev := 0
	for i := 1; i <= len(body); i++ {
		if i < len(body) && body[i] != '|' {
			continue
		}
		seg := body[prev+1 : i]
		if i == len(body) && strings.TrimSpace(seg) == "" {
			break
		}
		line.Cells = append(line.Cells, Cell{
			Range: types.Range{Start: base + prev + 1, End: base + i},
			Text:  strings.TrimSpace(seg),
		})
		prev = i
	}
	return line, true
}

// DataRows returns the non-separator lines.
func (t Table) DataRows() []Line {
	rows := make([]Line, 0, len(t.Lines))
	for _, l := range t.Lines {
		if !l.Hline {
			rows = append(rows, l)
		}
	}
	return rows
}

// RowCount is the number of data rows.
func (t Table) RowCount() int {
	return len(t.DataRows())
}

// ColumnCount is the widest data row's cell count.
func (t Table) ColumnCount() int {
	n := 0
	for _, l := range t.Lines {
		if len(l.Cells) > n {
			n = len(l.Cells)
		}
	}
	return n
}

// Cell returns the cell at 1-based row and column.
func (t Table) Cell(row, col int) (Cell, bool) {
	rows := t.DataRows()
	if row < 1 || row > len(rows) {
		return Cell{}, false
	}
	cells := rows[row-1].Cells
	if col < 1 || col > len(cells) {
		return Cell{}, false
	}
	return cells[col-1], true
}

// RowRange returns the byte range of a data row from its first pipe to the
// end of the line.
func (t Table) RowRange(row int) (types.Range, bool) {
	rows := t.DataRows()
	if row < 1 || row > len(rows) {
		return types.Range{}, false
	}
	l := rows[row-1]
	return types.Range{Start: l.Range.Start + len(l.Indent), End: l.Range.End}, true
}

// Bounds is the range covering the whole table.
func (t Table) Bounds() types.Range {
	return types.Range{Start: t.Start, End: t.End}
}

// Grid returns the cell texts of every line; separators are nil rows.
func (t Table) Grid() [][]string {
	grid := make([][]string, len(t.Lines))
	for i, l := range t.Lines {
		if l.Hline {
			continue
		}
		row := make([]string, len(l.Cells))
		for j, c := range l.Cells {
			row[j] = c.Text
		}
		grid[i] = row
	}
	return grid
}
