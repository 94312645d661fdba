package orgtable

import (
	"fmt"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

var _ types.TableEditor = (*Editor)(nil)

// Editor holds a document and a cursor. Structural edits rewrite the table
// under the cursor, realign it, and notify subscribers.
type Editor struct {
	text        string
	cursor      int
	subscribers []func(types.EditEvent)
}

// NewEditor returns an editor over text with the cursor at offset 0.
func NewEditor(text string) *Editor {
	return &Editor{text: text}
}

// Text returns the current document text.
func (e *Editor) Text() string { return e.text }

// SetCursor moves the cursor, clamped to the document.
func (e *Editor) SetCursor(offset int) {
	e.cursor = max(0, min(offset, len(e.text)))
}

// Subscribe registers fn to receive an event after every structural edit.
func (e *Editor) Subscribe(fn func(types.EditEvent)) {
	e.subscribers = append(e.subscribers, fn)
}

func (e *Editor) emit(ev types.EditEvent) {
	for _, fn := range e.subscribers {
		fn(ev)
	}
}

// Table returns the table under the cursor.
func (e *Editor) Table() (Table, bool) {
	return TableAt(e.text, e.cursor)
}

// IsAtTable reports whether the cursor is inside a table.
func (e *Editor) IsAtTable() bool {
	_, ok := e.Table()
	return ok
}

// TableBounds returns the start and end of the table under the cursor, or
// (-1, -1) when the cursor is outside a table.
func (e *Editor) TableBounds() (int, int) {
	t, ok := e.Table()
	if !ok {
		return -1, -1
	}
	return t.Start, t.End
}

// position returns the 1-based line index within t and column under the
// cursor. Column is 0 on a separator or before the first pipe.
func (e *Editor) position(t Table) (lineIdx, col int) {
	for i, l := range t.Lines {
		if e.cursor < l.Range.Start || e.cursor > l.Range.End {
			continue
		}
		for j, c := range l.Cells {
			if e.cursor >= c.Range.Start && e.cursor <= c.Range.End {
				return i, j + 1
			}
		}
		if len(l.Cells) > 0 && e.cursor > l.Cells[len(l.Cells)-1].Range.End {
			return i, len(l.Cells)
		}
		return i, 0
	}
	return -1, 0
}

// CurrentColumn returns the 1-based column under the cursor, or 0.
func (e *Editor) CurrentColumn() int {
	t, ok := e.Table()
	if !ok {
		return 0
	}
	_, col := e.position(t)
	return col
}

// CurrentRow returns the 1-based data row under the cursor, or 0 when the
// cursor is outside a table or on a separator.
func (e *Editor) CurrentRow() int {
	t, ok := e.Table()
	if !ok {
		return 0
	}
	lineIdx, _ := e.position(t)
	if lineIdx < 0 || t.Lines[lineIdx].Hline {
		return 0
	}
	row := 0
	for i := 0; i <= lineIdx; i++ {
		if !t.Lines[i].Hline {
			row++
		}
	}
	return row
}

// GotoColumn moves the cursor to column i of the current row.
func (e *Editor) GotoColumn(i int) error {
	row := e.CurrentRow()
	if row == 0 {
		return types.ErrNotAtTable
	}
	return e.gotoCell(row, i)
}

// GotoRow moves the cursor to row i, keeping the current column.
func (e *Editor) GotoRow(i int) error {
	if !e.IsAtTable() {
		return types.ErrNotAtTable
	}
	col := max(e.CurrentColumn(), 1)
	return e.gotoCell(i, col)
}

// GotoCell moves the cursor to the first content byte of a cell.
func (e *Editor) GotoCell(row, col int) error {
	if !e.IsAtTable() {
		return types.ErrNotAtTable
	}
	return e.gotoCell(row, col)
}

func (e *Editor) gotoCell(row, col int) error {
	t, _ := e.Table()
	c, ok := t.Cell(row, col)
	if !ok {
		return fmt.Errorf("%w: row %d column %d", types.ErrOutOfRange, row, col)
	}
	e.cursor = c.Range.Start + 1
	if e.cursor > c.Range.End {
		e.cursor = c.Range.End
	}
	return nil
}

// InsertColumn inserts an empty column before the current one.
func (e *Editor) InsertColumn() error {
	return e.editColumn(types.EditInsert, func(grid [][]string, col int) int {
		for i, row := range grid {
			if row == nil {
				continue
			}
			row = padRow(row, col-1)
			grid[i] = append(row[:col-1], append([]string{""}, row[col-1:]...)...)
		}
		return col
	}, func(col, _ int) (int, error) { return col, nil })
}

// DeleteColumn removes the current column.
func (e *Editor) DeleteColumn() error {
	return e.editColumn(types.EditDelete, func(grid [][]string, col int) int {
		for i, row := range grid {
			if row == nil || col > len(row) {
				continue
			}
			grid[i] = append(row[:col-1], row[col:]...)
		}
		return col
	}, func(col, _ int) (int, error) { return col, nil })
}

// MoveColumnLeft swaps the current column with the one before it.
func (e *Editor) MoveColumnLeft() error {
	return e.editColumn(types.EditMoveEarlier, func(grid [][]string, col int) int {
		swapColumns(grid, col-1, col)
		return col - 1
	}, func(col, _ int) (int, error) {
		if col < 2 {
			return 0, fmt.Errorf("%w: cannot move column %d left", types.ErrInvalidEdit, col)
		}
		return col - 1, nil
	})
}

// MoveColumnRight swaps the current column with the one after it.
func (e *Editor) MoveColumnRight() error {
	return e.editColumn(types.EditMoveLater, func(grid [][]string, col int) int {
		swapColumns(grid, col, col+1)
		return col + 1
	}, func(col, ncols int) (int, error) {
		if col >= ncols {
			return 0, fmt.Errorf("%w: cannot move column %d right", types.ErrInvalidEdit, col)
		}
		return col + 1, nil
	})
}

// editColumn applies a column edit. ref computes the reference index of the
// emitted event from the current column and column count; mutate rewrites
// the grid and returns the column to leave the cursor on.
func (e *Editor) editColumn(kind types.EditKind, mutate func([][]string, int) int, ref func(col, ncols int) (int, error)) error {
	t, ok := e.Table()
	if !ok {
		return types.ErrNotAtTable
	}
	row, col := e.CurrentRow(), e.CurrentColumn()
	if row == 0 || col == 0 {
		return types.ErrNotAtTable
	}
	r, err := ref(col, t.ColumnCount())
	if err != nil {
		return err
	}
	grid := t.Grid()
	newCol := mutate(grid, col)
	e.rewrite(t, grid)
	if e.gotoCell(row, newCol) != nil {
		_ = e.gotoCell(row, newCol-1)
	}
	e.emit(types.EditEvent{Kind: kind, Axis: types.AxisColumn, Ref: r, Start: t.Start})
	return nil
}

// InsertRow inserts an empty row above the current one.
func (e *Editor) InsertRow() error {
	return e.editRow(types.EditInsert, func(grid [][]string, lineIdx, row int) ([][]string, int) {
		blank := make([]string, len(grid[lineIdx]))
		grid = append(grid[:lineIdx], append([][]string{blank}, grid[lineIdx:]...)...)
		return grid, row
	}, func(row, _ int) (int, error) { return row, nil })
}

// DeleteRow removes the current row.
func (e *Editor) DeleteRow() error {
	return e.editRow(types.EditDelete, func(grid [][]string, lineIdx, row int) ([][]string, int) {
		grid = append(grid[:lineIdx], grid[lineIdx+1:]...)
		return grid, row
	}, func(row, _ int) (int, error) { return row, nil })
}

// MoveRowUp swaps the current row with the data row above it.
func (e *Editor) MoveRowUp() error {
	return e.editRow(types.EditMoveEarlier, func(grid [][]string, _, row int) ([][]string, int) {
		swapRows(grid, row-1, row)
		return grid, row - 1
	}, func(row, _ int) (int, error) {
		if row < 2 {
			return 0, fmt.Errorf("%w: cannot move row %d up", types.ErrInvalidEdit, row)
		}
		return row - 1, nil
	})
}

// MoveRowDown swaps the current row with the data row below it.
func (e *Editor) MoveRowDown() error {
	return e.editRow(types.EditMoveLater, func(grid [][]string, _, row int) ([][]string, int) {
		swapRows(grid, row, row+1)
		return grid, row + 1
	}, func(row, nrows int) (int, error) {
		if row >= nrows {
			return 0, fmt.Errorf("%w: cannot move row %d down", types.ErrInvalidEdit, row)
		}
		return row + 1, nil
	})
}

// editRow applies a row edit; mutate receives the grid, the line index of
// the current row and its data row number, and returns the new grid and the
// row to leave the cursor on.
func (e *Editor) editRow(kind types.EditKind, mutate func([][]string, int, int) ([][]string, int), ref func(row, nrows int) (int, error)) error {
	t, ok := e.Table()
	if !ok {
		return types.ErrNotAtTable
	}
	row := e.CurrentRow()
	if row == 0 {
		return types.ErrNotAtTable
	}
	col := max(e.CurrentColumn(), 1)
	lineIdx, _ := e.position(t)
	r, err := ref(row, t.RowCount())
	if err != nil {
		return err
	}
	grid, newRow := mutate(t.Grid(), lineIdx, row)
	e.rewrite(t, grid)
	if !e.IsAtTable() || e.gotoCell(newRow, col) != nil {
		_ = e.gotoCell(newRow-1, col)
	}
	e.emit(types.EditEvent{Kind: kind, Axis: types.AxisRow, Ref: r, Start: t.Start})
	return nil
}

// rewrite replaces t in the document with the realigned grid and leaves the
// cursor at the start of the table.
func (e *Editor) rewrite(t Table, grid [][]string) {
	from := t.Lines[0].Range.Start
	indent := t.Lines[0].Indent
	e.text = e.text[:from] + Format(grid, indent) + e.text[t.End:]
	e.cursor = from + len(indent)
}

// padRow extends row with empty cells up to n entries.
func padRow(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}

// swapColumns swaps 1-based columns a and b in every data row.
func swapColumns(grid [][]string, a, b int) {
	for i, row := range grid {
		if row == nil {
			continue
		}
		row = padRow(row, b)
		row[a-1], row[b-1] = row[b-1], row[a-1]
		grid[i] = row
	}
}

// swapRows swaps 1-based data rows a and b, leaving separators in place.
func swapRows(grid [][]string, a, b int) {
	la, lb := dataLine(grid, a), dataLine(grid, b)
	if la < 0 || lb < 0 {
		return
	}
	grid[la], grid[lb] = grid[lb], grid[la]
}

// dataLine maps a 1-based data row to its index in grid.
func dataLine(grid [][]string, row int) int {
	n := 0
	for i, r := range grid {
		if r == nil {
			continue
		}
		n++
		if n == row {
			return i
		}
	}
	return -1
}
