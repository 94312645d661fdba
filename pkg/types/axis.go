package types

import "fmt"

// Axis selects the column or the row dimension of a table.
type Axis int

// Table axes.
const (
	AxisColumn Axis = iota
	AxisRow
)

// String returns "column" or "row".
func (a Axis) String() string {
	switch a {
	case AxisColumn:
		return "column"
	case AxisRow:
		return "row"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Valid reports whether a is AxisColumn or AxisRow.
func (a Axis) Valid() bool {
	return a == AxisColumn || a == AxisRow
}

// EditKind is a structural edit applied to one axis of a table.
type EditKind int

// Structural edit kinds. MoveEarlier swaps the reference index with the one
// before it; MoveLater swaps it with the one after it.
const (
	EditInsert EditKind = iota
	EditDelete
	EditMoveEarlier
	EditMoveLater
)

var editKindNames = map[EditKind]string{
	EditInsert:      "insert",
	EditDelete:      "delete",
	EditMoveEarlier: "move-earlier",
	EditMoveLater:   "move-later",
}

func (k EditKind) String() string {
	if name, ok := editKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("edit(%d)", int(k))
}

// EditEvent is emitted by a TableEditor after it completes a structural edit.
// Ref is the 1-based column or row at which the edit occurred. Start is the
// offset of the edited table's first character; edits rewrite a table in
// place, so it holds even when the edit removed the table's last row or
// column.
type EditEvent struct {
	Kind  EditKind
	Axis  Axis
	Ref   int
	Start int
}
