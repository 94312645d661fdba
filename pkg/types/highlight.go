package types

// UnnamedTable is the display name of a table without a declared name.
const UnnamedTable = "(unnamed)"

// TableContext identifies a table independent of its buffer position.
// DeclaredName is empty when the table has no name directive. BeforeText
// and AfterText are fixed-width windows captured around the table start.
type TableContext struct {
	DeclaredName string `json:"declared_name,omitempty"`
	BeforeText   string `json:"before_text"`
	AfterText    string `json:"after_text"`
}

// DisplayName returns the declared name or UnnamedTable.
func (c TableContext) DisplayName() string {
	if c.DeclaredName == "" {
		return UnnamedTable
	}
	return c.DeclaredName
}

// HighlightEntry is one highlight on one axis index. Predicate and Extend
// only apply to column entries; an empty Predicate highlights every cell.
type HighlightEntry struct {
	Index     int    `json:"index"`
	Color     string `json:"color"`
	Predicate string `json:"predicate,omitempty"`
	Extend    bool   `json:"extend,omitempty"`
}

// Conditional reports whether the entry only highlights matching cells.
func (e HighlightEntry) Conditional() bool {
	return e.Predicate != ""
}

// TableHighlights holds every highlight of one table. Each axis map is keyed
// by the entry index; there is at most one entry per index per axis.
type TableHighlights struct {
	TableID string                 `json:"table_id"`
	Context TableContext           `json:"context"`
	Columns map[int]HighlightEntry `json:"columns"`
	Rows    map[int]HighlightEntry `json:"rows"`
}

// NewTableHighlights returns an empty record for the given context.
func NewTableHighlights(id string, ctx TableContext) *TableHighlights {
	return &TableHighlights{
		TableID: id,
		Context: ctx,
		Columns: make(map[int]HighlightEntry),
		Rows:    make(map[int]HighlightEntry),
	}
}

// Entries returns the map for the given axis, creating it if nil.
func (t *TableHighlights) Entries(axis Axis) map[int]HighlightEntry {
	if axis == AxisRow {
		if t.Rows == nil {
			t.Rows = make(map[int]HighlightEntry)
		}
		return t.Rows
	}
	if t.Columns == nil {
		t.Columns = make(map[int]HighlightEntry)
	}
	return t.Columns
}

// SetEntries replaces the map for the given axis.
func (t *TableHighlights) SetEntries(axis Axis, entries map[int]HighlightEntry) {
	if axis == AxisRow {
		t.Rows = entries
		return
	}
	t.Columns = entries
}

// Empty reports whether both axes are empty.
func (t *TableHighlights) Empty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// Clone returns a deep copy.
func (t *TableHighlights) Clone() *TableHighlights {
	c := &TableHighlights{
		TableID: t.TableID,
		Context: t.Context,
		Columns: make(map[int]HighlightEntry, len(t.Columns)),
		Rows:    make(map[int]HighlightEntry, len(t.Rows)),
	}
	for k, v := range t.Columns {
		c.Columns[k] = v
	}
	for k, v := range t.Rows {
		c.Rows[k] = v
	}
	return c
}

// DocumentHighlights groups the tables of one document.
type DocumentHighlights struct {
	DocumentID string             `json:"document_id"`
	Tables     []*TableHighlights `json:"tables"`
}

// Store maps document IDs to their highlights. The value is owned by the
// caller; nothing in this module keeps a process-wide instance.
type Store struct {
	Documents map[string]*DocumentHighlights
}

// NewStore returns an empty store.
func NewStore() Store {
	return Store{Documents: make(map[string]*DocumentHighlights)}
}

// Clone returns a deep copy of the store.
func (s Store) Clone() Store {
	out := NewStore()
	for id, doc := range s.Documents {
		cp := &DocumentHighlights{DocumentID: doc.DocumentID}
		for _, t := range doc.Tables {
			cp.Tables = append(cp.Tables, t.Clone())
		}
		out.Documents[id] = cp
	}
	return out
}

// IndexChange records an entry that moved from Old to New.
type IndexChange struct {
	Old int `json:"old"`
	New int `json:"new"`
}

// RemapDelta is the result of remapping one axis: entries that moved and
// entries that were dropped. Both lists are ordered by old index.
type RemapDelta struct {
	Changed []IndexChange `json:"changed"`
	Removed []int         `json:"removed"`
}

// Empty reports whether the remap touched nothing.
func (d RemapDelta) Empty() bool {
	return len(d.Changed) == 0 && len(d.Removed) == 0
}

// TableSummary describes one known table for listings. Position is nil
// when the table could not be located in the document.
type TableSummary struct {
	DocumentID  string `json:"document_id"`
	TableID     string `json:"table_id"`
	Name        string `json:"name"`
	Position    *int   `json:"position"`
	ColumnCount int    `json:"column_count"`
	RowCount    int    `json:"row_count"`
}
