package types

// Range is a half-open byte range [Start, End) in a document.
type Range struct {
	Start int
	End   int
}

// Contains reports whether point lies inside the range.
func (r Range) Contains(point int) bool {
	return point >= r.Start && point < r.End
}

// Overlaps reports whether the two ranges share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Marker priorities. Column markers draw over row markers, and rows widened
// by an extended column predicate draw under both.
const (
	PriorityExtended = 80
	PriorityRow      = 90
	PriorityColumn   = 100
)

// MarkerSpec describes a highlight marker to create.
type MarkerSpec struct {
	Axis      Axis
	Index     int
	Color     string
	Predicate string
	Extend    bool
	Priority  int
}

// MarkerHandle is a rendered marker.
type MarkerHandle struct {
	ID    int
	Range Range
	Spec  MarkerSpec
}

// Renderer creates, removes and queries visual highlight markers.
type Renderer interface {
	// CreateMarker renders a marker over r and returns its handle.
	CreateMarker(r Range, spec MarkerSpec) MarkerHandle

	// RemoveMarkers removes markers overlapping r. A nil axis matches every
	// axis; index 0 matches every index.
	RemoveMarkers(r Range, axis *Axis, index int)

	// MarkersAt returns the markers covering point, highest priority first.
	MarkersAt(point int) []MarkerHandle
}

// TableEditor exposes the table under the cursor. Structural edits are
// reported to subscribers as EditEvent values after they complete.
type TableEditor interface {
	IsAtTable() bool
	TableBounds() (start, end int)
	CurrentColumn() int
	CurrentRow() int
	GotoColumn(i int) error
	GotoRow(i int) error
	Subscribe(fn func(EditEvent))
}

// Persister saves and loads a whole Store. Save overwrites any prior
// content; Load returns an empty store when nothing has been saved yet.
type Persister interface {
	Save(s Store) error
	Load() (Store, error)
}
