// Package render keeps the visual highlight markers of one document and
// paints them onto text for a terminal.
package render

import (
	"sort"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

var _ types.Renderer = (*Layer)(nil)

// Layer is an in-memory marker set.
type Layer struct {
	markers []types.MarkerHandle
	nextID  int
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{nextID: 1}
}

// CreateMarker adds a marker over r.
func (l *Layer) CreateMarker(r types.Range, spec types.MarkerSpec) types.MarkerHandle {
	h := types.MarkerHandle{ID: l.nextID, Range: r, Spec: spec}
	l.nextID++
	l.markers = append(l.markers, h)
	return h
}

// RemoveMarkers drops markers overlapping r that match axis and index. A
// nil axis matches every axis and index 0 matches every index.
func (l *Layer) RemoveMarkers(r types.Range, axis *types.Axis, index int) {
	kept := l.markers[:0]
	for _, m := range l.markers {
		if m.Range.Overlaps(r) &&
			(axis == nil || m.Spec.Axis == *axis) &&
			(index == 0 || m.Spec.Index == index) {
			continue
		}
		kept = append(kept, m)
	}
	l.markers = kept
}

// MarkersAt returns the markers covering point, highest priority first.
func (l *Layer) MarkersAt(point int) []types.MarkerHandle {
	var out []types.MarkerHandle
	for _, m := range l.markers {
		if m.Range.Contains(point) {
			out = append(out, m)
		}
	}
	sortByPriority(out)
	return out
}

// Markers returns every marker in creation order.
func (l *Layer) Markers() []types.MarkerHandle {
	return append([]types.MarkerHandle(nil), l.markers...)
}

func sortByPriority(ms []types.MarkerHandle) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Spec.Priority != ms[j].Spec.Priority {
			return ms[i].Spec.Priority > ms[j].Spec.Priority
		}
		return ms[i].ID > ms[j].ID
	})
}
