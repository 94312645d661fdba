// Package remap recomputes stored highlight indices after a structural edit
// to one axis of a table.
package remap

import (
	"sort"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Result classifies what an edit did to a stored index.
type Result int

// Remap results.
const (
	Unchanged Result = iota
	Changed
	Removed
)

// Outcome is the effect of an edit on one index. New is only set for Changed.
type Outcome struct {
	Result Result
	Old    int
	New    int
}

// Remap applies the edit rule for kind at reference index ref to index i.
func Remap(i int, kind types.EditKind, ref int) Outcome {
	switch kind {
	case types.EditInsert:
		if i >= ref {
			return changed(i, i+1)
		}
	case types.EditDelete:
		if i == ref {
			return Outcome{Result: Removed, Old: i}
		}
		if i > ref {
			return changed(i, i-1)
		}
	case types.EditMoveEarlier:
		if i == ref {
			return changed(i, i+1)
		}
		if i == ref+1 {
			return changed(i, i-1)
		}
	case types.EditMoveLater:
		if i == ref {
			return changed(i, i-1)
		}
		if i == ref-1 {
			return changed(i, i+1)
		}
	}
	return Outcome{Result: Unchanged, Old: i, New: i}
}

func changed(old, new int) Outcome {
	return Outcome{Result: Changed, Old: old, New: new}
}

// ApplyAxis remaps every entry of one axis and returns the new map together
// with the delta the caller needs to reconcile rendered markers. The input
// map is not modified.
func ApplyAxis(entries map[int]types.HighlightEntry, kind types.EditKind, ref int) (map[int]types.HighlightEntry, types.RemapDelta) {
	out := make(map[int]types.HighlightEntry, len(entries))
	var delta types.RemapDelta

	for _, idx := range sortedIndices(entries) {
		entry := entries[idx]
		o := Remap(idx, kind, ref)
		switch o.Result {
		case Removed:
			delta.Removed = append(delta.Removed, idx)
		case Changed:
			entry.Index = o.New
			out[o.New] = entry
			delta.Changed = append(delta.Changed, types.IndexChange{Old: o.Old, New: o.New})
		default:
			out[idx] = entry
		}
	}
	return out, delta
}

func sortedIndices(entries map[int]types.HighlightEntry) []int {
	idx := make([]int, 0, len(entries))
	for i := range entries {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
