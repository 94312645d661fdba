package remap

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

func TestRemapRules(t *testing.T) {
	tests := []struct {
		name string
		i    int
		kind types.EditKind
		ref  int
		want Outcome
	}{
		{"insert before", 3, types.EditInsert, 3, Outcome{Changed, 3, 4}},
		{"insert after", 2, types.EditInsert, 3, Outcome{Unchanged, 2, 2}},
		{"insert far", 7, types.EditInsert, 1, Outcome{Changed, 7, 8}},
		{"delete at ref", 3, types.EditDelete, 3, Outcome{Result: Removed, Old: 3}},
		{"delete after ref", 5, types.EditDelete, 3, Outcome{Changed, 5, 4}},
		{"delete before ref", 2, types.EditDelete, 3, Outcome{Unchanged, 2, 2}},
		{"move earlier ref", 3, types.EditMoveEarlier, 3, Outcome{Changed, 3, 4}},
		{"move earlier next", 4, types.EditMoveEarlier, 3, Outcome{Changed, 4, 3}},
		{"move earlier other", 2, types.EditMoveEarlier, 3, Outcome{Unchanged, 2, 2}},
		{"move later ref", 3, types.EditMoveLater, 3, Outcome{Changed, 3, 2}},
		{"move later previous", 2, types.EditMoveLater, 3, Outcome{Changed, 2, 3}},
		{"move later other", 4, types.EditMoveLater, 3, Outcome{Unchanged, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remap(tt.i, tt.kind, tt.ref))
		})
	}
}

func entriesAt(indices ...int) map[int]types.HighlightEntry {
	m := make(map[int]types.HighlightEntry)
	for _, i := range indices {
		m[i] = types.HighlightEntry{Index: i, Color: "c"}
	}
	return m
}

func keys(m map[int]types.HighlightEntry) []int {
	var k []int
	for i, e := range m {
		k = append(k, i)
		if e.Index != i {
			panic("entry index out of sync with key")
		}
	}
	sort.Ints(k)
	return k
}

func TestApplyAxisInsert(t *testing.T) {
	in := entriesAt(1, 2, 4)
	out, delta := ApplyAxis(in, types.EditInsert, 2)

	assert.Equal(t, []int{1, 3, 5}, keys(out))
	assert.Equal(t, []types.IndexChange{{Old: 2, New: 3}, {Old: 4, New: 5}}, delta.Changed)
	assert.Empty(t, delta.Removed)
	assert.Equal(t, []int{1, 2, 4}, keys(in), "input must not be modified")
}

func TestApplyAxisDelete(t *testing.T) {
	out, delta := ApplyAxis(entriesAt(1, 2, 4), types.EditDelete, 2)

	assert.Equal(t, []int{1, 3}, keys(out))
	assert.Equal(t, []int{2}, delta.Removed)
	assert.Equal(t, []types.IndexChange{{Old: 4, New: 3}}, delta.Changed)
}

func TestApplyAxisMovesAreSwaps(t *testing.T) {
	out, delta := ApplyAxis(entriesAt(2, 3), types.EditMoveEarlier, 2)
	assert.Equal(t, []int{2, 3}, keys(out))
	assert.Len(t, delta.Changed, 2)

	out, _ = ApplyAxis(entriesAt(2), types.EditMoveLater, 2)
	assert.Equal(t, []int{1}, keys(out))
}

func TestApplyAxisProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := []types.EditKind{types.EditInsert, types.EditDelete, types.EditMoveEarlier, types.EditMoveLater}

	for n := 0; n < 500; n++ {
		in := map[int]types.HighlightEntry{}
		for j := 0; j < rng.Intn(8); j++ {
			i := rng.Intn(10) + 1
			in[i] = types.HighlightEntry{Index: i}
		}
		kind := kinds[rng.Intn(len(kinds))]
		ref := rng.Intn(10) + 1

		out, delta := ApplyAxis(in, kind, ref)
		require.NotPanics(t, func() { keys(out) })

		switch kind {
		case types.EditInsert:
			require.Len(t, out, len(in), "insert never loses entries")
			for i := range in {
				if i >= ref {
					assert.Contains(t, out, i+1)
				} else {
					assert.Contains(t, out, i)
				}
			}
		case types.EditDelete:
			_, hadRef := in[ref]
			if hadRef {
				assert.Equal(t, []int{ref}, delta.Removed)
				require.Len(t, out, len(in)-1)
			} else {
				require.Len(t, out, len(in))
			}
			for i := range in {
				if i > ref {
					assert.Contains(t, out, i-1)
				}
			}
		default:
			require.Len(t, out, len(in), "moves preserve the entry count")
			assert.Empty(t, delta.Removed)
		}
	}
}
