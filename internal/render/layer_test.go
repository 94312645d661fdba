package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

func TestLayerCreateQueryRemove(t *testing.T) {
	l := NewLayer()
	col := l.CreateMarker(types.Range{Start: 0, End: 10}, types.MarkerSpec{Axis: types.AxisColumn, Index: 2, Color: "red", Priority: types.PriorityColumn})
	row := l.CreateMarker(types.Range{Start: 5, End: 20}, types.MarkerSpec{Axis: types.AxisRow, Index: 1, Color: "blue", Priority: types.PriorityRow})
	assert.NotEqual(t, col.ID, row.ID)

	at := l.MarkersAt(7)
	require.Len(t, at, 2)
	assert.Equal(t, col.ID, at[0].ID, "column markers win over rows")
	assert.Len(t, l.MarkersAt(15), 1)
	assert.Empty(t, l.MarkersAt(20))

	rowAxis := types.AxisRow
	l.RemoveMarkers(types.Range{Start: 0, End: 100}, &rowAxis, 0)
	assert.Len(t, l.Markers(), 1)

	colAxis := types.AxisColumn
	l.RemoveMarkers(types.Range{Start: 0, End: 100}, &colAxis, 3)
	assert.Len(t, l.Markers(), 1, "index filter must match")

	l.RemoveMarkers(types.Range{Start: 50, End: 60}, nil, 0)
	assert.Len(t, l.Markers(), 1, "range must overlap")

	l.RemoveMarkers(types.Range{Start: 0, End: 1}, nil, 0)
	assert.Empty(t, l.Markers())
}

func TestPaintKeepsText(t *testing.T) {
	text := "| a | b |\n| c | d |"
	l := NewLayer()
	assert.Equal(t, text, Paint(text, l))

	l.CreateMarker(types.Range{Start: 4, End: 8}, types.MarkerSpec{Color: "yellow", Priority: types.PriorityColumn})
	out := Paint(text, l)
	assert.Contains(t, out, "| a |")
	assert.True(t, strings.HasSuffix(out, "| c | d |"))
}

func TestColorsMatchMarkersAt(t *testing.T) {
	l := NewLayer()
	l.CreateMarker(types.Range{Start: 0, End: 10}, types.MarkerSpec{Color: "blue", Priority: types.PriorityRow})
	l.CreateMarker(types.Range{Start: 2, End: 5}, types.MarkerSpec{Color: "yellow", Priority: types.PriorityColumn})
	l.CreateMarker(types.Range{Start: 4, End: 8}, types.MarkerSpec{Color: "green", Priority: types.PriorityColumn})
	l.CreateMarker(types.Range{Start: 7, End: 9}, types.MarkerSpec{Color: "red", Priority: types.PriorityExtended})

	colors := l.colors(12)
	require.Len(t, colors, 12)
	for i, got := range colors {
		want := ""
		if ms := l.MarkersAt(i); len(ms) > 0 {
			want = ms[0].Spec.Color
		}
		assert.Equal(t, want, got, "offset %d", i)
	}
	assert.Equal(t, "", colors[11])
}

func TestSpec(t *testing.T) {
	s := Spec(types.AxisRow, types.HighlightEntry{Index: 3, Color: "red"})
	assert.Equal(t, types.PriorityRow, s.Priority)
	assert.Equal(t, 3, s.Index)

	s = Spec(types.AxisColumn, types.HighlightEntry{Index: 1, Color: "red", Predicate: ">1", Extend: true})
	assert.Equal(t, types.PriorityColumn, s.Priority)
	assert.True(t, s.Extend)
}

func TestColor(t *testing.T) {
	assert.Equal(t, "3", string(Color("Yellow")))
	assert.Equal(t, "#ff0000", string(Color("#ff0000")))
}
