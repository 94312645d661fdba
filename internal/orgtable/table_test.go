package orgtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `Intro line.
#+NAME: sales
| region | q1 | q2 |
|--------+----+----|
| north  | 10 | 20 |
| south  | 5  | 150 |
Between.
  | x | y
Outro.
`

func TestFindTables(t *testing.T) {
	tables := FindTables(doc)
	require.Len(t, tables, 2)

	sales := tables[0]
	assert.Equal(t, strings.Index(doc, "| region"), sales.Start)
	assert.Equal(t, 3, sales.RowCount())
	assert.Equal(t, 3, sales.ColumnCount())
	assert.True(t, sales.Lines[1].Hline)

	c, ok := sales.Cell(3, 3)
	require.True(t, ok)
	assert.Equal(t, "150", c.Text)
	assert.Equal(t, " 150 ", doc[c.Range.Start:c.Range.End])

	indented := tables[1]
	assert.Equal(t, strings.Index(doc, "| x"), indented.Start)
	assert.Equal(t, 2, indented.ColumnCount(), "missing trailing pipe still yields the last cell")
	_, ok = indented.Cell(1, 3)
	assert.False(t, ok)
}

func TestTableAtAndRowRange(t *testing.T) {
	off := strings.Index(doc, "north")
	tbl, ok := TableAt(doc, off)
	require.True(t, ok)

	r, ok := tbl.RowRange(2)
	require.True(t, ok)
	assert.Equal(t, "| north  | 10 | 20 |", doc[r.Start:r.End])

	_, ok = TableAt(doc, strings.Index(doc, "Between"))
	assert.False(t, ok)

	_, ok = TableStartingAt(doc, tbl.Start)
	assert.True(t, ok)
}

func TestFormatAligns(t *testing.T) {
	got := Format([][]string{{"a", "bbb"}, nil, {"cc", "d"}}, "  ")
	assert.Equal(t, "  | a  | bbb |\n  |----+-----|\n  | cc | d   |", got)
}

func TestFormatWideRunes(t *testing.T) {
	got := Format([][]string{{"日本"}, {"ab"}}, "")
	assert.Equal(t, "| 日本 |\n| ab   |", got)
}
