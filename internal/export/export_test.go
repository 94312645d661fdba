package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/tablemarks/internal/orgtable"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

const doc = `| item  | qty | note |
|-------+-----+------|
| nuts  | 3   | ok   |
| bolts | 40  | low  |
`

func table(t *testing.T) orgtable.Table {
	t.Helper()
	tbl, ok := orgtable.TableAt(doc, 0)
	require.True(t, ok)
	return tbl
}

func TestHex(t *testing.T) {
	for in, want := range map[string]string{
		"yellow":  "FFFF00",
		"Red":     "FF0000",
		"#a1b2c3": "A1B2C3",
		"00ff00":  "00FF00",
	} {
		got, err := Hex(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := Hex("214")
	assert.ErrorIs(t, err, types.ErrInvalidColor)
}

func TestFillsPriority(t *testing.T) {
	rec := types.NewTableHighlights("t1", types.TableContext{})
	rec.Rows[3] = types.HighlightEntry{Index: 3, Color: "blue"}
	rec.Columns[2] = types.HighlightEntry{Index: 2, Color: "yellow"}
	rec.Columns[3] = types.HighlightEntry{Index: 3, Color: "red", Predicate: "=ok", Extend: true}

	fills, err := Fills(table(t), *rec)
	require.NoError(t, err)

	assert.Equal(t, "yellow", fills[[2]int{1, 2}])
	assert.Equal(t, "yellow", fills[[2]int{3, 2}], "column beats row")
	assert.Equal(t, "blue", fills[[2]int{3, 1}])
	assert.Equal(t, "red", fills[[2]int{2, 1}], "extended row")
	assert.Equal(t, "red", fills[[2]int{2, 3}])
	_, ok := fills[[2]int{1, 1}]
	assert.False(t, ok)
}

func TestWriteWorkbook(t *testing.T) {
	rec := types.NewTableHighlights("t1", types.TableContext{DeclaredName: "stock"})
	rec.Columns[2] = types.HighlightEntry{Index: 2, Color: "green", Predicate: ">10"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table(t), *rec))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"stock"}, f.GetSheetList())
	v, err := f.GetCellValue("stock", "A3")
	require.NoError(t, err)
	assert.Equal(t, "bolts", v)
	v, err = f.GetCellValue("stock", "B3")
	require.NoError(t, err)
	assert.Equal(t, "40", v)

	plain, err := f.GetCellStyle("stock", "B2")
	require.NoError(t, err)
	filled, err := f.GetCellStyle("stock", "B3")
	require.NoError(t, err)
	assert.NotEqual(t, plain, filled)
}

func TestWriteRejectsUnknownColor(t *testing.T) {
	rec := types.NewTableHighlights("t1", types.TableContext{})
	rec.Rows[1] = types.HighlightEntry{Index: 1, Color: "chartreuse-ish"}
	err := Write(&bytes.Buffer{}, table(t), *rec)
	assert.ErrorIs(t, err, types.ErrInvalidColor)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", SheetName("  "))
	assert.Equal(t, "a_b_c", SheetName("a/b:c"))
	assert.Len(t, []rune(SheetName("abcdefghijklmnopqrstuvwxyz0123456789")), maxSheetName)
}
