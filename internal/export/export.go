// Package export writes a highlighted table to an .xlsx workbook. Cells
// take the fill color of the highlight that wins at that cell.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/tablemarks/internal/orgtable"
	"github.com/mesh-intelligence/tablemarks/internal/predicate"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

var colorHex = map[string]string{
	"black":   "000000",
	"red":     "FF0000",
	"green":   "00B050",
	"yellow":  "FFFF00",
	"blue":    "5B9BD5",
	"magenta": "FF00FF",
	"cyan":    "00FFFF",
	"white":   "FFFFFF",
	"gray":    "BFBFBF",
	"grey":    "BFBFBF",
	"orange":  "FFA500",
	"pink":    "FFC0CB",
	"purple":  "7030A0",
}

// Hex converts a highlight color to the RRGGBB form a fill takes.
func Hex(color string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(color))
	if h, ok := colorHex[c]; ok {
		return h, nil
	}
	c = strings.TrimPrefix(c, "#")
	if len(c) == 6 {
		if _, err := strconv.ParseUint(c, 16, 32); err == nil {
			return strings.ToUpper(c), nil
		}
	}
	return "", fmt.Errorf("%w: %q has no spreadsheet equivalent", types.ErrInvalidColor, color)
}

// Fills computes the winning color of each cell, keyed by 1-based
// [row, column]. Column highlights beat row highlights, which beat rows
// widened by an extending column predicate.
func Fills(tbl orgtable.Table, record types.TableHighlights) (map[[2]int]string, error) {
	fills := make(map[[2]int]string)
	rows, cols := tbl.RowCount(), tbl.ColumnCount()
	fillRow := func(row int, color string) {
		for c := 1; c <= cols; c++ {
			fills[[2]int{row, c}] = color
		}
	}

	type cellColor struct {
		row, col int
		color    string
	}
	var extended, columns []cellColor
	for _, e := range record.Columns {
		var pred predicate.Predicate
		if e.Conditional() {
			p, err := predicate.Build(e.Predicate)
			if err != nil {
				return nil, err
			}
			pred = p
		}
		for r := 1; r <= rows; r++ {
			cell, ok := tbl.Cell(r, e.Index)
			if !ok {
				continue
			}
			switch {
			case !e.Conditional():
				columns = append(columns, cellColor{r, e.Index, e.Color})
			case !pred.Match(cell.Text):
			case e.Extend:
				extended = append(extended, cellColor{r, 0, e.Color})
			default:
				columns = append(columns, cellColor{r, e.Index, e.Color})
			}
		}
	}

	for _, x := range extended {
		fillRow(x.row, x.color)
	}
	for _, e := range record.Rows {
		if e.Index <= rows {
			fillRow(e.Index, e.Color)
		}
	}
	for _, x := range columns {
		fills[[2]int{x.row, x.col}] = x.color
	}
	return fills, nil
}

// Write renders tbl and its highlights as a one-sheet workbook to w.
// Numeric cells are written as numbers.
func Write(w io.Writer, tbl orgtable.Table, record types.TableHighlights) error {
	fills, err := Fills(tbl, record)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(record.Context.DisplayName())
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for r := 1; r <= tbl.RowCount(); r++ {
		for c := 1; c <= tbl.ColumnCount(); c++ {
			cell, ok := tbl.Cell(r, c)
			if !ok {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, name, cellValue(cell.Text)); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
		}
	}

	styles := make(map[string]int)
	for pos, color := range fills {
		hex, err := Hex(color)
		if err != nil {
			return err
		}
		id, ok := styles[hex]
		if !ok {
			id, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}},
			})
			if err != nil {
				return fmt.Errorf("creating fill %s: %w", hex, err)
			}
			styles[hex] = id
		}
		name, err := excelize.CoordinatesToCellName(pos[1], pos[0])
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, name, name, id); err != nil {
			return fmt.Errorf("styling %s: %w", name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SheetName makes name acceptable as an Excel sheet name.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "Sheet1"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

func cellValue(text string) any {
	if predicate.IsNumeric(text) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v
		}
	}
	return text
}
