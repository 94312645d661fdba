package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/internal/highlight"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		table       string
		column, row int
		h           highlight.Highlight
	)
	cmd := &cobra.Command{
		Use:   "add FILE (--column N | --row N) --color COLOR",
		Short: "Highlight a column or row of a table",
		Long: `Add stores a highlight on one column or row of a table in FILE,
replacing any highlight already at that index.

A column highlight may carry a predicate (--when); only cells that satisfy
it are colored, and --extend colors the whole row of each matching cell.

Example:
  tablemarks add notes.org --table sales --column 3 --color yellow
  tablemarks add notes.org --column 2 --color red --when "<0"
  tablemarks add notes.org --column 2 --color green --when ">=100 and <200" --extend
  tablemarks add notes.org --row 4 --color blue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, index, err := axisIndex(column, row, cmd.Flags().Changed("column"), cmd.Flags().Changed("row"))
			if err != nil {
				return err
			}
			if axis == types.AxisRow && (h.Predicate != "" || h.Extend) {
				return userError(errors.New("--when and --extend apply to column highlights only"))
			}
			return a.runAdd(cmd, args[0], table, axis, index, h)
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table name or 1-based ordinal (default: first table)")
	cmd.Flags().IntVar(&column, "column", 0, "1-based column to highlight")
	cmd.Flags().IntVar(&row, "row", 0, "1-based row to highlight")
	cmd.Flags().StringVar(&h.Color, "color", "", "highlight color (name, #rrggbb or ANSI index)")
	cmd.Flags().StringVar(&h.Predicate, "when", "", "predicate a cell must satisfy, e.g. \">10 and <100\"")
	cmd.Flags().BoolVar(&h.Extend, "extend", false, "color the whole row of each matching cell")
	_ = cmd.MarkFlagRequired("color")
	return cmd
}

func (a *app) runAdd(cmd *cobra.Command, path, table string, axis types.Axis, index int, h highlight.Highlight) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	tbl, err := doc.selectTable(table, a.anchorOptions())
	if err != nil {
		return err
	}
	sess, _ := a.newSession(doc, store)

	if axis == types.AxisColumn {
		if err := doc.editor.GotoColumn(index); err != nil {
			return classify(fmt.Errorf("column %d: %w", index, err))
		}
		err = sess.HighlightColumn(h)
	} else {
		if err := doc.editor.GotoRow(index); err != nil {
			return classify(fmt.Errorf("row %d: %w", index, err))
		}
		err = sess.HighlightRow(h.Color)
	}
	if err != nil {
		return classify(err)
	}

	record, _ := store.Table(doc.path, doc.context(tbl, a.anchorOptions()))
	if a.flags.jsonMode {
		return writeJSON(cmd, record)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "highlighted %s %d of %s\n", axis, index, record.Context.DisplayName())
	return nil
}

func newRemoveCmd(a *app) *cobra.Command {
	var (
		table       string
		column, row int
	)
	cmd := &cobra.Command{
		Use:   "remove FILE (--column N | --row N)",
		Short: "Remove a column or row highlight",
		Long: `Remove deletes the highlight at one index of a table in FILE.
An index of 0 removes every highlight on that axis. Removing a highlight
that does not exist is not an error.

Example:
  tablemarks remove notes.org --column 3
  tablemarks remove notes.org --table sales --row 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, index, err := axisIndex(column, row, cmd.Flags().Changed("column"), cmd.Flags().Changed("row"))
			if err != nil {
				return err
			}
			if index < 0 {
				return userError(fmt.Errorf("%w: %d", types.ErrInvalidIndex, index))
			}
			return a.runRemove(cmd, args[0], table, axis, index)
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table name or 1-based ordinal (default: first table)")
	cmd.Flags().IntVar(&column, "column", 0, "1-based column, or 0 for all columns")
	cmd.Flags().IntVar(&row, "row", 0, "1-based row, or 0 for all rows")
	return cmd
}

func (a *app) runRemove(cmd *cobra.Command, path, table string, axis types.Axis, index int) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	if _, err := doc.selectTable(table, a.anchorOptions()); err != nil {
		return err
	}
	sess, _ := a.newSession(doc, store)
	if err := sess.Unhighlight(axis, index); err != nil {
		return classify(err)
	}

	what := fmt.Sprintf("%s %d", axis, index)
	if index == highlight.AllIndices {
		what = "all " + axis.String() + "s"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", what)
	return nil
}
