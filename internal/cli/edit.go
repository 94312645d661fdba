package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/internal/orgtable"
	"github.com/mesh-intelligence/tablemarks/internal/persist"
)

// editOps maps operation names to editor methods.
var editOps = map[string]func(*orgtable.Editor) error{
	"insert-column":     (*orgtable.Editor).InsertColumn,
	"delete-column":     (*orgtable.Editor).DeleteColumn,
	"move-column-left":  (*orgtable.Editor).MoveColumnLeft,
	"move-column-right": (*orgtable.Editor).MoveColumnRight,
	"insert-row":        (*orgtable.Editor).InsertRow,
	"delete-row":        (*orgtable.Editor).DeleteRow,
	"move-row-up":       (*orgtable.Editor).MoveRowUp,
	"move-row-down":     (*orgtable.Editor).MoveRowDown,
}

func editOpNames() string {
	names := make([]string, 0, len(editOps))
	for n := range editOps {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newEditCmd(a *app) *cobra.Command {
	var (
		table       string
		column, row int
	)
	cmd := &cobra.Command{
		Use:   "edit FILE OPERATION",
		Short: "Apply a structural table edit and carry highlights along",
		Long: `Edit applies one structural operation to a table in FILE at the cell given
by --column and --row (default 1), writes the realigned document back and
moves the stored highlights to follow their cells.

Operations: ` + editOpNames() + `

Example:
  tablemarks edit notes.org insert-column --column 2
  tablemarks edit notes.org move-row-down --table sales --row 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := editOps[args[1]]
			if !ok {
				return userError(fmt.Errorf("unknown operation %q (want one of: %s)", args[1], editOpNames()))
			}
			return a.runEdit(cmd, args[0], table, row, column, args[1], op)
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table name or 1-based ordinal (default: first table)")
	cmd.Flags().IntVar(&column, "column", 1, "1-based column the cursor is on")
	cmd.Flags().IntVar(&row, "row", 1, "1-based row the cursor is on")
	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, path, table string, row, column int, name string, op func(*orgtable.Editor) error) error {
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
	if err := doc.editor.GotoCell(row, column); err != nil {
		return classify(err)
	}

	// The session subscribes to the editor and remaps the store on the edit.
	a.newSession(doc, store)
	if err := op(doc.editor); err != nil {
		return classify(err)
	}
	if err := persist.WriteAtomic(doc.path, []byte(doc.editor.Text())); err != nil {
		return sysError(fmt.Errorf("write %s: %w", path, err))
	}

	a.logger.Debug("edit applied", "op", name, "row", row, "column", column)
	if a.flags.jsonMode {
		tbl, ok := doc.editor.Table()
		if !ok {
			return writeJSON(cmd, nil)
		}
		record, _ := store.Table(doc.path, doc.context(tbl, a.anchorOptions()))
		return writeJSON(cmd, record)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
	return nil
}
