package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/internal/session"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [FILE...]",
		Short: "List tables that carry highlights",
		Long: `List shows every table with stored highlights, for the given files or for
every known document. POSITION is the table's current byte offset in the
file, or "-" when the table can no longer be found.

Example:
  tablemarks list
  tablemarks list notes.org --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, args)
		},
	}
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	docIDs := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return sysError(fmt.Errorf("resolve %s: %w", arg, err))
		}
		docIDs = append(docIDs, abs)
	}
	if len(args) == 0 {
		docIDs = nil
	}

	sums := session.Summaries(store, docIDs, readDocument, a.anchorOptions())
	if a.flags.jsonMode {
		if sums == nil {
			sums = []types.TableSummary{}
		}
		return writeJSON(cmd, sums)
	}
	printSummaries(cmd, sums)
	return nil
}

// printSummaries prints summaries in a human-readable table format.
func printSummaries(cmd *cobra.Command, sums []types.TableSummary) {
	if len(sums) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No highlighted tables.")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOCUMENT\tNAME\tPOSITION\tCOLUMNS\tROWS\tTABLE ID")
	for _, s := range sums {
		pos := "-"
		if s.Position != nil {
			pos = strconv.Itoa(*s.Position)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", s.DocumentID, s.Name, pos, s.ColumnCount, s.RowCount, s.TableID)
	}
	w.Flush()
}
