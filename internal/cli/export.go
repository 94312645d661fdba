package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/internal/export"
	"github.com/mesh-intelligence/tablemarks/internal/persist"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	var table, output string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a highlighted table to an .xlsx workbook",
		Long: `Export writes one table of FILE to a spreadsheet, filling each highlighted
cell with its highlight color.

Example:
  tablemarks export notes.org --table sales -o sales.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args[0], table, output)
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table name or 1-based ordinal (default: first table)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "workbook path (default: FILE with an .xlsx extension)")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, path, table, output string) error {
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

	ctx := doc.context(tbl, a.anchorOptions())
	record, ok := store.Table(doc.path, ctx)
	if !ok {
		record = *types.NewTableHighlights("", ctx)
	}

	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, tbl, record); err != nil {
		return classify(err)
	}
	if err := persist.WriteAtomic(output, buf.Bytes()); err != nil {
		return sysError(fmt.Errorf("write %s: %w", output, err))
	}

	if a.flags.jsonMode {
		return writeJSON(cmd, map[string]string{"output": output, "table": ctx.DisplayName()})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", ctx.DisplayName(), output)
	return nil
}
