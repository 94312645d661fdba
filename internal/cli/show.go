package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/internal/render"
)

// markerJSON is the --json form of one rendered marker.
type markerJSON struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Axis      string `json:"axis"`
	Index     int    `json:"index"`
	Color     string `json:"color"`
	Predicate string `json:"predicate,omitempty"`
	Priority  int    `json:"priority"`
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a document with its highlights painted",
		Long: `Show restores every stored highlight of FILE and prints the document with
highlighted regions painted in their colors. With --json it prints the
marker ranges instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, args[0])
		},
	}
}

func (a *app) runShow(cmd *cobra.Command, path string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	sess, layer := a.newSession(doc, store)
	restored := sess.Restore()
	a.logger.Info("highlights restored", "tables", restored, "markers", len(layer.Markers()))

	if a.flags.jsonMode {
		out := []markerJSON{}
		for _, m := range layer.Markers() {
			out = append(out, markerJSON{
				Start:     m.Range.Start,
				End:       m.Range.End,
				Axis:      m.Spec.Axis.String(),
				Index:     m.Spec.Index,
				Color:     m.Spec.Color,
				Predicate: m.Spec.Predicate,
				Priority:  m.Spec.Priority,
			})
		}
		return writeJSON(cmd, out)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Paint(doc.editor.Text(), layer))
	return nil
}
