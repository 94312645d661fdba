package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/pkg/tablemarks"
)

const modulePath = "github.com/mesh-intelligence/tablemarks"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tablemarks version",
		// version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tablemarks v%s\nmodule: %s\n", tablemarks.Version, modulePath)
			return nil
		},
	}
}
