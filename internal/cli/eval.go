package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tablemarks/internal/predicate"
)

type evalResult struct {
	Value string `json:"value"`
	Match bool   `json:"match"`
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval PREDICATE [VALUE...]",
		Short: "Check a predicate and evaluate it against sample values",
		Long: `Eval parses PREDICATE, prints its normalized form and reports whether each
VALUE satisfies it. Comparisons are separated by "and" / "or"; "and" binds
tighter. Ordering operators need numeric operands.

Example:
  tablemarks eval ">10 and <100" 5 50 abc
  tablemarks eval "=done or =n/a" done todo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := predicate.Build(args[0])
			if err != nil {
				return userError(err)
			}
			results := make([]evalResult, 0, len(args)-1)
			for _, v := range args[1:] {
				results = append(results, evalResult{Value: v, Match: p.Match(v)})
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, struct {
					Predicate string       `json:"predicate"`
					Results   []evalResult `json:"results"`
				}{p.String(), results})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "predicate: %s\n", p)
			for _, r := range results {
				fmt.Fprintf(out, "%-20s %t\n", r.Value, r.Match)
			}
			return nil
		},
	}
}
