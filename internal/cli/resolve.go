package cli

import (
	"fmt"
	"io"

	"github.com/relab/majority"
	"github.com/relab/majority/internal/config"
	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a single round.",
	Long: `The resolve command creates the proposers, collects one proposal from each,
and prints the agreed value together with the tally and every proposal.
By default, 5 proposers pick uniformly at random among 1000, 2000 and 3000.`,
	Args:    cobra.NoArgs,
	PreRunE: bindFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.NewViper()
		if err != nil {
			return err
		}
		result, err := newCoordinator(cfg, nil).Run(cmd.Context(), cfg.Proposers, cfg.CandidateDomain())
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addRoundFlags(resolveCmd.Flags())
}

func printResult(w io.Writer, result majority.Result[string]) {
	fmt.Fprintf(w, "agreed value: %s\n", result.Value)
	fmt.Fprintf(w, "support: %d/%d", result.Support(), result.Tally.Total())
	if result.Tied() {
		fmt.Fprint(w, " (tie broken)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "tally: %v\n", result.Tally)
	fmt.Fprintln(w, "proposals:")
	for _, p := range result.Proposals {
		fmt.Fprintf(w, "  %v\n", p)
	}
}
