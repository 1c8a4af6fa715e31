package cli

import (
	"fmt"

	"github.com/relab/majority/internal/config"
	"github.com/relab/majority/logging"
	"github.com/relab/majority/metrics"
	"github.com/relab/majority/resolver"
	"github.com/relab/majority/round"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// addRoundFlags adds the flags that configure a round.
func addRoundFlags(flags *pflag.FlagSet) {
	def := config.Default()
	flags.Int("proposers", def.Proposers, "number of proposers in each round")
	flags.StringSlice("domain", def.Domain, "candidate values")
	flags.String("strategy", def.Strategy, "name of the proposer strategy (see --list-strategies)")
	flags.StringSlice("weights", nil, "value=weight pairs for the weighted strategy")
	flags.String("value", "", "value proposed by every proposer with the fixed strategy")
	flags.Int64("seed", 0, "shared random number generator seed (0 uses the current time)")
	flags.String("tie-break", def.TieBreak, fmt.Sprintf("tie-break policy (%s, %s)", resolver.TieBreakEarliest, resolver.TieBreakDomainOrder))
	flags.Int("quorum", 0, "minimum number of proposers that must propose the agreed value (0 disables)")
	flags.Int("concurrent", 0, "number of proposers to query at the same time (0 queries them one by one)")
	flags.Duration("propose-timeout", 0, "time each proposer has to propose a value (0 disables)")
}

// bindFlags binds the flags of cmd to the global viper instance.
// Commands bind in PreRunE because they share flag names.
func bindFlags(cmd *cobra.Command, _ []string) error {
	return viper.BindPFlags(cmd.Flags())
}

func newCoordinator(cfg *config.Config, stats *metrics.Stats) *round.Coordinator[string] {
	logger := logging.New("round")
	res := resolver.New[string](append(cfg.ResolverOptions(), resolver.WithLogger(logging.New("resolver")))...)
	opts := []round.Option{
		round.WithLogger(logger),
		round.WithSharedSeed(cfg.Seed),
	}
	if stats != nil {
		opts = append(opts, round.WithStats(stats))
	}
	return round.New(res, round.Named(cfg.Strategy, cfg.StrategyParams()), opts...)
}
