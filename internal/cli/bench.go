package cli

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/relab/majority"
	"github.com/relab/majority/internal/config"
	"github.com/relab/majority/internal/profiling"
	"github.com/relab/majority/internal/roundlog"
	"github.com/relab/majority/logging"
	"github.com/relab/majority/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run many rounds and print statistics.",
	Long: `The bench command runs a number of rounds with the same settings as 'majority resolve',
and prints how often each value won, how often the tie-break rule was needed,
and how long rounds took. Rounds that fail are counted and the bench continues.
The resolved rounds can be written to a round log for 'majority plot'.`,
	Args:    cobra.NoArgs,
	PreRunE: bindFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.NewViper()
		if err != nil {
			return err
		}
		summary, err := runBench(cmd, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	addRoundFlags(benchCmd.Flags())

	def := config.Default()
	benchCmd.Flags().Int("rounds", def.Rounds, "number of rounds to run")
	benchCmd.Flags().Float64("rate-limit", def.RateLimit, "maximum number of rounds per second")
	benchCmd.Flags().String("output", "", "file to write the round log to (disabled by default)")

	benchCmd.Flags().String("cpu-profile", "", "file to write a cpu profile to")
	benchCmd.Flags().String("mem-profile", "", "file to write a memory profile to")
	benchCmd.Flags().String("trace", "", "file to write an execution trace to")
	benchCmd.Flags().String("fgprof-profile", "", "file to write an fgprof profile to")
}

func runBench(cmd *cobra.Command, cfg *config.Config) (summary metrics.Summary, err error) {
	ctx := cmd.Context()
	logger := logging.New("bench")

	stopProfilers, err := profiling.Start(profiling.Profiles{
		CPU:    cfg.CPUProfile,
		Mem:    cfg.MemProfile,
		Trace:  cfg.Trace,
		Fgprof: cfg.FgprofProfile,
	})
	if err != nil {
		return summary, fmt.Errorf("failed to start profilers: %w", err)
	}
	defer func() { err = multierr.Append(err, stopProfilers()) }()

	var roundLog *roundlog.Writer
	if cfg.Output != "" {
		var f *os.File
		if f, err = os.Create(cfg.Output); err != nil {
			return summary, fmt.Errorf("failed to create round log: %w", err)
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		roundLog = roundlog.NewWriter(f)
	}

	limit := rate.Limit(cfg.RateLimit)
	if math.IsInf(cfg.RateLimit, 1) {
		limit = rate.Inf
	}
	limiter := rate.NewLimiter(limit, 1)

	stats := metrics.NewStats()
	coordinator := newCoordinator(cfg, stats)
	domain := cfg.CandidateDomain()

	for range cfg.Rounds {
		if err := limiter.Wait(ctx); err != nil {
			return stats.Summary(), err
		}
		result, err := coordinator.Run(ctx, cfg.Proposers, domain)
		if errors.Is(err, majority.ErrIncompleteRound) && ctx.Err() == nil {
			logger.Warn(err)
			continue
		}
		if err != nil {
			return stats.Summary(), err
		}
		if roundLog != nil {
			if err := roundLog.Write(roundlog.FromResult(result)); err != nil {
				return stats.Summary(), err
			}
		}
	}
	return stats.Summary(), nil
}
