package round

import (
	"github.com/relab/majority/logging"
	"github.com/relab/majority/metrics"
)

type options struct {
	logger     logging.Logger
	sharedSeed int64
	stats      *metrics.Stats
}

// Option configures a Coordinator.
type Option func(*options)

// WithLogger sets the logger used by the coordinator and the proposers it creates.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSharedSeed sets the seed from which every proposer seed is derived.
// Two coordinators with the same shared seed produce the same sequence of rounds.
// A seed of 0 derives the shared seed from the current time.
func WithSharedSeed(seed int64) Option {
	return func(o *options) {
		o.sharedSeed = seed
	}
}

// WithStats records the outcome of every round in stats.
func WithStats(stats *metrics.Stats) Option {
	return func(o *options) {
		o.stats = stats
	}
}
