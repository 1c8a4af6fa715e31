package resolver

import (
	"time"

	"github.com/relab/majority/logging"
)

type options struct {
	logger         logging.Logger
	tieBreak       TieBreak
	tieBreaker     any
	concurrency    int
	proposeTimeout time.Duration
	quorum         int
}

// Option configures a Resolver.
type Option func(*options)

// WithLogger sets the logger used by the resolver.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTieBreak selects a built-in tie-break policy. The default is TieBreakEarliest.
func WithTieBreak(policy TieBreak) Option {
	return func(o *options) {
		o.tieBreak = policy
	}
}

// WithTieBreaker installs a custom tie breaker. It takes precedence over WithTieBreak.
// The value type of the tie breaker must match that of the resolver:
// New[T] panics when given a WithTieBreaker option for any other value type.
func WithTieBreaker[T comparable](tb TieBreaker[T]) Option {
	return func(o *options) {
		o.tieBreaker = tb
	}
}

// WithConcurrency queries up to limit proposers at the same time.
// A limit of 0 or less queries the proposers one after another.
func WithConcurrency(limit int) Option {
	return func(o *options) {
		o.concurrency = limit
	}
}

// WithProposeTimeout bounds the time each proposer may take to produce a value.
// A proposer that exceeds the bound fails the round.
func WithProposeTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.proposeTimeout = timeout
	}
}

// WithQuorum requires the agreed value to be proposed by at least q proposers.
// A quorum of 0 accepts any plurality winner.
func WithQuorum(q int) Option {
	return func(o *options) {
		o.quorum = q
	}
}
