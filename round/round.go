// Package round orchestrates consensus rounds.
// A Coordinator creates a fresh set of proposers for every round,
// hands them to a resolver, and records the outcome.
package round

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/relab/majority"
	"github.com/relab/majority/logging"
	"github.com/relab/majority/metrics"
	"github.com/relab/majority/proposer"
	"github.com/relab/majority/resolver"
)

// DefaultProposers is the number of proposers in a round unless configured otherwise.
const DefaultProposers = 5

// DefaultDomain returns the default candidate values.
func DefaultDomain() majority.Domain[int] {
	return majority.Domain[int]{1000, 2000, 3000}
}

// StrategyFactory creates the strategy of the proposer with the given ID.
// seed is derived from the coordinator's shared seed, the round and the ID.
// Every seed, including 0, must be used as is.
type StrategyFactory[T comparable] func(id majority.ID, seed int64) (proposer.Strategy[T], error)

// Uniform returns a factory for seeded uniform strategies.
func Uniform[T comparable]() StrategyFactory[T] {
	return func(_ majority.ID, seed int64) (proposer.Strategy[T], error) {
		return proposer.NewUniform[T](rand.New(rand.NewSource(seed))), nil
	}
}

// Named returns a factory for the registered strategy with the given name.
// The random source of params is replaced by one seeded with the derived seed for each proposer.
func Named[T comparable](name string, params proposer.Params[T]) StrategyFactory[T] {
	return func(_ majority.ID, seed int64) (proposer.Strategy[T], error) {
		p := params
		p.Seed = seed
		p.Source = rand.New(rand.NewSource(seed))
		return proposer.NewStrategy(name, p)
	}
}

// Coordinator runs rounds. It is safe for concurrent use; each round gets its own proposers.
type Coordinator[T comparable] struct {
	resolver    *resolver.Resolver[T]
	newStrategy StrategyFactory[T]
	sharedSeed  int64
	logger      logging.Logger
	stats       *metrics.Stats
	round       atomic.Uint64
}

// New returns a coordinator that resolves rounds with res and creates strategies with newStrategy.
// A nil resolver is replaced by resolver.New[T](), and a nil factory by Uniform[T]().
func New[T comparable](res *resolver.Resolver[T], newStrategy StrategyFactory[T], opts ...Option) *Coordinator[T] {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if res == nil {
		res = resolver.New[T](resolver.WithLogger(o.logger))
	}
	if newStrategy == nil {
		newStrategy = Uniform[T]()
	}
	if o.sharedSeed == 0 {
		o.sharedSeed = time.Now().UnixNano()
	}
	return &Coordinator[T]{
		resolver:    res,
		newStrategy: newStrategy,
		sharedSeed:  o.sharedSeed,
		logger:      o.logger,
		stats:       o.stats,
	}
}

// Run creates proposerCount proposers, resolves their proposals over domain, and returns the result.
// The result of an aborted or failed round is never returned; the error matches majority.ErrIncompleteRound instead.
func (c *Coordinator[T]) Run(ctx context.Context, proposerCount int, domain majority.Domain[T]) (result majority.Result[T], err error) {
	if err = domain.Validate(); err != nil {
		return result, err
	}
	if proposerCount <= 0 {
		return result, fmt.Errorf("%w: %d proposers", majority.ErrInvalidProposerSet, proposerCount)
	}

	round := c.round.Add(1)
	start := time.Now()

	defer func() {
		if c.stats == nil {
			return
		}
		if err != nil {
			c.stats.ObserveFailure()
			return
		}
		c.stats.ObserveRound(result.Value, result.Support(), result.Tally.Total(), result.Tied(), time.Since(start))
	}()

	proposers, err := c.proposers(round, proposerCount)
	if err != nil {
		return result, err
	}

	result, err = c.resolver.ResolveRound(ctx, round, proposers, domain)
	if err != nil {
		return result, err
	}
	c.logger.Infof("round %d: agreed on %v (%d/%d)", round, result.Value, result.Support(), proposerCount)
	return result, nil
}

// Seed returns the seed of the proposer with the given ID in the given round.
func (c *Coordinator[T]) Seed(round uint64, proposerCount int, id majority.ID) int64 {
	return c.sharedSeed + int64(round)*int64(proposerCount) + int64(id)
}

// Rounds returns the number of rounds started so far.
func (c *Coordinator[T]) Rounds() uint64 {
	return c.round.Load()
}

func (c *Coordinator[T]) proposers(round uint64, n int) ([]*proposer.Proposer[T], error) {
	var (
		errs      error
		failed    []majority.ID
		proposers = make([]*proposer.Proposer[T], n)
	)
	for i := range n {
		id := majority.ID(i)
		strategy, err := c.newStrategy(id, c.Seed(round, n, id))
		if err != nil {
			failed = append(failed, id)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		proposers[i] = proposer.New(id, strategy, proposer.WithLogger(c.logger))
	}
	if errs != nil {
		return nil, &majority.IncompleteRoundError{Round: round, Failed: failed, Err: errs}
	}
	return proposers, nil
}
