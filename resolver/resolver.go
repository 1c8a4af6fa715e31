// Package resolver implements the consensus resolver.
// It collects one proposal from every proposer in a round, counts them,
// and selects the value with the highest count.
package resolver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/relab/majority"
	"github.com/relab/majority/logging"
	"github.com/relab/majority/proposer"
)

// Resolver resolves rounds of proposals into a single value.
// It keeps no state between rounds and is safe for concurrent use.
type Resolver[T comparable] struct {
	logger         logging.Logger
	tieBreaker     TieBreaker[T]
	concurrency    int
	proposeTimeout time.Duration
	quorum         int
}

// New returns a resolver configured with the given options.
// New panics if a custom tie breaker was given for a different value type.
func New[T comparable](opts ...Option) *Resolver[T] {
	o := options{
		logger:   logging.Nop(),
		tieBreak: TieBreakEarliest,
	}
	for _, opt := range opts {
		opt(&o)
	}
	tb := tieBreakerFor[T](o.tieBreak)
	if o.tieBreaker != nil {
		custom, ok := o.tieBreaker.(TieBreaker[T])
		if !ok {
			panic(fmt.Sprintf("tie breaker %T does not match the value type of the resolver", o.tieBreaker))
		}
		tb = custom
	}
	return &Resolver[T]{
		logger:         o.logger,
		tieBreaker:     tb,
		concurrency:    o.concurrency,
		proposeTimeout: o.proposeTimeout,
		quorum:         o.quorum,
	}
}

// Resolve asks every proposer for a proposal and returns the agreed value.
// If any proposer fails, no result is returned and the error matches majority.ErrIncompleteRound.
func (r *Resolver[T]) Resolve(ctx context.Context, proposers []*proposer.Proposer[T], domain majority.Domain[T]) (majority.Result[T], error) {
	return r.ResolveRound(ctx, 0, proposers, domain)
}

// ResolveRound is like Resolve, but tags the result and any error with the given round number.
func (r *Resolver[T]) ResolveRound(ctx context.Context, round uint64, proposers []*proposer.Proposer[T], domain majority.Domain[T]) (result majority.Result[T], err error) {
	if err = domain.Validate(); err != nil {
		return result, err
	}
	if err = validateProposers(proposers); err != nil {
		return result, err
	}

	proposals, err := r.gather(ctx, round, proposers, domain)
	if err != nil {
		r.logger.Infof("round %d: %v", round, err)
		return result, err
	}

	result, err = r.Decide(domain, proposals)
	if err != nil {
		return result, err
	}
	result.Round = round
	r.logger.Debugf("round %d: resolved %v with %d of %d proposals", round, result.Value, result.Support(), len(proposals))
	return result, nil
}

// Decide resolves the given proposals into a result.
// It is a pure function of its input: the same proposals always produce the same result.
func (r *Resolver[T]) Decide(domain majority.Domain[T], proposals []majority.Proposal[T]) (result majority.Result[T], err error) {
	if len(proposals) == 0 {
		return result, majority.ErrInvalidProposerSet
	}

	ordered := slices.Clone(proposals)
	slices.SortStableFunc(ordered, func(a, b majority.Proposal[T]) int {
		return cmp.Compare(a.ID, b.ID)
	})

	tally := majority.NewTally(ordered)
	leaders := tally.Leaders()
	value := leaders[0]
	if len(leaders) > 1 {
		value = r.tieBreaker.Break(domain, leaders, ordered)
		if !contains(leaders, value) {
			return result, fmt.Errorf("tie breaker selected %v, which is not among the tied values %v", value, leaders)
		}
		r.logger.Debugf("tie between %v broken in favour of %v", leaders, value)
	}

	if support := tally.Count(value); !majority.HasQuorum(support, r.quorum) {
		return result, fmt.Errorf("%w: %v has %d of %d proposals, need %d", majority.ErrNoQuorum, value, support, len(ordered), r.quorum)
	}

	return majority.Result[T]{
		Value:     value,
		Tally:     tally,
		Proposals: ordered,
	}, nil
}

func validateProposers[T comparable](proposers []*proposer.Proposer[T]) error {
	if len(proposers) == 0 {
		return fmt.Errorf("%w: no proposers", majority.ErrInvalidProposerSet)
	}
	seen := make(map[majority.ID]struct{}, len(proposers))
	for i, p := range proposers {
		if p == nil {
			return fmt.Errorf("%w: proposer at position %d is nil", majority.ErrInvalidProposerSet, i)
		}
		if p.Strategy() == nil {
			return fmt.Errorf("%w: %s has no strategy", majority.ErrInvalidProposerSet, p.ID())
		}
		if _, ok := seen[p.ID()]; ok {
			return fmt.Errorf("%w: duplicate %s", majority.ErrInvalidProposerSet, p.ID())
		}
		seen[p.ID()] = struct{}{}
	}
	return nil
}

// gather collects one proposal per proposer. The proposals are returned in the order of the proposers,
// regardless of the order in which they completed.
func (r *Resolver[T]) gather(ctx context.Context, round uint64, proposers []*proposer.Proposer[T], domain majority.Domain[T]) ([]majority.Proposal[T], error) {
	proposals := make([]majority.Proposal[T], len(proposers))
	errs := make([]error, len(proposers))

	if r.concurrency > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)
		for i, p := range proposers {
			g.Go(func() error {
				proposals[i], errs[i] = r.propose(gctx, p, domain)
				return errs[i]
			})
		}
		_ = g.Wait()
		if ctx.Err() == nil {
			dropSiblingCancellations(errs)
		}
	} else {
		for i, p := range proposers {
			proposals[i], errs[i] = r.propose(ctx, p, domain)
			if errs[i] != nil {
				// the round is incomplete; the remaining proposers need not be asked
				break
			}
		}
	}

	var failed []majority.ID
	for i, err := range errs {
		if err != nil {
			failed = append(failed, proposers[i].ID())
		}
	}
	if len(failed) > 0 {
		return nil, &majority.IncompleteRoundError{
			Round:  round,
			Failed: failed,
			Err:    multierr.Combine(errs...),
		}
	}
	return proposals, nil
}

// dropSiblingCancellations removes the errors of proposers that were cancelled
// only because another proposer failed first.
func dropSiblingCancellations(errs []error) {
	var cancelled, other int
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			cancelled++
		default:
			other++
		}
	}
	if cancelled == 0 || other == 0 {
		return
	}
	for i, err := range errs {
		if err != nil && errors.Is(err, context.Canceled) {
			errs[i] = nil
		}
	}
}

// propose asks p for a proposal, giving up when the context is done or the propose timeout expires.
func (r *Resolver[T]) propose(ctx context.Context, p *proposer.Proposer[T], domain majority.Domain[T]) (proposal majority.Proposal[T], err error) {
	if err = ctx.Err(); err != nil {
		return proposal, fmt.Errorf("%s: %w", p.ID(), err)
	}
	if r.proposeTimeout <= 0 && ctx.Done() == nil {
		return p.Propose(ctx, domain)
	}
	if r.proposeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.proposeTimeout)
		defer cancel()
	}

	type reply struct {
		proposal majority.Proposal[T]
		err      error
	}
	c := make(chan reply, 1)
	go func() {
		proposal, err := p.Propose(ctx, domain)
		c <- reply{proposal, err}
	}()

	select {
	case rep := <-c:
		return rep.proposal, rep.err
	case <-ctx.Done():
		return proposal, fmt.Errorf("%s: %w", p.ID(), ctx.Err())
	}
}
