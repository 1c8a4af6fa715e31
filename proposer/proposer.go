// Package proposer implements the participants of a round.
// A Proposer emits one proposal per round, selected from the candidate domain by a pluggable Strategy.
package proposer

import (
	"context"
	"fmt"

	"github.com/relab/majority"
	"github.com/relab/majority/logging"
)

var (
	// ErrValueNotInDomain is the error used when a strategy selects a value that is not a candidate.
	ErrValueNotInDomain = fmt.Errorf("value not in domain")

	// ErrNoWeight is the error used when no candidate value has a positive weight.
	ErrNoWeight = fmt.Errorf("no candidate value has a positive weight")

	// ErrScriptExhausted is the error used when a scripted strategy has no more values to propose.
	ErrScriptExhausted = fmt.Errorf("script exhausted")

	// ErrUnknownStrategy is the error used when a strategy name is not registered.
	ErrUnknownStrategy = fmt.Errorf("unknown strategy")

	// ErrNoStrategy is the error used when a proposer was created without a strategy.
	ErrNoStrategy = fmt.Errorf("no strategy")
)

// Strategy selects a value from the candidate domain.
// Implementations must be safe for concurrent use.
type Strategy[T comparable] interface {
	Select(ctx context.Context, domain majority.Domain[T]) (T, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc[T comparable] func(ctx context.Context, domain majority.Domain[T]) (T, error)

// Select calls f(ctx, domain).
func (f StrategyFunc[T]) Select(ctx context.Context, domain majority.Domain[T]) (T, error) {
	return f(ctx, domain)
}

// Proposer is a single participant in a round.
type Proposer[T comparable] struct {
	id       majority.ID
	strategy Strategy[T]
	logger   logging.Logger
}

// New returns a proposer with the given ID that selects values using the given strategy.
func New[T comparable](id majority.ID, strategy Strategy[T], opts ...Option) *Proposer[T] {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Proposer[T]{
		id:       id,
		strategy: strategy,
		logger:   o.logger,
	}
}

// ID returns the ordinal ID of the proposer.
func (p *Proposer[T]) ID() majority.ID {
	return p.id
}

// Strategy returns the strategy of the proposer.
func (p *Proposer[T]) Strategy() Strategy[T] {
	return p.strategy
}

// Propose selects a value from the domain and returns it as a proposal.
// The strategy is not consulted if the domain is empty.
func (p *Proposer[T]) Propose(ctx context.Context, domain majority.Domain[T]) (proposal majority.Proposal[T], err error) {
	if err = domain.Validate(); err != nil {
		return proposal, err
	}
	if p.strategy == nil {
		return proposal, fmt.Errorf("%s: %w", p.id, ErrNoStrategy)
	}
	value, err := p.strategy.Select(ctx, domain)
	if err != nil {
		return proposal, fmt.Errorf("%s: %w", p.id, err)
	}
	if !domain.Contains(value) {
		return proposal, fmt.Errorf("%s: %w: %v", p.id, ErrValueNotInDomain, value)
	}
	p.logger.Debugf("%s proposed %v", p.id, value)
	return majority.Proposal[T]{ID: p.id, Value: value}, nil
}

// NewSet returns n proposers with IDs 0..n-1, all using strategies created by newStrategy.
func NewSet[T comparable](n int, newStrategy func(id majority.ID) Strategy[T], opts ...Option) []*Proposer[T] {
	proposers := make([]*Proposer[T], n)
	for i := range n {
		id := majority.ID(i)
		proposers[i] = New(id, newStrategy(id), opts...)
	}
	return proposers
}
