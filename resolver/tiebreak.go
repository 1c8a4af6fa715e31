package resolver

import (
	"fmt"

	"github.com/relab/majority"
)

// TieBreaker selects the winner among values that share the highest count.
// tied is never empty and is ordered by first appearance;
// proposals are ordered by proposer ID.
// The returned value must be one of the tied values.
type TieBreaker[T comparable] interface {
	Break(domain majority.Domain[T], tied []T, proposals []majority.Proposal[T]) T
}

// TieBreakerFunc adapts a function to the TieBreaker interface.
type TieBreakerFunc[T comparable] func(domain majority.Domain[T], tied []T, proposals []majority.Proposal[T]) T

// Break calls f(domain, tied, proposals).
func (f TieBreakerFunc[T]) Break(domain majority.Domain[T], tied []T, proposals []majority.Proposal[T]) T {
	return f(domain, tied, proposals)
}

// EarliestProposed picks the tied value that was proposed first, in proposer ID order.
type EarliestProposed[T comparable] struct{}

// Break scans the proposals in order and returns the first value that is tied.
func (EarliestProposed[T]) Break(_ majority.Domain[T], tied []T, proposals []majority.Proposal[T]) T {
	for _, p := range proposals {
		if contains(tied, p.Value) {
			return p.Value
		}
	}
	return tied[0]
}

// DomainOrder picks the tied value that comes first in the candidate domain.
type DomainOrder[T comparable] struct{}

// Break returns the first domain value that is tied.
func (DomainOrder[T]) Break(domain majority.Domain[T], tied []T, proposals []majority.Proposal[T]) T {
	for _, v := range domain {
		if contains(tied, v) {
			return v
		}
	}
	return EarliestProposed[T]{}.Break(domain, tied, proposals)
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// TieBreak names a built-in tie-break policy.
type TieBreak string

// The built-in tie-break policies.
const (
	TieBreakEarliest    TieBreak = "earliest"
	TieBreakDomainOrder TieBreak = "domain-order"
)

// ParseTieBreak returns the policy with the given name.
func ParseTieBreak(name string) (TieBreak, error) {
	switch tb := TieBreak(name); tb {
	case TieBreakEarliest, TieBreakDomainOrder:
		return tb, nil
	case "":
		return TieBreakEarliest, nil
	}
	return "", fmt.Errorf("unknown tie-break policy '%s'", name)
}

func tieBreakerFor[T comparable](policy TieBreak) TieBreaker[T] {
	if policy == TieBreakDomainOrder {
		return DomainOrder[T]{}
	}
	return EarliestProposed[T]{}
}
