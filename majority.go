// Package majority defines the core types used to resolve a set of proposals into a single agreed value.
//
// A round consists of a fixed set of proposers, identified by their ordinal ID within the round.
// Each proposer emits exactly one Proposal taken from a candidate Domain.
// The proposals are counted in a Tally, and the value with the highest count wins.
// When several values share the highest count, a tie-break rule selects the winner.
// The default rule picks the tied value that was proposed first, ordered by proposer ID.
//
// The following diagram illustrates how the packages fit together:
//
//	                +-----------------+          +--------------------+
//	Run(n, domain)->|  round.Coord.   |--New()-->| proposer.Proposer  |--Select()--> Strategy
//	                +-----------------+          +--------------------+
//	                         |                            ^
//	                   Resolve()                     Propose()
//	                         v                            |
//	                +-----------------+                   |
//	                |    resolver     |-------------------+
//	                +-----------------+
//	                         |
//	                   Decide() --> Tally --> TieBreaker --> Result
package majority

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is the ordinal index of a proposer within a round.
// IDs start at 0 and are only meaningful within the round that assigned them.
type ID uint32

func (id ID) String() string {
	return "proposer-" + strconv.FormatUint(uint64(id), 10)
}

// Domain is a non-empty ordered sequence of candidate values.
type Domain[T comparable] []T

// NewDomain returns a domain with the given values. An error is returned if no values are given.
func NewDomain[T comparable](values ...T) (Domain[T], error) {
	d := Domain[T](values)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate returns ErrInvalidDomain if the domain is empty.
func (d Domain[T]) Validate() error {
	if len(d) == 0 {
		return ErrInvalidDomain
	}
	return nil
}

// Contains returns true if v is one of the candidate values.
func (d Domain[T]) Contains(v T) bool {
	return d.Index(v) >= 0
}

// Index returns the position of v in the domain, or -1 if v is not a candidate.
func (d Domain[T]) Index(v T) int {
	for i, c := range d {
		if c == v {
			return i
		}
	}
	return -1
}

func (d Domain[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range d {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteString("]")
	return sb.String()
}

// Proposal is the value emitted by one proposer in one round.
type Proposal[T comparable] struct {
	ID    ID
	Value T
}

func (p Proposal[T]) String() string {
	return fmt.Sprintf("%s: %v", p.ID, p.Value)
}

// Values returns the values of the proposals in the order they are given.
func Values[T comparable](proposals []Proposal[T]) []T {
	values := make([]T, len(proposals))
	for i, p := range proposals {
		values[i] = p.Value
	}
	return values
}

// ProposalsOf assigns IDs 0..n-1 to the given values, in order.
// It is mostly useful to replay a recorded sequence of raw proposal values.
func ProposalsOf[T comparable](values ...T) []Proposal[T] {
	proposals := make([]Proposal[T], len(values))
	for i, v := range values {
		proposals[i] = Proposal[T]{ID: ID(i), Value: v}
	}
	return proposals
}
