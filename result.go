package majority

import "fmt"

// Result is the outcome of a resolved round.
type Result[T comparable] struct {
	// Round is the sequence number assigned by the coordinator, or 0 if the round was resolved directly.
	Round uint64
	// Value is the agreed value.
	Value T
	// Tally holds the count for each proposed value.
	Tally Tally[T]
	// Proposals holds every proposal of the round, ordered by proposer ID.
	Proposals []Proposal[T]
}

// Support returns the number of proposers that proposed the agreed value.
func (r Result[T]) Support() int {
	return r.Tally.Count(r.Value)
}

// Tied returns true if more than one value shared the highest count,
// meaning that the agreed value was chosen by the tie-break rule.
func (r Result[T]) Tied() bool {
	return len(r.Tally.Leaders()) > 1
}

// Share returns the fraction of proposers that proposed the agreed value.
func (r Result[T]) Share() float64 {
	if r.Tally.Total() == 0 {
		return 0
	}
	return float64(r.Support()) / float64(r.Tally.Total())
}

func (r Result[T]) String() string {
	return fmt.Sprintf("round %d: %v (%d/%d) tally=%v", r.Round, r.Value, r.Support(), r.Tally.Total(), r.Tally)
}
