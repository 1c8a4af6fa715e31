package majority

import (
	"fmt"
	"strings"
)

var (
	// ErrInvalidDomain is the error used when the candidate domain is empty.
	ErrInvalidDomain = fmt.Errorf("invalid domain: no candidate values")

	// ErrInvalidProposerSet is the error used when a round has no proposers, or duplicate proposer IDs.
	ErrInvalidProposerSet = fmt.Errorf("invalid proposer set")

	// ErrIncompleteRound is the error used when one or more proposers failed to produce a value.
	ErrIncompleteRound = fmt.Errorf("incomplete round")

	// ErrNoQuorum is the error used when the agreed value is not supported by enough proposers.
	ErrNoQuorum = fmt.Errorf("not a quorum")
)

// IncompleteRoundError reports the proposers that failed to produce a value in a round.
// No result is computed for an incomplete round.
type IncompleteRoundError struct {
	Round  uint64
	Failed []ID
	Err    error
}

func (e *IncompleteRoundError) Error() string {
	ids := make([]string, len(e.Failed))
	for i, id := range e.Failed {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%v %d: failed proposers [%s]: %v", ErrIncompleteRound, e.Round, strings.Join(ids, " "), e.Err)
}

// Is reports whether target is ErrIncompleteRound.
func (e *IncompleteRoundError) Is(target error) bool {
	return target == ErrIncompleteRound
}

// Unwrap returns the combined causes of the failures.
func (e *IncompleteRoundError) Unwrap() error {
	return e.Err
}
