package proposer

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	wr "github.com/mroth/weightedrand"

	"github.com/relab/majority"
)

type weighted[T comparable] struct {
	weights map[T]uint

	mut sync.Mutex
	rnd *rand.Rand
}

// NewWeighted returns a strategy that selects candidate values with probability proportional to their weight.
// Values without a weight are never selected.
func NewWeighted[T comparable](weights map[T]uint, rnd *rand.Rand) Strategy[T] {
	w := make(map[T]uint, len(weights))
	for v, weight := range weights {
		w[v] = weight
	}
	return &weighted[T]{weights: w, rnd: rnd}
}

func (s *weighted[T]) Select(_ context.Context, domain majority.Domain[T]) (value T, err error) {
	if err = domain.Validate(); err != nil {
		return value, err
	}

	// choices follow the domain order so that a seeded source replays identically
	choices := make([]wr.Choice, 0, len(domain))
	for _, v := range domain {
		if weight := s.weights[v]; weight > 0 {
			choices = append(choices, wr.Choice{Item: v, Weight: weight})
		}
	}
	if len(choices) == 0 {
		return value, ErrNoWeight
	}

	chooser, err := wr.NewChooser(choices...)
	if err != nil {
		return value, fmt.Errorf("weightedrand: %w", err)
	}

	s.mut.Lock()
	item := chooser.PickSource(s.rnd)
	s.mut.Unlock()

	return item.(T), nil
}
