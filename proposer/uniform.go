package proposer

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/relab/majority"
)

type uniform[T comparable] struct {
	mut sync.Mutex
	rnd *rand.Rand
}

// NewUniform returns a strategy that selects each candidate value with equal probability.
// The random source is owned by the strategy from now on.
func NewUniform[T comparable](rnd *rand.Rand) Strategy[T] {
	return &uniform[T]{rnd: rnd}
}

// NewUniformSeeded returns a uniform strategy with its own source seeded with seed.
// A seed of 0 uses the current time.
func NewUniformSeeded[T comparable](seed int64) Strategy[T] {
	return NewUniform[T](newSource(seed))
}

func (u *uniform[T]) Select(_ context.Context, domain majority.Domain[T]) (value T, err error) {
	if err = domain.Validate(); err != nil {
		return value, err
	}
	u.mut.Lock()
	i := u.rnd.Intn(len(domain))
	u.mut.Unlock()
	return domain[i], nil
}

func newSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
