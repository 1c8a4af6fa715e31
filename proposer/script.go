package proposer

import (
	"context"
	"sync"

	"github.com/relab/majority"
)

// NewFixed returns a strategy that always selects v.
func NewFixed[T comparable](v T) Strategy[T] {
	return StrategyFunc[T](func(context.Context, majority.Domain[T]) (T, error) {
		return v, nil
	})
}

type script[T comparable] struct {
	mut    sync.Mutex
	values []T
	next   int
}

// NewScript returns a strategy that selects the given values in order, one per call.
// It is used to replay a recorded sequence of proposals.
func NewScript[T comparable](values ...T) Strategy[T] {
	return &script[T]{values: append([]T(nil), values...)}
}

func (s *script[T]) Select(context.Context, majority.Domain[T]) (value T, err error) {
	s.mut.Lock()
	defer s.mut.Unlock()
	if s.next >= len(s.values) {
		return value, ErrScriptExhausted
	}
	value = s.values[s.next]
	s.next++
	return value, nil
}

// Replay returns one proposer per value, where the proposer with ID i proposes values[i].
func Replay[T comparable](values ...T) []*Proposer[T] {
	return NewSet(len(values), func(id majority.ID) Strategy[T] {
		return NewFixed(values[id])
	})
}
