package proposer

import (
	"fmt"
	"math/rand"
	"reflect"
	"slices"
	"sync"
)

// Names of the built-in strategies.
const (
	Uniform  = "uniform"
	Weighted = "weighted"
	Fixed    = "fixed"
)

// Params holds the parameters that a Factory may use to construct a strategy.
type Params[T comparable] struct {
	// Seed seeds the random source of randomized strategies. 0 means the current time.
	// It is ignored if Source is set.
	Seed int64
	// Source is the random source of randomized strategies, owned by the strategy once created.
	Source *rand.Rand
	// Weights holds the weight of each candidate value for the weighted strategy.
	Weights map[T]uint
	// Value is the value proposed by the fixed strategy.
	Value T
}

func (p Params[T]) source() *rand.Rand {
	if p.Source != nil {
		return p.Source
	}
	return newSource(p.Seed)
}

// Factory constructs a strategy from the given parameters.
type Factory[T comparable] func(Params[T]) (Strategy[T], error)

var (
	registryMut sync.Mutex
	byType      = make(map[reflect.Type]map[string]any)
)

func builtin[T comparable](name string) (Factory[T], bool) {
	switch name {
	case Uniform:
		return func(p Params[T]) (Strategy[T], error) {
			return NewUniform[T](p.source()), nil
		}, true
	case Weighted:
		return func(p Params[T]) (Strategy[T], error) {
			if len(p.Weights) == 0 {
				return nil, fmt.Errorf("%s: %w", Weighted, ErrNoWeight)
			}
			return NewWeighted(p.Weights, p.source()), nil
		}, true
	case Fixed:
		return func(p Params[T]) (Strategy[T], error) {
			return NewFixed(p.Value), nil
		}, true
	}
	return nil, false
}

// Register registers a strategy factory for values of type T under the given name.
// For example:
//
//	Register("first", func(Params[string]) (Strategy[string], error) { return first{}, nil })
//
// Register panics if the name is already taken for T, or if it names a built-in strategy.
func Register[T comparable](name string, factory Factory[T]) {
	if _, ok := builtin[T](name); ok {
		panic(fmt.Sprintf("cannot override built-in strategy %s", name))
	}
	factoryType := reflect.TypeOf(factory)

	registryMut.Lock()
	defer registryMut.Unlock()

	factories, ok := byType[factoryType]
	if !ok {
		factories = make(map[string]any)
		byType[factoryType] = factories
	}
	if _, ok := factories[name]; ok {
		panic(fmt.Sprintf("a strategy with name %s already exists", name))
	}
	factories[name] = factory
}

// Lookup returns the factory registered for T under the given name.
// Built-in strategies are available for every T.
func Lookup[T comparable](name string) (Factory[T], bool) {
	if f, ok := builtin[T](name); ok {
		return f, true
	}

	registryMut.Lock()
	defer registryMut.Unlock()

	factories, ok := byType[reflect.TypeOf(Factory[T](nil))]
	if !ok {
		return nil, false
	}
	f, ok := factories[name]
	if !ok {
		return nil, false
	}
	return f.(Factory[T]), true
}

// Names returns the sorted names of every strategy available for T.
func Names[T comparable]() []string {
	names := []string{Uniform, Weighted, Fixed}

	registryMut.Lock()
	for name := range byType[reflect.TypeOf(Factory[T](nil))] {
		names = append(names, name)
	}
	registryMut.Unlock()

	slices.Sort(names)
	return names
}

// NewStrategy constructs the strategy with the given name.
func NewStrategy[T comparable](name string, params Params[T]) (Strategy[T], error) {
	factory, ok := Lookup[T](name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return factory(params)
}
