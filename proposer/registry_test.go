package proposer

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/relab/majority"
)

type first[T comparable] struct{}

func (first[T]) Select(_ context.Context, domain majority.Domain[T]) (T, error) {
	return domain[0], nil
}

func TestRegistry(t *testing.T) {
	Register("test-first", func(Params[string]) (Strategy[string], error) { return first[string]{}, nil })

	if !slices.Contains(Names[string](), "test-first") {
		t.Errorf("Names[string]() = %v; want it to contain test-first", Names[string]())
	}
	// registrations are per value type
	if slices.Contains(Names[int](), "test-first") {
		t.Errorf("Names[int]() = %v; test-first was only registered for strings", Names[int]())
	}

	s, err := NewStrategy("test-first", Params[string]{})
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.Select(context.Background(), majority.Domain[string]{"a", "b"})
	if err != nil || v != "a" {
		t.Errorf("Select() = %q, %v; want a, nil", v, err)
	}

	if _, err := NewStrategy[int]("test-first", Params[int]{}); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("NewStrategy[int]() error = %v; want %v", err, ErrUnknownStrategy)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		reg  func()
	}{
		{name: "BuiltIn", reg: func() {
			Register(Uniform, func(Params[int]) (Strategy[int], error) { return first[int]{}, nil })
		}},
		{name: "Duplicate", reg: func() {
			Register("test-dup", func(Params[int]) (Strategy[int], error) { return first[int]{}, nil })
			Register("test-dup", func(Params[int]) (Strategy[int], error) { return first[int]{}, nil })
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected Register to panic")
				}
			}()
			tt.reg()
		})
	}
}

func TestBuiltinStrategies(t *testing.T) {
	domain := majority.Domain[int]{1000, 2000, 3000}
	tests := []struct {
		name    string
		params  Params[int]
		wantErr error
	}{
		{name: Uniform, params: Params[int]{Seed: 1}},
		{name: Weighted, params: Params[int]{Seed: 1, Weights: map[int]uint{3000: 1}}},
		{name: Weighted, params: Params[int]{Seed: 1}, wantErr: ErrNoWeight},
		{name: Fixed, params: Params[int]{Value: 2000}},
		{name: "nope", wantErr: ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStrategy(tt.name, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewStrategy() error = %v; want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			v, err := s.Select(context.Background(), domain)
			if err != nil {
				t.Fatal(err)
			}
			if !domain.Contains(v) {
				t.Errorf("%s selected %d outside of %v", tt.name, v, domain)
			}
		})
	}
}
