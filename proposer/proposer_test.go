package proposer_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/relab/majority"
	"github.com/relab/majority/internal/mocks"
	"github.com/relab/majority/proposer"
)

var salaries = majority.Domain[int]{1000, 2000, 3000}

func TestProposeEmptyDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: the strategy must not be consulted
	strategy := mocks.NewMockStrategy[int](ctrl)

	p := proposer.New[int](0, strategy)
	_, err := p.Propose(context.Background(), nil)
	if !errors.Is(err, majority.ErrInvalidDomain) {
		t.Fatalf("Propose() error = %v; want %v", err, majority.ErrInvalidDomain)
	}
}

func TestPropose(t *testing.T) {
	ctrl := gomock.NewController(t)
	strategy := mocks.NewMockStrategy[int](ctrl)
	strategy.EXPECT().Select(gomock.Any(), salaries).Return(2000, nil)

	p := proposer.New[int](3, strategy)
	got, err := p.Propose(context.Background(), salaries)
	if err != nil {
		t.Fatal(err)
	}
	want := majority.Proposal[int]{ID: 3, Value: 2000}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Propose() mismatch (-want +got):\n%s", diff)
	}
}

func TestProposeStrategyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	strategy := mocks.NewMockStrategy[int](ctrl)
	failure := errors.New("oracle unavailable")
	strategy.EXPECT().Select(gomock.Any(), gomock.Any()).Return(0, failure)

	p := proposer.New[int](1, strategy)
	if _, err := p.Propose(context.Background(), salaries); !errors.Is(err, failure) {
		t.Fatalf("Propose() error = %v; want %v", err, failure)
	}
}

func TestProposeValueNotInDomain(t *testing.T) {
	p := proposer.New(0, proposer.NewFixed(4000))
	if _, err := p.Propose(context.Background(), salaries); !errors.Is(err, proposer.ErrValueNotInDomain) {
		t.Fatalf("Propose() error = %v; want %v", err, proposer.ErrValueNotInDomain)
	}
}

func TestProposeNoStrategy(t *testing.T) {
	p := proposer.New[int](2, nil)
	if p.Strategy() != nil {
		t.Fatalf("Strategy() = %v; want nil", p.Strategy())
	}
	if _, err := p.Propose(context.Background(), salaries); !errors.Is(err, proposer.ErrNoStrategy) {
		t.Fatalf("Propose() error = %v; want %v", err, proposer.ErrNoStrategy)
	}
}

func TestUniformSeededReplay(t *testing.T) {
	a := proposer.NewUniform[int](rand.New(rand.NewSource(42)))
	b := proposer.NewUniform[int](rand.New(rand.NewSource(42)))
	seen := make(map[int]int)
	for range 300 {
		va, err := a.Select(context.Background(), salaries)
		if err != nil {
			t.Fatal(err)
		}
		vb, _ := b.Select(context.Background(), salaries)
		if va != vb {
			t.Fatalf("same seed produced different values: %d != %d", va, vb)
		}
		if !salaries.Contains(va) {
			t.Fatalf("uniform selected %d outside of %v", va, salaries)
		}
		seen[va]++
	}
	if len(seen) != len(salaries) {
		t.Errorf("expected every candidate to be selected at least once in 300 draws, got %v", seen)
	}
}

func TestUniformEmptyDomain(t *testing.T) {
	s := proposer.NewUniformSeeded[int](1)
	if _, err := s.Select(context.Background(), nil); !errors.Is(err, majority.ErrInvalidDomain) {
		t.Fatalf("Select() error = %v; want %v", err, majority.ErrInvalidDomain)
	}
}

func TestWeighted(t *testing.T) {
	s := proposer.NewWeighted(map[int]uint{1000: 1, 2000: 0}, rand.New(rand.NewSource(7)))
	for range 100 {
		v, err := s.Select(context.Background(), salaries)
		if err != nil {
			t.Fatal(err)
		}
		if v != 1000 {
			t.Fatalf("weighted selected %d; only 1000 has a positive weight", v)
		}
	}
}

func TestWeightedFavoursHeavyValue(t *testing.T) {
	s := proposer.NewWeighted(map[int]uint{1000: 1, 2000: 9}, rand.New(rand.NewSource(7)))
	counts := make(map[int]int)
	for range 1000 {
		v, err := s.Select(context.Background(), salaries)
		if err != nil {
			t.Fatal(err)
		}
		counts[v]++
	}
	if counts[2000] <= counts[1000] {
		t.Errorf("expected 2000 to be selected more often than 1000, got %v", counts)
	}
	if counts[3000] != 0 {
		t.Errorf("3000 has no weight but was selected %d times", counts[3000])
	}
}

func TestWeightedNoWeight(t *testing.T) {
	s := proposer.NewWeighted(map[int]uint{4000: 5}, rand.New(rand.NewSource(7)))
	if _, err := s.Select(context.Background(), salaries); !errors.Is(err, proposer.ErrNoWeight) {
		t.Fatalf("Select() error = %v; want %v", err, proposer.ErrNoWeight)
	}
}

func TestScript(t *testing.T) {
	s := proposer.NewScript(1000, 3000)
	var got []int
	for range 2 {
		v, err := s.Select(context.Background(), salaries)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]int{1000, 3000}, got); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.Select(context.Background(), salaries); !errors.Is(err, proposer.ErrScriptExhausted) {
		t.Fatalf("Select() error = %v; want %v", err, proposer.ErrScriptExhausted)
	}
}

func TestReplay(t *testing.T) {
	proposers := proposer.Replay(1000, 2000, 1000)
	for i, p := range proposers {
		if p.ID() != majority.ID(i) {
			t.Errorf("proposer %d has ID %d", i, p.ID())
		}
	}
	got, err := proposers[1].Propose(context.Background(), salaries)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != 2000 {
		t.Errorf("proposer 1 proposed %d; want 2000", got.Value)
	}
}
