package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/relab/majority"
	"github.com/relab/majority/proposer"
	"github.com/relab/majority/resolver"
)

func TestTieBreakPolicies(t *testing.T) {
	// 2000 is proposed first, 1000 comes first in the domain
	values := []int{2000, 1000, 1000, 2000, 3000}
	tests := []struct {
		policy resolver.TieBreak
		want   int
	}{
		{policy: resolver.TieBreakEarliest, want: 2000},
		{policy: resolver.TieBreakDomainOrder, want: 1000},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			r := resolver.New[int](resolver.WithTieBreak(tt.policy))
			got, err := r.Resolve(context.Background(), proposer.Replay(values...), salaries)
			if err != nil {
				t.Fatal(err)
			}
			if got.Value != tt.want {
				t.Errorf("Resolve() = %d; want %d", got.Value, tt.want)
			}
		})
	}
}

func TestParseTieBreak(t *testing.T) {
	tests := []struct {
		name    string
		want    resolver.TieBreak
		wantErr bool
	}{
		{name: "", want: resolver.TieBreakEarliest},
		{name: "earliest", want: resolver.TieBreakEarliest},
		{name: "domain-order", want: resolver.TieBreakDomainOrder},
		{name: "random", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolver.ParseTieBreak(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTieBreak(%q) error = %v; wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTieBreak(%q) = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestCustomTieBreaker(t *testing.T) {
	last := resolver.TieBreakerFunc[int](func(_ majority.Domain[int], tied []int, _ []majority.Proposal[int]) int {
		return tied[len(tied)-1]
	})
	r := resolver.New[int](resolver.WithTieBreaker[int](last))
	got, err := r.Resolve(context.Background(), proposer.Replay(1000, 2000, 1000, 2000), salaries)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != 2000 {
		t.Errorf("Resolve() = %d; want 2000", got.Value)
	}
}

func TestTieBreakerMustPickTiedValue(t *testing.T) {
	outsider := resolver.TieBreakerFunc[int](func(majority.Domain[int], []int, []majority.Proposal[int]) int {
		return 3000
	})
	r := resolver.New[int](resolver.WithTieBreaker[int](outsider))
	_, err := r.Resolve(context.Background(), proposer.Replay(1000, 2000, 3000, 1000, 2000), salaries)
	if err == nil {
		t.Fatal("expected an error when the tie breaker picks a value that is not tied")
	}
	if errors.Is(err, majority.ErrIncompleteRound) {
		t.Errorf("a bad tie breaker should not be reported as an incomplete round: %v", err)
	}
}

func TestTieBreakerTypeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected New to panic on a tie breaker for another value type")
		}
	}()
	resolver.New[int](resolver.WithTieBreaker[string](resolver.EarliestProposed[string]{}))
}
