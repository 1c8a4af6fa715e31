package majority

import (
	"fmt"
	"strings"
)

// Tally counts the proposals for each distinct value within a round.
// It also remembers the order in which the values first appeared,
// so that iterating over a tally is reproducible.
type Tally[T comparable] struct {
	counts map[T]int
	order  []T
	total  int
}

// NewTally returns a tally of the given proposals.
func NewTally[T comparable](proposals []Proposal[T]) Tally[T] {
	t := Tally[T]{counts: make(map[T]int, len(proposals))}
	for _, p := range proposals {
		t.Add(p.Value)
	}
	return t
}

// Add counts one more proposal for v.
func (t *Tally[T]) Add(v T) {
	if t.counts == nil {
		t.counts = make(map[T]int)
	}
	if _, ok := t.counts[v]; !ok {
		t.order = append(t.order, v)
	}
	t.counts[v]++
	t.total++
}

// Count returns the number of proposals for v.
func (t Tally[T]) Count(v T) int {
	return t.counts[v]
}

// Len returns the number of distinct values in the tally.
func (t Tally[T]) Len() int {
	return len(t.order)
}

// Total returns the number of proposals counted.
func (t Tally[T]) Total() int {
	return t.total
}

// Max returns the highest count of any value, or 0 if the tally is empty.
func (t Tally[T]) Max() int {
	highest := 0
	for _, c := range t.counts {
		if c > highest {
			highest = c
		}
	}
	return highest
}

// Values returns the distinct values in the order they first appeared.
func (t Tally[T]) Values() []T {
	return append([]T(nil), t.order...)
}

// Leaders returns the values whose count equals Max, in the order they first appeared.
func (t Tally[T]) Leaders() []T {
	highest := t.Max()
	var leaders []T
	for _, v := range t.order {
		if t.counts[v] == highest {
			leaders = append(leaders, v)
		}
	}
	return leaders
}

// Counts returns a copy of the counts per value.
func (t Tally[T]) Counts() map[T]int {
	counts := make(map[T]int, len(t.counts))
	for v, c := range t.counts {
		counts[v] = c
	}
	return counts
}

// Equal returns true if both tallies hold the same counts in the same order.
func (t Tally[T]) Equal(other Tally[T]) bool {
	if t.total != other.total || len(t.order) != len(other.order) {
		return false
	}
	for i, v := range t.order {
		if other.order[i] != v || other.counts[v] != t.counts[v] {
			return false
		}
	}
	return true
}

func (t Tally[T]) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, v := range t.order {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%v:%d", v, t.counts[v])
	}
	sb.WriteString("}")
	return sb.String()
}
