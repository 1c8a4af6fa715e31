// Package metrics collects statistics about resolved rounds.
//
// A Stats value is shared by the coordinator and its callers.
// The coordinator records every completed or failed round,
// and callers take a Summary whenever they want to report progress.
package metrics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Stats accumulates round statistics. It is safe for concurrent use.
type Stats struct {
	mut      sync.Mutex
	rounds   uint64
	failures uint64
	ties     uint64
	wins     map[string]uint64
	order    []string
	share    Welford
	latency  Welford
}

// NewStats returns an empty Stats.
func NewStats() *Stats {
	return &Stats{wins: make(map[string]uint64)}
}

// ObserveRound records a resolved round.
// value is the agreed value, support the number of proposers that proposed it,
// and total the number of proposers in the round.
func (s *Stats) ObserveRound(value any, support, total int, tied bool, latency time.Duration) {
	key := fmt.Sprint(value)

	s.mut.Lock()
	defer s.mut.Unlock()

	s.rounds++
	if tied {
		s.ties++
	}
	if _, ok := s.wins[key]; !ok {
		s.order = append(s.order, key)
	}
	s.wins[key]++
	if total > 0 {
		s.share.Update(float64(support) / float64(total))
	}
	s.latency.Update(float64(latency) / float64(time.Millisecond))
}

// ObserveFailure records a round that did not produce a result.
func (s *Stats) ObserveFailure() {
	s.mut.Lock()
	s.failures++
	s.mut.Unlock()
}

// Summary is a snapshot of the collected statistics.
type Summary struct {
	Rounds   uint64
	Failures uint64
	Ties     uint64
	// Wins holds the number of rounds won by each value, keyed by the formatted value.
	Wins map[string]uint64
	// Values lists the keys of Wins in the order they first won.
	Values []string
	// MeanShare is the mean fraction of proposers supporting the agreed value.
	MeanShare float64
	// MeanLatency and LatencyStddev are in milliseconds.
	MeanLatency   float64
	LatencyStddev float64
}

// Summary returns a snapshot of the statistics collected so far.
func (s *Stats) Summary() Summary {
	s.mut.Lock()
	defer s.mut.Unlock()

	wins := make(map[string]uint64, len(s.wins))
	for k, v := range s.wins {
		wins[k] = v
	}
	share, _, _ := s.share.Get()
	latency, _, _ := s.latency.Get()
	return Summary{
		Rounds:        s.rounds,
		Failures:      s.failures,
		Ties:          s.ties,
		Wins:          wins,
		Values:        slices.Clone(s.order),
		MeanShare:     share,
		MeanLatency:   latency,
		LatencyStddev: s.latency.Stddev(),
	}
}

// TieRate returns the fraction of resolved rounds that needed the tie-break rule.
func (s Summary) TieRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Ties) / float64(s.Rounds)
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rounds=%d failures=%d ties=%d (%.1f%%) mean-share=%.3f latency=%.3fms±%.3fms",
		s.Rounds, s.Failures, s.Ties, 100*s.TieRate(), s.MeanShare, s.MeanLatency, s.LatencyStddev)
	for _, v := range s.Values {
		fmt.Fprintf(&sb, "\n  %s: %d", v, s.Wins[v])
	}
	return sb.String()
}
