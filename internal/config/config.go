// Package config holds the settings of the majority command.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/relab/majority"
	"github.com/relab/majority/proposer"
	"github.com/relab/majority/resolver"
	"github.com/relab/majority/round"
)

// Config holds the settings of a run. Candidate values are strings on the command line.
type Config struct {
	// Proposers is the number of proposers in each round.
	Proposers int
	// Domain is the list of candidate values.
	Domain []string
	// Strategy is the name of the proposer strategy.
	Strategy string
	// Weights holds the weight of each candidate value for the weighted strategy.
	Weights map[string]uint
	// Value is the value proposed by every proposer with the fixed strategy.
	Value string
	// Seed is the shared seed that proposer seeds are derived from. 0 means the current time.
	Seed int64
	// TieBreak names the tie-break policy.
	TieBreak string
	// Quorum is the support the winning value needs. 0 disables the check.
	Quorum int
	// Concurrent is the number of proposers that propose at the same time. 0 is sequential.
	Concurrent int
	// ProposeTimeout bounds each proposer's Propose call. 0 means no timeout.
	ProposeTimeout time.Duration

	// Rounds is the number of rounds the bench command runs.
	Rounds int
	// RateLimit is the maximum number of rounds per second. +Inf means no limit.
	RateLimit float64
	// Output is the path of the round log written by the bench command.
	Output string

	CPUProfile    string
	MemProfile    string
	Trace         string
	FgprofProfile string
}

// Default returns the default configuration.
func Default() *Config {
	domain := round.DefaultDomain()
	values := make([]string, len(domain))
	for i, v := range domain {
		values[i] = strconv.Itoa(v)
	}
	return &Config{
		Proposers: round.DefaultProposers,
		Domain:    values,
		Strategy:  proposer.Uniform,
		TieBreak:  string(resolver.TieBreakEarliest),
		Rounds:    100,
		RateLimit: math.Inf(1),
	}
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() (err error) {
	if c.Proposers <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: need at least one proposer, got %d", majority.ErrInvalidProposerSet, c.Proposers))
	}
	if len(c.Domain) == 0 {
		err = multierr.Append(err, majority.ErrInvalidDomain)
	}
	seen := make(map[string]bool, len(c.Domain))
	for _, v := range c.Domain {
		if seen[v] {
			err = multierr.Append(err, fmt.Errorf("duplicate candidate value '%s'", v))
		}
		seen[v] = true
	}
	if _, ok := proposer.Lookup[string](c.Strategy); !ok {
		err = multierr.Append(err, fmt.Errorf("%w: %s", proposer.ErrUnknownStrategy, c.Strategy))
	}
	for v := range c.Weights {
		if !seen[v] {
			err = multierr.Append(err, fmt.Errorf("weight given for '%s', which is not a candidate value", v))
		}
	}
	if c.Strategy == proposer.Fixed && !seen[c.Value] {
		err = multierr.Append(err, fmt.Errorf("fixed value '%s' is not a candidate value", c.Value))
	}
	if _, tbErr := resolver.ParseTieBreak(c.TieBreak); tbErr != nil {
		err = multierr.Append(err, tbErr)
	}
	if c.Quorum < 0 || (c.Proposers > 0 && c.Quorum > c.Proposers) {
		err = multierr.Append(err, fmt.Errorf("quorum %d is out of range for %d proposers", c.Quorum, c.Proposers))
	}
	if c.Concurrent < 0 {
		err = multierr.Append(err, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrent))
	}
	if c.ProposeTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("propose timeout must not be negative, got %v", c.ProposeTimeout))
	}
	if c.Rounds < 0 {
		err = multierr.Append(err, fmt.Errorf("rounds must not be negative, got %d", c.Rounds))
	}
	if !(c.RateLimit > 0) {
		err = multierr.Append(err, fmt.Errorf("rate limit must be positive, got %v", c.RateLimit))
	}
	return err
}

// CandidateDomain returns the candidate values as a domain.
func (c *Config) CandidateDomain() majority.Domain[string] {
	return majority.Domain[string](c.Domain)
}

// StrategyParams returns the parameters for the configured strategy.
func (c *Config) StrategyParams() proposer.Params[string] {
	return proposer.Params[string]{
		Seed:    c.Seed,
		Weights: c.Weights,
		Value:   c.Value,
	}
}

// ResolverOptions returns the resolver options for the configuration.
// The configuration must be valid.
func (c *Config) ResolverOptions() []resolver.Option {
	tieBreak, _ := resolver.ParseTieBreak(c.TieBreak)
	return []resolver.Option{
		resolver.WithTieBreak(tieBreak),
		resolver.WithQuorum(c.Quorum),
		resolver.WithConcurrency(c.Concurrent),
		resolver.WithProposeTimeout(c.ProposeTimeout),
	}
}

// ParseWeights parses weights given as value=weight pairs.
func ParseWeights(pairs []string) (map[string]uint, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	weights := make(map[string]uint, len(pairs))
	for _, pair := range pairs {
		value, weightStr, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			return nil, fmt.Errorf("weight '%s' must be of the form value=weight", pair)
		}
		weight, err := strconv.ParseUint(weightStr, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for '%s': %w", value, err)
		}
		if _, ok := weights[value]; ok {
			return nil, fmt.Errorf("duplicate weight for '%s'", value)
		}
		weights[value] = uint(weight)
	}
	return weights, nil
}
