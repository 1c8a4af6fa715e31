package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// SetDefaults registers the default configuration with v.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("proposers", def.Proposers)
	v.SetDefault("domain", def.Domain)
	v.SetDefault("strategy", def.Strategy)
	v.SetDefault("tie-break", def.TieBreak)
	v.SetDefault("rounds", def.Rounds)
	v.SetDefault("rate-limit", def.RateLimit)
}

// NewViper reads the configuration from the global viper instance.
func NewViper() (*Config, error) {
	return FromViper(viper.GetViper())
}

// FromViper reads the configuration from v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	weights, err := ParseWeights(splitLists(v.GetStringSlice("weights")))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Proposers:      v.GetInt("proposers"),
		Domain:         splitLists(v.GetStringSlice("domain")),
		Strategy:       v.GetString("strategy"),
		Weights:        weights,
		Value:          v.GetString("value"),
		Seed:           v.GetInt64("seed"),
		TieBreak:       v.GetString("tie-break"),
		Quorum:         v.GetInt("quorum"),
		Concurrent:     v.GetInt("concurrent"),
		ProposeTimeout: v.GetDuration("propose-timeout"),
		Rounds:         v.GetInt("rounds"),
		RateLimit:      v.GetFloat64("rate-limit"),
		Output:         v.GetString("output"),
		CPUProfile:     v.GetString("cpu-profile"),
		MemProfile:     v.GetString("mem-profile"),
		Trace:          v.GetString("trace"),
		FgprofProfile:  v.GetString("fgprof-profile"),
	}

	if cfg.Output != "" {
		cfg.Output, err = filepath.Abs(cfg.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// splitLists splits comma-separated entries, as given through environment variables.
func splitLists(entries []string) []string {
	var out []string
	for _, entry := range entries {
		for _, v := range strings.Split(entry, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
