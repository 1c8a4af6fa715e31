// Package profiling starts and stops the runtime profilers of the bench command.
package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/felixge/fgprof"
	"go.uber.org/multierr"
)

// Profiles holds the output paths of the profiles to record. An empty path disables that profile.
type Profiles struct {
	CPU    string
	Mem    string
	Trace  string
	Fgprof string
}

// Enabled returns true if at least one profile is enabled.
func (p Profiles) Enabled() bool {
	return p.CPU != "" || p.Mem != "" || p.Trace != "" || p.Fgprof != ""
}

// Start starts the enabled profilers. The returned function stops them and writes the memory profile.
// If Start fails, the profilers it already started are stopped.
func Start(p Profiles) (stop func() error, err error) {
	var stops []func() error
	stopAll := func() (err error) {
		// stop in reverse order of starting
		for i := len(stops) - 1; i >= 0; i-- {
			err = multierr.Append(err, stops[i]())
		}
		return err
	}

	if p.CPU != "" {
		cpuProfile, err := os.Create(p.CPU)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(cpuProfile); err != nil {
			return nil, multierr.Combine(fmt.Errorf("failed to start cpu profile: %w", err), cpuProfile.Close())
		}
		stops = append(stops, func() error {
			pprof.StopCPUProfile()
			return cpuProfile.Close()
		})
	}

	if p.Fgprof != "" {
		fgprofProfile, err := os.Create(p.Fgprof)
		if err != nil {
			return nil, multierr.Append(err, stopAll())
		}
		fgprofStop := fgprof.Start(fgprofProfile, fgprof.FormatPprof)
		stops = append(stops, func() error {
			return multierr.Combine(fgprofStop(), fgprofProfile.Close())
		})
	}

	if p.Trace != "" {
		traceFile, err := os.Create(p.Trace)
		if err != nil {
			return nil, multierr.Append(err, stopAll())
		}
		if err := trace.Start(traceFile); err != nil {
			return nil, multierr.Combine(fmt.Errorf("failed to start trace: %w", err), traceFile.Close(), stopAll())
		}
		stops = append(stops, func() error {
			trace.Stop()
			return traceFile.Close()
		})
	}

	return func() (err error) {
		if p.Mem != "" {
			err = writeHeapProfile(p.Mem)
		}
		return multierr.Append(err, stopAll())
	}, nil
}

func writeHeapProfile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	runtime.GC() // get up-to-date statistics
	return pprof.WriteHeapProfile(f)
}
