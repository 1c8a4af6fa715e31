package profiling_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/relab/majority/internal/profiling"
)

func TestStartStop(t *testing.T) {
	dir := t.TempDir()
	profiles := profiling.Profiles{
		CPU:    filepath.Join(dir, "cpu.prof"),
		Mem:    filepath.Join(dir, "mem.prof"),
		Trace:  filepath.Join(dir, "trace.out"),
		Fgprof: filepath.Join(dir, "fgprof.prof"),
	}
	if !profiles.Enabled() {
		t.Fatal("Enabled() = false; want true")
	}

	stop, err := profiling.Start(profiles)
	if err != nil {
		t.Fatal(err)
	}
	if err := stop(); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{profiles.CPU, profiles.Mem, profiles.Trace, profiles.Fgprof} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("profile %s was not written: %v", filepath.Base(path), err)
		}
	}
}

func TestStartNothing(t *testing.T) {
	var profiles profiling.Profiles
	if profiles.Enabled() {
		t.Fatal("Enabled() = true; want false")
	}
	stop, err := profiling.Start(profiles)
	if err != nil {
		t.Fatal(err)
	}
	if err := stop(); err != nil {
		t.Fatal(err)
	}
}

func TestStartFailureStopsStarted(t *testing.T) {
	dir := t.TempDir()
	_, err := profiling.Start(profiling.Profiles{
		CPU:   filepath.Join(dir, "cpu.prof"),
		Trace: filepath.Join(dir, "missing", "trace.out"),
	})
	if err == nil {
		t.Fatal("Start() succeeded; want an error for the unwritable trace path")
	}
	// the cpu profiler must have been stopped, so it can be started again
	stop, err := profiling.Start(profiling.Profiles{CPU: filepath.Join(dir, "cpu2.prof")})
	if err != nil {
		t.Fatalf("cpu profiler still running after failed Start: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatal(err)
	}
}
