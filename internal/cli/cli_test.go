package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/relab/majority/internal/roundlog"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("majority %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestResolveCommand(t *testing.T) {
	out := execute(t, "resolve", "--strategy", "fixed", "--value", "2000", "--seed", "1", "--log-level", "error")
	for _, want := range []string{"agreed value: 2000", "support: 5/5", "proposer-4: 2000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestBenchAndPlotCommands(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "rounds.bin")
	plotFile := filepath.Join(dir, "wins.png")

	out := execute(t, "bench",
		"--rounds", "20",
		"--proposers", "3",
		"--domain", "A,B",
		"--strategy", "weighted",
		"--weights", "A=1",
		"--seed", "7",
		"--output", logFile,
		"--log-level", "error",
	)
	if !strings.Contains(out, "rounds=20 failures=0") {
		t.Errorf("unexpected bench summary:\n%s", out)
	}

	f, err := os.Open(logFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := roundlog.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 20 {
		t.Fatalf("round log holds %d records; want 20", len(records))
	}
	for i, rec := range records {
		want := roundlog.Record{
			Round:     uint64(i + 1),
			Value:     "A",
			Tally:     []roundlog.Count{{Value: "A", Count: 3}},
			Proposals: []string{"A", "A", "A"},
		}
		if diff := cmp.Diff(want, rec); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	out = execute(t, "plot", "--input", logFile, "--output", plotFile)
	if !strings.Contains(out, "plotted 20 rounds") {
		t.Errorf("unexpected plot output:\n%s", out)
	}
	if _, err := os.Stat(plotFile); err != nil {
		t.Errorf("plot was not written: %v", err)
	}
}

func TestListStrategies(t *testing.T) {
	out := execute(t, "--list-strategies")
	if diff := cmp.Diff("fixed\nuniform\nweighted\n", out); diff != "" {
		t.Errorf("--list-strategies mismatch (-want +got):\n%s", diff)
	}
	listStrategies = false
}
