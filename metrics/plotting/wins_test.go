package plotting_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/relab/majority/internal/roundlog"
	"github.com/relab/majority/metrics/plotting"
)

func TestWinsPlot(t *testing.T) {
	p := plotting.NewWinsPlot()
	for _, rec := range []roundlog.Record{
		{Round: 1, Value: "2000"},
		{Round: 2, Value: "1000", Tied: true},
		{Round: 3, Value: "2000"},
	} {
		p.Add(rec)
	}

	if diff := cmp.Diff([]string{"2000", "1000"}, p.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if got := p.Wins("2000"); got != 2 {
		t.Errorf("Wins(2000) = %d; want 2", got)
	}
	if got := p.Wins("3000"); got != 0 {
		t.Errorf("Wins(3000) = %d; want 0", got)
	}
	if got := p.Rounds(); got != 3 {
		t.Errorf("Rounds() = %d; want 3", got)
	}

	out := filepath.Join(t.TempDir(), "wins.png")
	if err := p.Plot(out); err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestWinsPlotEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wins.png")
	if err := plotting.NewWinsPlot().Plot(out); !errors.Is(err, plotting.ErrNoRounds) {
		t.Errorf("Plot() error = %v; want %v", err, plotting.ErrNoRounds)
	}
}
