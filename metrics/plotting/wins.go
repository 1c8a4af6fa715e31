// Package plotting renders round logs as charts.
package plotting

import (
	"errors"
	"fmt"
	"image/color"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/relab/majority/internal/roundlog"
)

// ErrNoRounds is returned when plotting a chart that has no rounds.
var ErrNoRounds = errors.New("plotting: no rounds to plot")

// WinsPlot counts how many rounds each value won.
type WinsPlot struct {
	wins   map[string]uint64
	order  []string // values in the order they first won
	rounds uint64
	ties   uint64
}

// NewWinsPlot returns an empty WinsPlot.
func NewWinsPlot() *WinsPlot {
	return &WinsPlot{wins: make(map[string]uint64)}
}

// Add adds the outcome of a round.
func (p *WinsPlot) Add(rec roundlog.Record) {
	if _, ok := p.wins[rec.Value]; !ok {
		p.order = append(p.order, rec.Value)
	}
	p.wins[rec.Value]++
	p.rounds++
	if rec.Tied {
		p.ties++
	}
}

// Wins returns the number of wins of value.
func (p *WinsPlot) Wins(value string) uint64 {
	return p.wins[value]
}

// Values returns the winning values in the order they first won.
func (p *WinsPlot) Values() []string {
	return append([]string(nil), p.order...)
}

// Rounds returns the number of rounds added.
func (p *WinsPlot) Rounds() uint64 {
	return p.rounds
}

// Plot saves a bar chart of the wins to filename. The image format is chosen by the file extension.
func (p *WinsPlot) Plot(filename string) error {
	if p.rounds == 0 {
		return ErrNoRounds
	}

	plt := plot.New()

	grid := plotter.NewGrid()
	grid.Horizontal.Color = color.Gray{Y: 200}
	grid.Horizontal.Dashes = plotutil.Dashes(2)
	grid.Vertical.Color = color.Transparent
	plt.Add(grid)

	plt.Title.Text = fmt.Sprintf("%d rounds, %d resolved by tie-break", p.rounds, p.ties)
	plt.X.Label.Text = "Value"
	plt.Y.Label.Text = "Rounds won"
	plt.Y.Tick.Marker = hplot.Ticks{N: 10}

	values := make(plotter.Values, len(p.order))
	for i, v := range p.order {
		values[i] = float64(p.wins[v])
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("failed to create bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	plt.Add(bars)
	plt.NominalX(p.order...)

	if err := plt.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
