package sweep

import (
	"errors"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySeries is returned when a result has no samples to plot.
var ErrEmptySeries = errors.New("sweep: empty series")

// WriteChart renders the alive, organism and pair counts of r as a PNG.
func WriteChart(w io.Writer, r Result) error {
	if len(r.Series) < 2 {
		return ErrEmptySeries
	}
	ticks := make([]float64, len(r.Series))
	alive := make([]float64, len(r.Series))
	orgs := make([]float64, len(r.Series))
	prs := make([]float64, len(r.Series))
	peakAlive, peakCount := 1.0, 1.0
	for i, s := range r.Series {
		ticks[i] = float64(s.Tick)
		alive[i] = float64(s.Alive)
		orgs[i] = float64(s.Organisms)
		prs[i] = float64(s.Pairs)
		peakAlive = max(peakAlive, alive[i])
		peakCount = max(peakCount, orgs[i], prs[i])
	}
	graph := chart.Chart{
		Title:  r.Scenario.String(),
		Width:  960,
		Height: 360,
		XAxis:  chart.XAxis{Name: "tick", Style: chart.Style{FontSize: 10.0}},
		YAxis: chart.YAxis{
			Name:  "alive",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: peakAlive},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "organisms / pairs",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: peakCount},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "alive",
				XValues: ticks,
				YValues: alive,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "organisms",
				YAxis:   chart.YAxisSecondary,
				XValues: ticks,
				YValues: orgs,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "pairs",
				YAxis:   chart.YAxisSecondary,
				XValues: ticks,
				YValues: prs,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 165, B: 0, A: 255}, StrokeWidth: 3.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
