// Package charts renders the pipeline's PNG charts with gonum/plot.
package charts

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"olistcli/internal/analytics"
)

// TimePoint is one monthly observation on a time series chart.
type TimePoint struct {
	T time.Time
	V float64
}

// Bar is one labeled value on a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
}

// Renderer writes charts into a target directory.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer writing into dir. The directory must
// already exist.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Path returns the file a named chart renders to.
func (r *Renderer) Path(name string) string {
	return filepath.Join(r.dir, name+".png")
}

// TimeSeries renders a monthly line chart with point markers.
func (r *Renderer) TimeSeries(name, title, yLabel string, points []TimePoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("chart %s: no data points", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Month"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.T.Unix())
		xys[i].Y = pt.V
	}

	line, markers, err := plotter.NewLinePoints(xys)
	if err != nil {
		return "", fmt.Errorf("chart %s: build line: %w", name, err)
	}
	line.Color = plotutil.Color(0)
	markers.Color = plotutil.Color(0)
	p.Add(line, markers)

	path := r.Path(name)
	if err := p.Save(10*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("chart %s: save: %w", name, err)
	}
	return path, nil
}

// HBar renders a horizontal bar chart with the first bar on top.
func (r *Renderer) HBar(name, title, xLabel string, bars []Bar) (string, error) {
	if len(bars) == 0 {
		return "", fmt.Errorf("chart %s: no bars", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel

	// NominalY lays labels bottom-up; reverse so the ranking reads top-down.
	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		j := len(bars) - 1 - i
		values[j] = b.Value
		labels[j] = b.Label
	}

	chart, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return "", fmt.Errorf("chart %s: build bars: %w", name, err)
	}
	chart.Horizontal = true
	chart.Color = plotutil.Color(2)
	p.Add(chart)
	p.NominalY(labels...)

	path := r.Path(name)
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("chart %s: save: %w", name, err)
	}
	return path, nil
}

// RetentionHeatmap renders the cohort retention matrix, one row per
// cohort month, one column per month since first purchase.
func (r *Renderer) RetentionHeatmap(name, title string, matrix *analytics.CohortMatrix) (string, error) {
	if matrix == nil || len(matrix.Months) == 0 {
		return "", fmt.Errorf("chart %s: empty retention matrix", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Months since first purchase"
	p.Y.Label.Text = "Cohort month"

	heatmap := plotter.NewHeatMap(&retentionGrid{matrix: matrix}, palette.Heat(12, 1))
	p.Add(heatmap)

	p.Y.Tick.Marker = cohortTicks(matrix.Months)
	p.X.Tick.Marker = indexTicks(matrix.MaxIndex())

	path := r.Path(name)
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("chart %s: save: %w", name, err)
	}
	return path, nil
}

// DelayBoxes renders one delivery delay box per review score.
func (r *Renderer) DelayBoxes(name, title string, delivery *analytics.DelayByScore) (string, error) {
	if delivery == nil {
		return "", fmt.Errorf("chart %s: no delay data", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Review score"
	p.Y.Label.Text = "Delay vs estimate (days)"
	p.Add(plotter.NewGrid())

	added := 0
	for i, stats := range delivery.Scores {
		if stats.N == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(36), float64(i), plotter.Values(stats.Samples))
		if err != nil {
			return "", fmt.Errorf("chart %s: box for score %d: %w", name, stats.Score, err)
		}
		p.Add(box)
		added++
	}
	if added == 0 {
		return "", fmt.Errorf("chart %s: no delay samples", name)
	}
	p.NominalX("1", "2", "3", "4", "5")

	path := r.Path(name)
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("chart %s: save: %w", name, err)
	}
	return path, nil
}

// retentionGrid adapts a CohortMatrix to the heatmap grid interface.
// Cells past a cohort's observed horizon are NaN and stay unpainted.
type retentionGrid struct {
	matrix *analytics.CohortMatrix
}

func (g *retentionGrid) Dims() (int, int) {
	return g.matrix.MaxIndex() + 1, len(g.matrix.Months)
}

func (g *retentionGrid) X(c int) float64 { return float64(c) }
func (g *retentionGrid) Y(r int) float64 { return float64(r) }

func (g *retentionGrid) Z(c, r int) float64 {
	row := g.matrix.Retention[r]
	if c >= len(row) {
		return math.NaN()
	}
	return row[c]
}

// cohortTicks labels heatmap rows with their cohort months, thinning
// labels when there are many cohorts.
func cohortTicks(months []time.Time) plot.TickerFunc {
	step := 1
	if len(months) > 18 {
		step = len(months) / 18
	}
	return func(min, max float64) []plot.Tick {
		ticks := make([]plot.Tick, 0, len(months))
		for i, month := range months {
			if float64(i) < min || float64(i) > max {
				continue
			}
			tick := plot.Tick{Value: float64(i)}
			if i%step == 0 {
				tick.Label = month.Format("2006-01")
			}
			ticks = append(ticks, tick)
		}
		return ticks
	}
}

// indexTicks labels every month index column.
func indexTicks(maxIndex int) plot.TickerFunc {
	return func(min, max float64) []plot.Tick {
		ticks := make([]plot.Tick, 0, maxIndex+1)
		for i := 0; i <= maxIndex; i++ {
			if float64(i) < min || float64(i) > max {
				continue
			}
			ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
		}
		return ticks
	}
}
