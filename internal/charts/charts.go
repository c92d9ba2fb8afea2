// Package charts renders analytics PNGs for the plotting tools.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 900
	chartHeight = 500
	pieSize     = 640
)

// RatingSeries is one user's rating history.
type RatingSeries struct {
	Handle  string
	Times   []time.Time
	Ratings []float64
}

// Bin is one bar of a histogram.
type Bin struct {
	Label string
	Count int
}

// Slice is one pie segment.
type Slice struct {
	Label string
	Count int
}

// RatingGraph plots rating over time for one or more users. Series
// with fewer than two contests cannot span a time range and are
// skipped; at least one plottable series is required.
func RatingGraph(series []RatingSeries) ([]byte, error) {
	plotted := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if len(s.Times) < 2 || len(s.Times) != len(s.Ratings) {
			continue
		}
		plotted = append(plotted, chart.TimeSeries{
			Name:    s.Handle,
			XValues: s.Times,
			YValues: s.Ratings,
		})
	}
	if len(plotted) == 0 {
		return nil, fmt.Errorf("need at least two rated contests to plot")
	}

	graph := chart.Chart{
		Title:  "Codeforces Rating History",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: plotted,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderChart(graph)
}

// PerformanceGraph plots a user's rating line with per-contest rating
// deltas on the secondary axis.
func PerformanceGraph(handle string, times []time.Time, ratings, deltas []float64) ([]byte, error) {
	if len(times) < 2 || len(times) != len(ratings) || len(times) != len(deltas) {
		return nil, fmt.Errorf("need at least two rated contests to plot")
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Rating and Performance for %s", handle),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Rating",
				XValues: times,
				YValues: ratings,
			},
			chart.TimeSeries{
				Name:    "Rating Change",
				YAxis:   chart.YAxisSecondary,
				XValues: times,
				YValues: deltas,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderChart(graph)
}

// Histogram renders a labelled bar chart.
func Histogram(title string, bins []Bin) ([]byte, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}

	bars := make([]chart.Value, 0, len(bins))
	for _, bin := range bins {
		bars = append(bars, chart.Value{
			Label: bin.Label,
			Value: float64(bin.Count),
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 36,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Pie renders a labelled pie chart.
func Pie(title string, slices []Slice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", s.Label, s.Count),
			Value: float64(s.Count),
		})
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  pieSize,
		Height: pieSize,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderChart(graph chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
