// Package chart renders the risk distribution image embedded in reports.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"

	"github.com/waftester/scanreport/pkg/alerts"
	"github.com/waftester/scanreport/pkg/finding"
)

// ErrNoData is returned when there are no alerts to chart.
var ErrNoData = errors.New("chart: no alerts to plot")

// Renderer draws a risk chart as PNG.
type Renderer interface {
	Render(stats alerts.RiskStats, w io.Writer) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(stats alerts.RiskStats, w io.Writer) error

// Render implements Renderer.
func (f RendererFunc) Render(stats alerts.RiskStats, w io.Writer) error {
	return f(stats, w)
}

// BarChart renders one bar per risk level.
type BarChart struct {
	Width  int
	Height int
	Title  string
}

// DefaultBarChart returns the standard chart dimensions.
func DefaultBarChart() BarChart {
	return BarChart{Width: 512, Height: 384, Title: "Risk Distribution"}
}

var riskStyles = map[finding.RiskLevel]chart.Style{
	finding.RiskHigh:          barStyle(drawing.ColorRed),
	finding.RiskMedium:        barStyle(drawing.ColorFromHex("ffa500")),
	finding.RiskLow:           barStyle(drawing.ColorFromHex("c8c800")),
	finding.RiskInformational: barStyle(drawing.ColorBlue),
}

func barStyle(c drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   c,
		StrokeColor: c,
		StrokeWidth: 0,
	}
}

// Render implements Renderer. Labels stay English because the embedded
// chart font only covers Latin glyphs.
func (b BarChart) Render(stats alerts.RiskStats, w io.Writer) error {
	if stats.Total() == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, 4)
	peak := 1
	for _, level := range finding.RiskLevels() {
		n := stats.Count(level)
		peak = max(peak, n)
		bars = append(bars, chart.Value{
			Label: level.String(),
			Value: float64(n),
			Style: riskStyles[level],
		})
	}

	graph := chart.BarChart{
		Width:  b.Width,
		Height: b.Height,
		Title:  b.Title,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name: "Count",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(peak),
			},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render risk chart: %w", err)
	}
	return nil
}

// WithRiskChart renders the chart to a temporary PNG, passes its path to
// fn, and removes the file afterwards whether or not fn succeeded. A nil
// renderer uses DefaultBarChart. With no alerts it returns ErrNoData
// without creating a file.
func WithRiskChart(stats alerts.RiskStats, r Renderer, fn func(path string) error) error {
	if stats.Total() == 0 {
		return ErrNoData
	}
	if r == nil {
		r = DefaultBarChart()
	}

	f, err := os.CreateTemp("", "risk-chart-*.png")
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	path := f.Name()
	defer func() {
		f.Close()
		os.Remove(path)
	}()

	if err := r.Render(stats, f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return fn(path)
}
