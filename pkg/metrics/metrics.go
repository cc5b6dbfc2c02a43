// Package metrics records report generation counters in Prometheus format.
//
// A Recorder owns a private registry; nothing is served over HTTP. Hosts
// that want to scrape the counters expose Registry() themselves. A nil
// *Recorder is valid and records nothing.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for ReportsTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Input labels for ParseFailuresTotal.
const (
	InputRecon   = "recon"
	InputAlerts  = "alerts"
	InputInsight = "insight"
)

// Source labels for AlertsRenderedTotal.
const (
	SourceAI      = "ai"
	SourceScanner = "scanner"
)

// Recorder holds the report generation counters.
type Recorder struct {
	registry *prometheus.Registry

	reportsTotal        *prometheus.CounterVec
	parseFailuresTotal  *prometheus.CounterVec
	alertsRenderedTotal *prometheus.CounterVec
	renderFailuresTotal *prometheus.CounterVec
}

// NewRecorder creates a Recorder with all counters registered on a fresh
// registry.
func NewRecorder() (*Recorder, error) {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanreport_reports_total",
			Help: "Total number of report generations by result",
		},
		[]string{"result"},
	)

	r.parseFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanreport_parse_failures_total",
			Help: "Total number of inputs that failed to parse or validate",
		},
		[]string{"input"},
	)

	r.alertsRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanreport_alerts_rendered_total",
			Help: "Total number of alert detail blocks rendered by remediation source",
		},
		[]string{"source"},
	)

	r.renderFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanreport_render_failures_total",
			Help: "Total number of recovered render failures by report section",
		},
		[]string{"section"},
	)

	collectors := []prometheus.Collector{
		r.reportsTotal,
		r.parseFailuresTotal,
		r.alertsRenderedTotal,
		r.renderFailuresTotal,
	}
	for _, c := range collectors {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return r, nil
}

// MustNewRecorder is like NewRecorder but panics on registration errors.
func MustNewRecorder() *Recorder {
	r, err := NewRecorder()
	if err != nil {
		panic(err)
	}
	return r
}

// Registry returns the registry holding the counters, or nil.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Report counts one finished generation.
func (r *Recorder) Report(success bool) {
	if r == nil {
		return
	}
	result := ResultSuccess
	if !success {
		result = ResultFailure
	}
	r.reportsTotal.WithLabelValues(result).Inc()
}

// ParseFailure counts an input that degraded to an empty or skipped value.
func (r *Recorder) ParseFailure(input string) {
	if r == nil {
		return
	}
	r.parseFailuresTotal.WithLabelValues(input).Inc()
}

// AlertRendered counts one alert detail block.
func (r *Recorder) AlertRendered(source string) {
	if r == nil {
		return
	}
	r.alertsRenderedTotal.WithLabelValues(source).Inc()
}

// RenderFailure counts a recovered render failure in section.
func (r *Recorder) RenderFailure(section string) {
	if r == nil {
		return
	}
	r.renderFailuresTotal.WithLabelValues(section).Inc()
}
