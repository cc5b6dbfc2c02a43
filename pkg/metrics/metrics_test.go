package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	t.Parallel()

	r, err := NewRecorder()
	require.NoError(t, err)

	r.Report(true)
	r.Report(true)
	r.Report(false)
	r.ParseFailure(InputRecon)
	r.ParseFailure(InputInsight)
	r.ParseFailure(InputInsight)
	r.AlertRendered(SourceAI)
	r.AlertRendered(SourceScanner)
	r.AlertRendered(SourceScanner)
	r.RenderFailure("details")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.reportsTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reportsTotal.WithLabelValues(ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.parseFailuresTotal.WithLabelValues(InputRecon)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.parseFailuresTotal.WithLabelValues(InputInsight)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.parseFailuresTotal.WithLabelValues(InputAlerts)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.alertsRenderedTotal.WithLabelValues(SourceAI)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.alertsRenderedTotal.WithLabelValues(SourceScanner)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.renderFailuresTotal.WithLabelValues("details")))
}

func TestRecorder_RegistryExposition(t *testing.T) {
	t.Parallel()

	r := MustNewRecorder()
	r.Report(true)

	expected := `
# HELP scanreport_reports_total Total number of report generations by result
# TYPE scanreport_reports_total counter
scanreport_reports_total{result="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "scanreport_reports_total"))
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a := MustNewRecorder()
	b := MustNewRecorder()
	a.Report(true)

	assert.NotSame(t, a.Registry(), b.Registry())
	assert.Equal(t, 0.0, testutil.ToFloat64(b.reportsTotal.WithLabelValues(ResultSuccess)))
}

func TestRecorder_NilSafe(t *testing.T) {
	t.Parallel()

	var r *Recorder
	assert.NotPanics(t, func() {
		r.Report(true)
		r.ParseFailure(InputAlerts)
		r.AlertRendered(SourceAI)
		r.RenderFailure("summary")
	})
	assert.Nil(t, r.Registry())
}
