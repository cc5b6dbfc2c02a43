package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/waftester/scanreport/pkg/alerts"
	"github.com/waftester/scanreport/pkg/chart"
	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/pkg/locale"
	"github.com/waftester/scanreport/pkg/metrics"
)

const testNmap = `<?xml version="1.0"?>
<nmaprun scanner="nmap">
  <host>
    <status state="up"/>
    <address addr="10.0.0.5" addrtype="ipv4"/>
    <hostnames><hostname name="web01.internal"/></hostnames>
    <ports>
      <port protocol="tcp" portid="22">
        <state state="open"/>
        <service name="ssh" product="OpenSSH" version="7.4"/>
        <script id="vulners">
          <table key="cpe:/a:openbsd:openssh:7.4">
            <table>
              <elem key="id">CVE-2023-38408</elem>
              <elem key="cvss">9.8</elem>
              <elem key="is_exploit">false</elem>
            </table>
            <table>
              <elem key="id">CVE-2019-6111</elem>
              <elem key="cvss">5.8</elem>
              <elem key="is_exploit">false</elem>
            </table>
          </table>
        </script>
      </port>
      <port protocol="tcp" portid="443">
        <state state="open"/>
        <service name="https" product="nginx"/>
      </port>
    </ports>
    <os><osmatch name="Linux 5.4" accuracy="96"/></os>
  </host>
  <host>
    <status state="down"/>
    <address addr="10.0.0.6" addrtype="ipv4"/>
  </host>
</nmaprun>`

const testZAP = `{"@version":"2.14.0","site":[{"@name":"https://shop.example.com","alerts":[
  {"alert":"SQL Injection","riskcode":"3","confidence":"2","riskdesc":"High (Medium)",
   "desc":"<p>SQL injection may be possible.</p>","solution":"<p>Scanner says validate.</p>",
   "reference":"<p>https://owasp.org/sqli</p>","cweid":"89","wascid":"19","count":"2"},
  {"alert":"Missing Anti-clickjacking Header","riskcode":"2","confidence":"2",
   "desc":"<p>No frame protection.</p>","solution":"<p>Set X-Frame-Options.</p>","cweid":"1021"},
  {"alert":"Cookie No HttpOnly Flag","riskcode":"1","confidence":"2",
   "desc":"<p>Cookie readable by scripts.</p>","solution":"<p>Set HttpOnly.</p>"},
  {"alert":"Modern Web Application","riskcode":"0","confidence":"2",
   "desc":"<p>Informational only.</p>","solution":"<p>Nothing to do.</p>"}
]}]}`

const testInsight = `{
  "executiveSummary": "Overall posture is **weak**.\n\n- Patch the database layer first",
  "solutions": {
    "  sql   INJECTION ": "## Explanation\nAttackers can alter queries\n## Solution\n1. Use parameterized queries\n2. Apply least privilege\n## Reference\nOWASP cheat sheet"
  }
}`

var testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type testHarness struct {
	asm     *Assembler
	spans   *tracetest.SpanRecorder
	metrics *metrics.Recorder
	dir     string
}

func newHarness(t *testing.T, cfg *Config, opts ...Option) testHarness {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Page.Compress = false // keep text searchable in raw bytes

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	rec := metrics.MustNewRecorder()
	base := []Option{
		WithTracer(tp.Tracer("report-test")),
		WithMetrics(rec),
		WithClock(func() time.Time { return testTime }),
		WithLogger(nil),
	}
	return testHarness{
		asm:     New(cfg, append(base, opts...)...),
		spans:   spans,
		metrics: rec,
		dir:     t.TempDir(),
	}
}

func (h testHarness) output() string {
	return filepath.Join(h.dir, "report.pdf")
}

func readPDF(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, pdfapi.Validate(bytes.NewReader(raw), nil), "PDF validation failed")
	return raw
}

func pageCount(t *testing.T, raw []byte) int {
	t.Helper()
	n, err := pdfapi.PageCount(bytes.NewReader(raw), nil)
	require.NoError(t, err)
	return n
}

func assertText(t *testing.T, raw []byte, texts ...string) {
	t.Helper()
	for _, s := range texts {
		assert.True(t, bytes.Contains(raw, []byte(s)), "PDF does not contain %q", s)
	}
}

func assertNoText(t *testing.T, raw []byte, texts ...string) {
	t.Helper()
	for _, s := range texts {
		assert.False(t, bytes.Contains(raw, []byte(s)), "PDF unexpectedly contains %q", s)
	}
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	assert.ElementsMatch(t, names, got)
}

func TestGenerate_FullReport(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	res, err := h.asm.Generate(context.Background(), Inputs{
		ReconXML:    []byte(testNmap),
		AlertsJSON:  []byte(testZAP),
		InsightJSON: []byte(testInsight),
	}, h.output())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Success)
	assert.Equal(t, h.output(), res.Path)
	assert.Equal(t, 1, res.Hosts)
	assert.Equal(t, 4, res.Alerts)
	assert.Equal(t, 1, res.AIMatches)
	assert.Zero(t, res.RenderFailures)
	assert.True(t, res.InsightValid)
	assert.Equal(t, alerts.RiskStats{High: 1, Medium: 1, Low: 1, Informational: 1}, res.Stats)
	assert.Equal(t, 2, res.Infra.OpenPorts)
	assert.Equal(t, 1, res.Infra.SignificantCVEs)
	assert.Contains(t, res.Message, h.output())

	raw := readPDF(t, h.output())
	assert.Equal(t, res.Pages, pageCount(t, raw))
	assert.GreaterOrEqual(t, res.Pages, 4)

	assertText(t, raw,
		"Security Assessment",
		"OWASP ZAP",
		"2026-03-14 09:30",
		"https://shop.example.com",
		res.ReportID,
		"Infrastructure Summary",
		"web01.internal",
		"Linux 5.4",
		"CVE-2023-38408",
		"Scan Result Summary",
		"Warning: 1 high risk vulnerabilities",
		"AI Executive Summary",
		"Overall posture is",
		"Patch the database layer first",
		"Vulnerability Details",
		"SQL injection may be possible.",
		"Attackers can alter queries",
		"Use parameterized queries",
		"OWASP cheat sheet",
		"Generative AI recommendation",
		"Set X-Frame-Options.",
		"Scanner recommendation",
		"CWE-89",
	)
	assertNoText(t, raw,
		"CVE-2019-6111",
		"Scanner says validate.",
		"**weak**",
		"## Solution",
	)
}

func TestGenerate_ReportIDIsUUID(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	first, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	require.NoError(t, err)
	second, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	require.NoError(t, err)

	assert.Len(t, first.ReportID, 36)
	assert.NotEqual(t, first.ReportID, second.ReportID)
}

func TestGenerate_AnalysisExport(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	res, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	require.NoError(t, err)

	exportPath := filepath.Join(h.dir, DefaultExportFileName)
	assert.Equal(t, []string{exportPath}, res.ExportPaths)
	assertOnlyFiles(t, h.dir, "report.pdf", DefaultExportFileName)

	b, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	export := string(b)
	assert.True(t, strings.HasPrefix(export, "# Critical Findings (High/Medium Only)\n"))
	assert.Contains(t, export, "## https://shop.example.com")
	assert.Contains(t, export, "- [High] SQL Injection")
	assert.Contains(t, export, "  - Condition: SQL injection may be possible.")
	assert.Contains(t, export, "- [Medium] Missing Anti-clickjacking Header")
	assert.NotContains(t, export, "[Low]")
	assert.NotContains(t, export, "[Informational]")
}

func TestGenerate_InvalidInsightFallsBackToScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{"array root", `[{"SQL Injection":"x"}]`},
		{"solutions is a number", `{"solutions": 42}`},
		{"summary is an object", `{"executiveSummary": {"text": "x"}}`},
		{"truncated", testInsight[:40]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, nil)
			res, err := h.asm.Generate(context.Background(), Inputs{
				AlertsJSON:  []byte(testZAP),
				InsightJSON: []byte(tt.payload),
			}, h.output())
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.False(t, res.InsightValid)
			assert.Zero(t, res.AIMatches)

			raw := readPDF(t, h.output())
			assertText(t, raw, "Scanner says validate.", "Scanner recommendation")
			assertNoText(t, raw, "AI Executive Summary", "Generative AI recommendation")

			expected := `
# HELP scanreport_parse_failures_total Total number of inputs that failed to parse or validate
# TYPE scanreport_parse_failures_total counter
scanreport_parse_failures_total{input="insight"} 1
`
			assert.NoError(t, testutil.GatherAndCompare(h.metrics.Registry(), strings.NewReader(expected), "scanreport_parse_failures_total"))
		})
	}
}

func TestGenerate_DegradedInputs(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	res, err := h.asm.Generate(context.Background(), Inputs{
		ReconXML:   []byte(testNmap[:len(testNmap)/2]),
		AlertsJSON: []byte(testZAP[:len(testZAP)/2]),
	}, h.output())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.Hosts)
	assert.Zero(t, res.Alerts)

	raw := readPDF(t, h.output())
	assertText(t, raw, "No alerts were reported.")
	assertNoText(t, raw, "Infrastructure Summary", "Vulnerability Details")

	expected := `
# HELP scanreport_parse_failures_total Total number of inputs that failed to parse or validate
# TYPE scanreport_parse_failures_total counter
scanreport_parse_failures_total{input="alerts"} 1
scanreport_parse_failures_total{input="recon"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(h.metrics.Registry(), strings.NewReader(expected), "scanreport_parse_failures_total"))
}

func TestGenerate_NoInputs(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	res, err := h.asm.Generate(context.Background(), Inputs{}, h.output())
	require.NoError(t, err)
	assert.True(t, res.Success)

	raw := readPDF(t, h.output())
	assert.Equal(t, 2, pageCount(t, raw), "cover and summary only")
	assertText(t, raw, "No alerts were reported.")

	b, err := os.ReadFile(filepath.Join(h.dir, DefaultExportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(b), "No high or medium risk findings.")
}

func TestGenerate_IOFailure(t *testing.T) {
	t.Parallel()

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, nil)
		blocker := filepath.Join(h.dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		res, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, filepath.Join(blocker, "report.pdf"))
		require.Error(t, err)
		assert.ErrorIs(t, err, finding.ErrIO)
		require.NotNil(t, res)
		assert.False(t, res.Success)
		assert.Empty(t, res.Path)
		assert.NotEmpty(t, res.Message)
		assertOnlyFiles(t, h.dir, "blocker")
	})

	t.Run("target is a directory", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, nil)
		target := filepath.Join(h.dir, "report.pdf")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o600))

		res, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, target)
		require.Error(t, err)
		assert.ErrorIs(t, err, finding.ErrIO)
		assert.False(t, res.Success)
		assertOnlyFiles(t, h.dir, "report.pdf")

		expected := `
# HELP scanreport_reports_total Total number of report generations by result
# TYPE scanreport_reports_total counter
scanreport_reports_total{result="failure"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(h.metrics.Registry(), strings.NewReader(expected), "scanreport_reports_total"))
	})

	t.Run("empty output path", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, nil)
		res, err := h.asm.Generate(context.Background(), Inputs{}, "")
		assert.ErrorIs(t, err, finding.ErrIO)
		assert.False(t, res.Success)
	})
}

func TestGenerate_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Page.Size = "Tabloid"
	h := newHarness(t, cfg)

	res, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	assert.ErrorIs(t, err, finding.ErrValidation)
	assert.False(t, res.Success)
	_, statErr := os.Stat(h.output())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestGenerate_MissingFontFails(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Font.Path = "/nonexistent/NotoSansTC-Regular.ttf"
	h := newHarness(t, cfg)

	res, err := h.asm.Generate(context.Background(), Inputs{}, h.output())
	assert.ErrorIs(t, err, finding.ErrRender)
	assert.False(t, res.Success)
}

func TestGenerate_ChartFailureLeavesNote(t *testing.T) {
	t.Parallel()

	broken := chart.RendererFunc(func(alerts.RiskStats, io.Writer) error {
		return errors.New("no font for chart labels")
	})
	h := newHarness(t, nil, WithChartRenderer(broken))

	res, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.RenderFailures)

	raw := readPDF(t, h.output())
	assertText(t, raw, "chart could not be loaded", "Risk Level")
}

func TestGenerate_SectionPanicIsIsolated(t *testing.T) {
	t.Parallel()

	exploding := chart.RendererFunc(func(alerts.RiskStats, io.Writer) error {
		panic("chart backend crashed")
	})
	h := newHarness(t, nil, WithChartRenderer(exploding))

	var (
		res *Result
		err error
	)
	require.NotPanics(t, func() {
		res, err = h.asm.Generate(context.Background(), Inputs{
			AlertsJSON:  []byte(testZAP),
			InsightJSON: []byte(testInsight),
		}, h.output())
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.RenderFailures)

	raw := readPDF(t, h.output())
	assertText(t, raw,
		"this section could not be rendered",
		"Overall posture is",
		"SQL injection may be possible.",
	)

	expected := `
# HELP scanreport_render_failures_total Total number of recovered render failures by report section
# TYPE scanreport_render_failures_total counter
scanreport_render_failures_total{section="summary"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(h.metrics.Registry(), strings.NewReader(expected), "scanreport_render_failures_total"))
}

func TestGenerate_ExecutiveSummaryPanicIsIsolated(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil, WithTranslator(panickingTextTranslator{}))
	res, err := h.asm.Generate(context.Background(), Inputs{
		AlertsJSON:  []byte(testZAP),
		InsightJSON: []byte(testInsight),
	}, h.output())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 5, res.RenderFailures, "executive summary and four alert blocks")

	raw := readPDF(t, h.output())
	assertText(t, raw,
		"AI Executive Summary",
		"this section could not be rendered",
		"this finding could not be rendered",
		"Risk Level",
	)
}

// panickingTracer fails when the named span is started.
type panickingTracer struct {
	noop.Tracer
	span string
}

func (p panickingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if name == p.span {
		panic("tracer exploded")
	}
	return p.Tracer.Start(ctx, name, opts...)
}

func TestGenerate_PanicBecomesFailureResult(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil, WithTracer(panickingTracer{span: "report.ingest"}))

	var (
		res *Result
		err error
	)
	require.NotPanics(t, func() {
		res, err = h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, finding.ErrRender)
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "tracer exploded")
	assert.NotEmpty(t, res.ReportID)
	assert.NoFileExists(t, h.output())
}

func TestGenerate_ChartDisabled(t *testing.T) {
	t.Parallel()

	called := false
	spy := chart.RendererFunc(func(alerts.RiskStats, io.Writer) error {
		called = true
		return nil
	})
	cfg := DefaultConfig()
	cfg.Sections.Chart = false
	h := newHarness(t, cfg, WithChartRenderer(spy))

	_, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	require.NoError(t, err)
	assert.False(t, called)
}

// panickingTranslator fails on one alert name.
type panickingTranslator struct {
	locale.Identity
	name string
}

func (p panickingTranslator) Title(name string) string {
	if name == p.name {
		panic("translation backend unavailable")
	}
	return name
}

// panickingTextTranslator fails on every free-text translation.
type panickingTextTranslator struct {
	locale.Identity
}

func (panickingTextTranslator) Text(string) string {
	panic("translation backend unavailable")
}

func TestGenerate_AlertFailureIsIsolated(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil, WithTranslator(panickingTranslator{name: "Missing Anti-clickjacking Header"}))
	res, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.RenderFailures)

	raw := readPDF(t, h.output())
	assertText(t, raw,
		"SQL injection may be possible.",
		"this finding could not be rendered",
		"Cookie readable by scripts.",
		"Informational only.",
	)

	expected := `
# HELP scanreport_alerts_rendered_total Total number of alert detail blocks rendered by remediation source
# TYPE scanreport_alerts_rendered_total counter
scanreport_alerts_rendered_total{source="scanner"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(h.metrics.Registry(), strings.NewReader(expected), "scanreport_alerts_rendered_total"))
}

func TestGenerate_PlainListsCountAsFallbacks(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Page.PlainLists = true
	h := newHarness(t, cfg)

	res, err := h.asm.Generate(context.Background(), Inputs{
		AlertsJSON:  []byte(testZAP),
		InsightJSON: []byte(testInsight),
	}, h.output())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.RenderFailures, "executive summary list and AI solution list")

	raw := readPDF(t, h.output())
	assertText(t, raw, "1. Use parameterized queries", "2. Apply least privilege")
}

func TestGenerate_MinimalSections(t *testing.T) {
	t.Parallel()

	h := newHarness(t, MinimalConfig())
	res, err := h.asm.Generate(context.Background(), Inputs{
		ReconXML:    []byte(testNmap),
		AlertsJSON:  []byte(testZAP),
		InsightJSON: []byte(testInsight),
	}, h.output())
	require.NoError(t, err)
	assert.Empty(t, res.ExportPaths)
	assertOnlyFiles(t, h.dir, "report.pdf")

	raw := readPDF(t, h.output())
	assertNoText(t, raw, "Infrastructure Summary", "AI Executive Summary")
	assertText(t, raw, "Vulnerability Details", "Use parameterized queries")
}

func TestGenerate_TraditionalChinese(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Locale.Language = "zh-TW"
	cfg.Branding.CompanyName = "Acme"
	h := newHarness(t, cfg)

	insightZH := `{"solutions":{"SQL 資料隱碼攻擊":"Use parameterized queries"}}`
	res, err := h.asm.Generate(context.Background(), Inputs{
		AlertsJSON:  []byte(testZAP),
		InsightJSON: []byte(insightZH),
	}, h.output())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.AIMatches, "localized title resolves the AI solution")

	raw := readPDF(t, h.output())
	assertText(t, raw, "Use parameterized queries", "Acme")

	b, err := os.ReadFile(filepath.Join(h.dir, DefaultExportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(b), "重大弱點")
}

func TestGenerate_Spans(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	res, err := h.asm.Generate(context.Background(), Inputs{AlertsJSON: []byte(testZAP)}, h.output())
	require.NoError(t, err)

	ended := h.spans.Ended()
	byName := make(map[string]sdktrace.ReadOnlySpan, len(ended))
	for _, s := range ended {
		byName[s.Name()] = s
	}
	require.Contains(t, byName, "report.generate")
	root := byName["report.generate"]
	for _, child := range []string{"report.ingest", "report.render", "report.write"} {
		require.Contains(t, byName, child)
		assert.Equal(t, root.SpanContext().SpanID(), byName[child].Parent().SpanID(), child)
	}

	var id string
	for _, kv := range root.Attributes() {
		if kv.Key == "report.id" {
			id = kv.Value.AsString()
		}
	}
	assert.Equal(t, res.ReportID, id)
}

func TestWriteFileAtomic_RemovesTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	err := writeFileAtomic(path, func(io.Writer) error { return errors.New("encoder failed") })
	assert.ErrorIs(t, err, finding.ErrIO)

	assert.Panics(t, func() {
		_ = writeFileAtomic(path, func(io.Writer) error { panic("encoder crashed") })
	})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
