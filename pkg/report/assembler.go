package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/waftester/scanreport/pkg/alerts"
	"github.com/waftester/scanreport/pkg/chart"
	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/pkg/insight"
	"github.com/waftester/scanreport/pkg/locale"
	"github.com/waftester/scanreport/pkg/metrics"
	"github.com/waftester/scanreport/pkg/output/writers"
	"github.com/waftester/scanreport/pkg/recon"
)

const tracerName = "github.com/waftester/scanreport/pkg/report"

// Inputs are the raw scanner payloads of one report. Any of them may be
// empty; the matching sections are then left out.
type Inputs struct {
	ReconXML    []byte
	AlertsJSON  []byte
	InsightJSON []byte
}

// Assembler turns scanner payloads into a PDF report. It keeps no state
// between Generate calls other than the metrics it records.
type Assembler struct {
	cfg        *Config
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *metrics.Recorder
	translator locale.Translator
	now        func() time.Time
	chart      chart.Renderer
	newID      func() string
}

// Option configures the assembler
type Option func(*Assembler)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = l
	}
}

// WithTracer sets the tracer used for generation spans
func WithTracer(t trace.Tracer) Option {
	return func(a *Assembler) {
		a.tracer = t
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(m *metrics.Recorder) Option {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// WithTranslator replaces the locale's default translator
func WithTranslator(t locale.Translator) Option {
	return func(a *Assembler) {
		a.translator = t
	}
}

// WithClock sets the time source for the cover date and metadata
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// WithChartRenderer replaces the default risk bar chart
func WithChartRenderer(r chart.Renderer) Option {
	return func(a *Assembler) {
		a.chart = r
	}
}

// New creates an assembler. A nil cfg uses DefaultConfig.
func New(cfg *Config, opts ...Option) *Assembler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	a := &Assembler{
		cfg:   cfg,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer(tracerName)
	}
	return a
}

// reportData is the parsed, read-only input of one generation.
type reportData struct {
	hosts      []recon.HostRecord
	report     alerts.Report
	insight    *insight.Insight
	labels     locale.Labels
	translator locale.Translator
	createdAt  time.Time
}

// Generate builds the report and writes it to outputPath. Unusable inputs
// degrade to missing sections. A non-nil error is returned only when the
// configuration is invalid or the report cannot be written; Result is
// non-nil in every case. A panic during generation is returned as an error
// wrapping finding.ErrRender.
func (a *Assembler) Generate(ctx context.Context, in Inputs, outputPath string) (out *Result, err error) {
	start := a.now()
	res := &Result{ReportID: a.newID(), InsightValid: true}

	ctx, span := a.tracer.Start(ctx, "report.generate", trace.WithAttributes(
		attribute.String("report.id", res.ReportID),
		attribute.String("report.output", outputPath),
	))
	defer span.End()

	fail := func(err error) (*Result, error) {
		res.Success = false
		res.Message = err.Error()
		res.Duration = a.now().Sub(start)
		span.RecordError(err)
		span.SetStatus(codes.Error, res.Message)
		a.metrics.Report(false)
		a.logger.Error("report generation failed",
			slog.String("report_id", res.ReportID),
			slog.Any("error", err))
		return res, err
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = fail(fmt.Errorf("%w: panic during generation: %v", finding.ErrRender, r))
		}
	}()

	if err := ValidateConfig(a.cfg); err != nil {
		return fail(err)
	}
	if outputPath == "" {
		return fail(fmt.Errorf("%w: empty output path", finding.ErrIO))
	}

	data := a.ingest(ctx, in, res)
	data.createdAt = start

	doc, err := writers.NewPDFDocument(writers.PDFConfig{
		PageSize:           a.cfg.Page.Size,
		Orientation:        a.cfg.orientation(),
		FontPath:           a.cfg.Font.Path,
		Footer:             a.cfg.Branding.FooterText,
		Title:              data.labels.Title(a.cfg.Branding.CompanyName),
		Author:             a.cfg.Branding.Author,
		CreatedAt:          start,
		DisableCompression: !a.cfg.Page.Compress,
		PlainLists:         a.cfg.Page.PlainLists,
		Logger:             a.logger,
	})
	if err != nil {
		return fail(err)
	}

	a.render(ctx, doc, data, res)
	res.Pages = doc.Pages()

	if err := a.write(ctx, doc, data, outputPath, res); err != nil {
		return fail(err)
	}

	res.Success = true
	res.Duration = a.now().Sub(start)
	res.Message = fmt.Sprintf("report written to %s", outputPath)
	span.SetAttributes(
		attribute.Int("report.pages", res.Pages),
		attribute.Int("report.render_failures", res.RenderFailures),
	)
	span.SetStatus(codes.Ok, "")
	a.metrics.Report(true)
	a.logger.Info("report generated",
		slog.String("report_id", res.ReportID),
		slog.String("path", outputPath),
		slog.Int("hosts", res.Hosts),
		slog.Int("alerts", res.Alerts),
		slog.Int("ai_matches", res.AIMatches),
		slog.Int("render_failures", res.RenderFailures))
	return res, nil
}

// ingest parses the three payloads. Failures degrade to empty values.
func (a *Assembler) ingest(ctx context.Context, in Inputs, res *Result) reportData {
	_, span := a.tracer.Start(ctx, "report.ingest")
	defer span.End()

	tag := locale.Parse(a.cfg.Locale.Language)
	data := reportData{
		hosts:      []recon.HostRecord{},
		report:     alerts.Report{Sites: []alerts.Site{}},
		labels:     locale.LabelsFor(tag),
		translator: a.translator,
	}
	if data.translator == nil {
		data.translator = locale.TranslatorFor(tag)
	}

	if len(bytes.TrimSpace(in.ReconXML)) == 0 {
		a.logger.Debug("no nmap XML supplied, skipping infrastructure summary")
	} else if hosts, err := recon.DecodeNmapXML(in.ReconXML); err != nil {
		a.logger.Warn("nmap XML is incomplete or malformed, continuing without host data",
			slog.Any("error", err))
		a.metrics.ParseFailure(metrics.InputRecon)
		span.RecordError(err)
	} else {
		data.hosts = hosts
	}

	if len(bytes.TrimSpace(in.AlertsJSON)) == 0 {
		a.logger.Warn("no ZAP JSON supplied, report will contain no alerts")
	} else if report, err := alerts.DecodeZAPJSON(in.AlertsJSON, a.cfg.normalizeOptions(), a.logger); err != nil {
		a.logger.Warn("ZAP JSON is malformed, continuing without alerts",
			slog.Any("error", err))
		a.metrics.ParseFailure(metrics.InputAlerts)
		span.RecordError(err)
	} else {
		data.report = report
	}

	if len(bytes.TrimSpace(in.InsightJSON)) > 0 {
		ins, err := insight.ParseInsight(in.InsightJSON)
		if err != nil {
			a.logger.Warn("AI insight failed validation, continuing without AI content",
				slog.Any("error", err))
			a.metrics.ParseFailure(metrics.InputInsight)
			span.RecordError(err)
			res.InsightValid = false
		} else {
			data.insight = ins
		}
	}

	res.Hosts = len(data.hosts)
	res.Infra = recon.Summarize(data.hosts, a.cfg.Limits.CVSSThreshold)
	res.Stats = data.report.Stats()
	res.Alerts = res.Stats.Total()

	span.SetAttributes(
		attribute.Int("report.hosts", res.Hosts),
		attribute.Int("report.alerts", res.Alerts),
		attribute.Bool("report.insight", data.insight != nil),
	)
	return data
}

// render draws every enabled section in order.
func (a *Assembler) render(ctx context.Context, doc *writers.PDFDocument, data reportData, res *Result) {
	_, span := a.tracer.Start(ctx, "report.render")
	defer span.End()

	a.guard(doc, data, sectionCover, res, func() {
		a.renderCover(doc, data, res.ReportID)
		a.checkDocument(doc, sectionCover, res)
	})

	if a.cfg.Sections.Infrastructure && len(data.hosts) > 0 {
		a.guard(doc, data, sectionInfrastructure, res, func() {
			a.renderInfrastructure(doc, data, res)
		})
	}

	a.guard(doc, data, sectionSummary, res, func() {
		a.renderSummary(doc, data, res)
	})

	if a.cfg.Sections.ExecutiveSummary && data.insight != nil {
		a.guard(doc, data, sectionExecutive, res, func() {
			a.renderExecutiveSummary(doc, data, res)
		})
	}

	if a.cfg.Sections.Details && res.Alerts > 0 {
		a.guard(doc, data, sectionDetails, res, func() {
			a.renderDetails(doc, data, res)
		})
	}

	span.SetAttributes(
		attribute.Int("report.ai_matches", res.AIMatches),
		attribute.Int("report.render_failures", res.RenderFailures),
	)
}

// write stores the PDF and the optional export.
func (a *Assembler) write(ctx context.Context, doc *writers.PDFDocument, data reportData, outputPath string, res *Result) error {
	_, span := a.tracer.Start(ctx, "report.write")
	defer span.End()

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: create output directory: %w", finding.ErrIO, err)
	}

	if err := writeFileAtomic(outputPath, func(w io.Writer) error {
		_, err := doc.WriteTo(w)
		return err
	}); err != nil {
		span.RecordError(err)
		return err
	}
	res.Path = outputPath

	if !a.cfg.Export.Enabled {
		return nil
	}

	exportPath := filepath.Join(dir, a.cfg.Export.FileName)
	labels := writers.ExportLabels{
		Title:      data.labels.ExportTitle,
		Condition:  data.labels.ExportCondition,
		Advice:     data.labels.ExportAdvice,
		NoFindings: data.labels.ExportNone,
		Shown:      data.labels.ExportShown,
	}
	if err := writeFileAtomic(exportPath, func(w io.Writer) error {
		tw, err := writers.NewTextExportWriter(w, writers.TextExportConfig{
			TemplatePath: a.cfg.Export.TemplatePath,
			TextLimit:    a.cfg.Limits.TextLimit,
			Marker:       a.cfg.Limits.TruncationMarker,
		})
		if err != nil {
			return err
		}
		return tw.Write(writers.NewExportData(data.report, labels))
	}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("analysis export: %w", err)
	}
	res.ExportPaths = append(res.ExportPaths, exportPath)
	return nil
}

// writeFileAtomic writes to a temporary file in the target directory and
// renames it into place. The temporary file is removed on failure, including
// a panic inside write.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", finding.ErrIO, err)
	}
	tmp := f.Name()
	renamed := false
	defer func() {
		if !renamed {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err = write(f); err != nil {
		if !errors.Is(err, finding.ErrIO) {
			err = fmt.Errorf("%w: write %s: %w", finding.ErrIO, path, err)
		}
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", finding.ErrIO, path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", finding.ErrIO, path, err)
	}
	renamed = true
	return nil
}
