package report

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/waftester/scanreport/pkg/alerts"
	"github.com/waftester/scanreport/pkg/chart"
	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/pkg/insight"
	"github.com/waftester/scanreport/pkg/markdown"
	"github.com/waftester/scanreport/pkg/metrics"
	"github.com/waftester/scanreport/pkg/output/writers"
	"github.com/waftester/scanreport/pkg/recon"
	"github.com/waftester/scanreport/pkg/strutil"
)

// Section names used in logs and render failure metrics.
const (
	sectionCover          = "cover"
	sectionInfrastructure = "infrastructure"
	sectionSummary        = "summary"
	sectionChart          = "chart"
	sectionExecutive      = "executive_summary"
	sectionDetails        = "details"
)

// chartWidth is the embedded chart width in millimeters.
const chartWidth = 120

// Rune limits for the cover target and for alert names in log fields.
const (
	maxCoverTarget = 120
	maxLogName     = 80
)

// renderFailed records a recovered failure. The document keeps going.
func (a *Assembler) renderFailed(doc *writers.PDFDocument, section string, err error, res *Result) {
	if docErr := doc.Recover(); docErr != nil {
		err = errors.Join(err, docErr)
	}
	res.RenderFailures++
	a.metrics.RenderFailure(section)
	a.logger.Warn("report section rendered with fallback",
		slog.String("section", section),
		slog.Any("error", err))
}

// guard runs one section and turns a panic into a render failure so the
// remaining sections are still drawn.
func (a *Assembler) guard(doc *writers.PDFDocument, data reportData, section string, res *Result, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.renderFailed(doc, section, fmt.Errorf("%w: %s: panic: %v", finding.ErrRender, section, r), res)
			doc.Note(data.labels.SectionFailed)
		}
	}()
	fn()
}

// checkDocument turns a latched document error into a render failure.
func (a *Assembler) checkDocument(doc *writers.PDFDocument, section string, res *Result) {
	if err := doc.Err(); err != nil {
		a.renderFailed(doc, section, fmt.Errorf("%w: %w", finding.ErrRender, err), res)
	}
}

func (a *Assembler) renderCover(doc *writers.PDFDocument, data reportData, reportID string) {
	l := data.labels
	target := strutil.Truncate(data.report.Target(), maxCoverTarget)
	if target == "" {
		target = "-"
	}

	fields := []writers.Field{
		{Label: l.Tool, Value: a.cfg.Branding.ToolName},
		{Label: l.Generated, Value: data.createdAt.Format("2006-01-02 15:04")},
		{Label: l.Target, Value: target},
		{Label: l.ReportID, Value: reportID},
	}
	if a.cfg.Branding.Author != "" {
		fields = append(fields, writers.Field{Label: l.Author, Value: a.cfg.Branding.Author})
	}

	doc.Cover(writers.Cover{
		Title:    l.Title(a.cfg.Branding.CompanyName),
		LogoPath: a.cfg.Branding.LogoPath,
		Fields:   fields,
	})
}

func (a *Assembler) renderInfrastructure(doc *writers.PDFDocument, data reportData, res *Result) {
	l := data.labels
	threshold := a.cfg.Limits.CVSSThreshold

	doc.PageBreak()
	doc.SectionTitle(l.InfraTitle)
	doc.Text(fmt.Sprintf(l.InfraIntroForm, res.Infra.Hosts, res.Infra.OpenPorts, res.Infra.SignificantCVEs))

	hostRows := make([][]string, 0, len(data.hosts))
	for _, h := range data.hosts {
		osGuess := h.OSGuess
		if osGuess == "" {
			osGuess = "-"
		}
		hostRows = append(hostRows, []string{h.Hostname, h.IP, osGuess, strconv.Itoa(len(h.Ports))})
	}
	doc.SubTitle(l.HostsHeading)
	if err := doc.Grid([]string{l.Host, l.Address, l.OS, l.OpenPorts}, hostRows, []float64{2, 1.5, 2.5, 1}); err != nil {
		a.renderFailed(doc, sectionInfrastructure, err, res)
	}

	var portRows [][]string
	for _, h := range data.hosts {
		for _, p := range h.Ports {
			product := p.ProductVersion
			if product == "" {
				product = "-"
			}
			portRows = append(portRows, []string{
				h.IP,
				p.ID + "/" + p.Protocol,
				p.ServiceName,
				product,
				formatCVEs(p, threshold, a.cfg.Limits.CVEsPerPort, l.NoCVEs),
			})
		}
	}
	if len(portRows) > 0 {
		doc.SubTitle(l.PortsHeading)
		if err := doc.Grid([]string{l.Host, l.Port, l.Service, l.Product, l.CVEs}, portRows, []float64{1.5, 1, 1.2, 2, 2.5}); err != nil {
			a.renderFailed(doc, sectionInfrastructure, err, res)
		}
	}
	a.checkDocument(doc, sectionInfrastructure, res)
}

// formatCVEs lists a port's significant CVEs, highest score first, one per
// line. limit <= 0 lists all of them.
func formatCVEs(p recon.PortRecord, threshold float64, limit int, none string) string {
	cves := p.SignificantCVEs(threshold)
	if len(cves) == 0 {
		return none
	}
	if limit > 0 && len(cves) > limit {
		cves = cves[:limit]
	}
	lines := make([]string, len(cves))
	for i, c := range cves {
		line := fmt.Sprintf("%s (%.1f)", c.ID, c.CVSS)
		if c.ExploitAvailable {
			line += " [exploit]"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func (a *Assembler) renderSummary(doc *writers.PDFDocument, data reportData, res *Result) {
	l := data.labels
	stats := res.Stats

	doc.PageBreak()
	doc.SectionTitle(l.SummaryTitle)
	if stats.Total() == 0 {
		doc.Text(l.NoAlerts)
		return
	}
	doc.Text(fmt.Sprintf(l.SummaryIntroForm, stats.Total()))

	if a.cfg.Sections.Chart {
		a.renderChart(doc, l.ChartUnavailable, stats, res)
	}

	rows := make([][]string, 0, len(finding.RiskLevels()))
	for _, level := range finding.RiskLevels() {
		rows = append(rows, []string{l.RiskName(level), strconv.Itoa(stats.Count(level))})
	}
	if err := doc.Grid([]string{l.RiskLevel, l.Count}, rows, []float64{2, 1}); err != nil {
		a.renderFailed(doc, sectionSummary, err, res)
	}

	if stats.High > 0 {
		doc.Warning(fmt.Sprintf(l.HighRiskForm, stats.High))
	}
	a.checkDocument(doc, sectionSummary, res)
}

// renderChart embeds the risk chart. Any failure leaves a note in its place.
func (a *Assembler) renderChart(doc *writers.PDFDocument, unavailable string, stats alerts.RiskStats, res *Result) {
	embedded := false
	err := chart.WithRiskChart(stats, a.chart, func(path string) error {
		embedded = true
		return doc.Image(path, chartWidth, unavailable)
	})
	if err == nil || errors.Is(err, chart.ErrNoData) {
		return
	}
	if !embedded {
		doc.Note(unavailable)
	}
	a.renderFailed(doc, sectionChart, err, res)
}

func (a *Assembler) renderExecutiveSummary(doc *writers.PDFDocument, data reportData, res *Result) {
	summary := strings.TrimSpace(data.insight.ExecutiveSummary)
	if summary == "" {
		return
	}
	doc.SectionTitle(data.labels.ExecutiveTitle)
	if err := markdown.RenderText(data.translator.Text(summary), doc); err != nil {
		a.renderFailed(doc, sectionExecutive, err, res)
	}
	a.checkDocument(doc, sectionExecutive, res)
}

func (a *Assembler) renderDetails(doc *writers.PDFDocument, data reportData, res *Result) {
	doc.PageBreak()
	doc.SectionTitle(data.labels.DetailsTitle)

	var solutions insight.Solutions
	if data.insight != nil {
		solutions = data.insight.Solutions
	}
	resolver := insight.NewResolver(solutions, data.translator)

	for i, alert := range data.report.Alerts() {
		if err := a.renderAlert(doc, data, resolver, alert, res); err != nil {
			a.renderFailed(doc, sectionDetails, err, res)
			doc.Note(data.labels.RenderFailed)
			a.logger.Debug("alert detail failed",
				slog.Int("index", i),
				slog.String("alert", strutil.Truncate(alert.CanonicalName, maxLogName)))
		}
	}
}

// renderAlert draws one alert detail block. Markdown fallbacks are recorded
// here; panics and document errors are returned so the caller can mark the
// block as failed.
func (a *Assembler) renderAlert(doc *writers.PDFDocument, data reportData, resolver *insight.Resolver, alert alerts.AlertRecord, res *Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: alert %q: panic: %v", finding.ErrRender, alert.CanonicalName, r)
		}
	}()

	l := data.labels
	tr := data.translator

	doc.SubTitle(tr.Title(alert.CanonicalName))
	doc.KeyValue(l.OriginalName, alert.CanonicalName)
	doc.KeyValueColor(l.Risk, l.RiskName(alert.Risk), writers.RiskColor(alert.Risk), true)
	if alert.Confidence != "" {
		doc.KeyValue(l.Confidence, alert.Confidence)
	}
	if alert.CWEID != "" && alert.CWEID != "-1" && alert.CWEID != "0" {
		doc.KeyValue(l.CWE, "CWE-"+alert.CWEID)
	}
	if alert.Instances > 0 {
		doc.KeyValue(l.Instances, strconv.Itoa(alert.Instances))
	}

	doc.Label(l.Description, writers.Color{})
	doc.Text(tr.Text(alert.Description))

	var renderErrs []error
	references := alert.References
	source := l.SourceScanner
	fromAI := false

	if match, ok := resolver.Resolve(alert.CanonicalName); ok {
		fromAI = true
		source = l.SourceAI
		res.AIMatches++

		sections := insight.SplitSections(match.Text)
		if sections.Explanation != "" {
			doc.Label(l.AIAnalysis, writers.AccentColor())
			renderErrs = append(renderErrs, markdown.RenderText(sections.Explanation, doc))
		}
		solution := sections.Solution
		if solution == "" {
			solution = match.Text
		}
		doc.Label(l.AIRemediation, writers.AccentColor())
		renderErrs = append(renderErrs, markdown.RenderText(solution, doc))
		references = sections.Reference

		a.logger.Debug("AI remediation matched",
			slog.String("alert", strutil.Truncate(alert.CanonicalName, maxLogName)),
			slog.String("key", strutil.Truncate(match.Key, maxLogName)),
			slog.String("rule", match.Via.String()))
	} else {
		doc.Label(l.Remediation, writers.Color{})
		doc.Text(tr.Text(alert.Remediation))
	}

	sourceColor := writers.Color{}
	if fromAI {
		sourceColor = writers.AccentColor()
	}
	doc.KeyValueColor(l.Source, source, sourceColor, fromAI)

	if strings.TrimSpace(references) != "" {
		doc.Label(l.References, writers.Color{})
		if fromAI {
			renderErrs = append(renderErrs, markdown.RenderText(references, doc))
		} else {
			doc.Text(references)
		}
	}
	doc.Gap()

	if fromAI {
		a.metrics.AlertRendered(metrics.SourceAI)
	} else {
		a.metrics.AlertRendered(metrics.SourceScanner)
	}

	if fallbackErr := errors.Join(renderErrs...); fallbackErr != nil {
		a.renderFailed(doc, sectionDetails, fallbackErr, res)
	}
	if docErr := doc.Err(); docErr != nil {
		return fmt.Errorf("%w: %w", finding.ErrRender, docErr)
	}
	return nil
}
