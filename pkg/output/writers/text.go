package writers

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/waftester/scanreport/pkg/alerts"
	"github.com/waftester/scanreport/pkg/strutil"
	"github.com/waftester/scanreport/templates"
)

// TextExportConfig configures the analysis text export.
type TextExportConfig struct {
	// TemplatePath is the path to a custom template file.
	TemplatePath string

	// TemplateString is an inline template (alternative to TemplatePath).
	TemplateString string

	// TextLimit caps descriptions and solutions in runes; <= 0 disables.
	TextLimit int

	// Marker is appended to capped text.
	Marker string
}

// ExportLabels holds the localized wording of the export.
type ExportLabels struct {
	Title      string
	Condition  string
	Advice     string
	NoFindings string
	Shown      string
}

// ExportSite is one site with its Medium and High alerts.
type ExportSite struct {
	Name   string
	Alerts []alerts.AlertRecord
}

// ExportData is the template input.
type ExportData struct {
	Labels ExportLabels
	Target string
	Count  int
	Sites  []ExportSite
}

// NewExportData keeps only sites with critical alerts.
func NewExportData(report alerts.Report, labels ExportLabels) ExportData {
	data := ExportData{Labels: labels, Target: report.Target()}
	for _, s := range report.Sites {
		site := ExportSite{Name: s.Name}
		for _, a := range s.Alerts {
			if a.IsCritical() {
				site.Alerts = append(site.Alerts, a)
			}
		}
		if len(site.Alerts) > 0 {
			data.Count += len(site.Alerts)
			data.Sites = append(data.Sites, site)
		}
	}
	return data
}

// TextExportWriter renders the critical-alert analysis with text/template.
// Sprig functions and a "limit" function bound to the configured text
// limit are available to templates.
type TextExportWriter struct {
	w    io.Writer
	tmpl *template.Template
}

// NewTextExportWriter parses the configured template, defaulting to the
// bundled analysis layout.
func NewTextExportWriter(w io.Writer, cfg TextExportConfig) (*TextExportWriter, error) {
	var content string
	switch {
	case cfg.TemplatePath != "":
		b, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file: %w", err)
		}
		content = string(b)
	case cfg.TemplateString != "":
		content = cfg.TemplateString
	default:
		b, err := templates.FS.ReadFile(templates.AnalysisExport)
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in template: %w", err)
		}
		content = string(b)
	}

	funcMap := sprig.TxtFuncMap()
	funcMap["limit"] = func(s string) string {
		return strutil.Cap(s, cfg.TextLimit, cfg.Marker)
	}

	tmpl, err := template.New("analysis").Funcs(funcMap).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse export template: %w", err)
	}
	return &TextExportWriter{w: w, tmpl: tmpl}, nil
}

// Write renders data. Output is buffered so a template error writes nothing.
func (tw *TextExportWriter) Write(data ExportData) error {
	var buf bytes.Buffer
	if err := tw.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}
	if _, err := tw.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}
