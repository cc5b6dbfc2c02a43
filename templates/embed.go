// Package templates embeds all bundled template files for distribution.
//
// The writers fall back to these embedded templates when no custom template
// is configured, and report configs can be loaded by name without an
// on-disk copy.
//
// Usage:
//
//	fs := templates.FS
//	data, _ := fs.ReadFile("report-configs/minimal.yaml")
package templates

import "embed"

// FS contains all bundled template files (output formats and report
// configs). Subdirectory structure matches the on-disk templates/ layout
// minus this Go file.
//
//go:embed output/*.tmpl report-configs/*.yaml
var FS embed.FS

// AnalysisExport is the built-in layout of the High/Medium analysis export.
const AnalysisExport = "output/analysis.md.tmpl"

// ReportConfigDir holds the bundled report configurations.
const ReportConfigDir = "report-configs"
