// Package report assembles scanner output into a PDF assessment report.
//
// The package is organized by logical concern across multiple files:
//
// # Assembly (assembler.go)
//
// Assembler, Inputs and the functional options. Generate parses the nmap
// XML, ZAP JSON and AI insight payloads, renders the cover, infrastructure,
// vulnerability summary, executive summary and detail sections, and writes
// the PDF atomically.
//
// # Sections (sections.go)
//
// Per-section rendering. Each alert detail block is isolated so a failure
// in one alert never stops the rest of the report.
//
// # Results (result.go)
//
// Result describes what a generation produced.
//
// # Configuration (config.go)
//
// Config, BrandingConfig, LocaleConfig, LimitsConfig, SectionConfig,
// PageConfig, ExportConfig. Report appearance via YAML configuration files.
package report
