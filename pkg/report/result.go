package report

import (
	"time"

	"github.com/waftester/scanreport/pkg/alerts"
	"github.com/waftester/scanreport/pkg/recon"
)

// Result describes one report generation.
type Result struct {
	// Success is false when the report could not be written.
	Success bool `json:"success"`

	// Path is the written PDF, empty when no PDF was written.
	Path string `json:"path,omitempty"`

	// ExportPaths lists secondary files written next to the PDF.
	ExportPaths []string `json:"export_paths,omitempty"`

	// Message is a human-readable outcome.
	Message string `json:"message"`

	ReportID string `json:"report_id"`

	Stats alerts.RiskStats `json:"stats"`
	Infra recon.Summary    `json:"infrastructure"`

	Hosts     int `json:"hosts"`
	Alerts    int `json:"alerts"`
	AIMatches int `json:"ai_matches"`

	// RenderFailures counts recovered failures; the report was still written.
	RenderFailures int `json:"render_failures"`

	// InsightValid is false when an AI payload was supplied but rejected.
	InsightValid bool `json:"insight_valid"`

	Pages    int           `json:"pages"`
	Duration time.Duration `json:"duration"`
}
