// Package alerts normalizes ZAP JSON reports into per-site alert records.
//
// Scanner text fields carry HTML; the normalizer strips markup, unescapes
// entities and caps descriptions and solutions at a configurable length.
// Malformed documents degrade to an empty report, and individual alerts
// that cannot be decoded are skipped.
package alerts

import "github.com/waftester/scanreport/pkg/finding"

// DefaultTextLimit is the rune limit applied to descriptions and solutions.
const DefaultTextLimit = 2000

// DefaultTruncationMarker is appended to text cut at the limit.
const DefaultTruncationMarker = "...(truncated)"

// NormalizeOptions controls text capping.
type NormalizeOptions struct {
	// TextLimit caps description and remediation text in runes.
	// Zero or negative disables capping.
	TextLimit int

	// Marker is appended when text was capped.
	Marker string
}

// DefaultNormalizeOptions returns the standard limit and marker.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		TextLimit: DefaultTextLimit,
		Marker:    DefaultTruncationMarker,
	}
}

// AlertRecord is one normalized web vulnerability finding.
type AlertRecord struct {
	CanonicalName string            `json:"name"`
	Risk          finding.RiskLevel `json:"risk"`
	Confidence    string            `json:"confidence,omitempty"`
	Description   string            `json:"description"`
	Remediation   string            `json:"remediation"`
	References    string            `json:"references,omitempty"`
	SiteName      string            `json:"site"`
	CWEID         string            `json:"cwe_id,omitempty"`
	WASCID        string            `json:"wasc_id,omitempty"`
	PluginID      string            `json:"plugin_id,omitempty"`
	Instances     int               `json:"instances"`
}

// IsCritical reports whether the alert is Medium or High risk.
func (a AlertRecord) IsCritical() bool {
	return a.Risk.IsCritical()
}

// Site groups the alerts raised against one scanned site.
type Site struct {
	Name   string        `json:"name"`
	Alerts []AlertRecord `json:"alerts"`
}

// Report is a normalized ZAP report.
type Report struct {
	Sites []Site `json:"sites"`
}

// Alerts returns every alert across all sites in document order.
func (r Report) Alerts() []AlertRecord {
	var n int
	for _, s := range r.Sites {
		n += len(s.Alerts)
	}
	out := make([]AlertRecord, 0, n)
	for _, s := range r.Sites {
		out = append(out, s.Alerts...)
	}
	return out
}

// Critical returns the Medium and High alerts in document order.
func (r Report) Critical() []AlertRecord {
	var out []AlertRecord
	for _, s := range r.Sites {
		for _, a := range s.Alerts {
			if a.IsCritical() {
				out = append(out, a)
			}
		}
	}
	return out
}

// Stats counts alerts per risk level.
func (r Report) Stats() RiskStats {
	var st RiskStats
	for _, s := range r.Sites {
		for _, a := range s.Alerts {
			st.Add(a.Risk)
		}
	}
	return st
}

// Target returns the first site name, or "" when the report has no sites.
func (r Report) Target() string {
	if len(r.Sites) == 0 {
		return ""
	}
	return r.Sites[0].Name
}

// RiskStats holds alert counts per risk level.
type RiskStats struct {
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	Informational int `json:"informational"`
}

// Add counts one alert at level. Invalid levels count as Informational.
func (s *RiskStats) Add(level finding.RiskLevel) {
	switch level {
	case finding.RiskHigh:
		s.High++
	case finding.RiskMedium:
		s.Medium++
	case finding.RiskLow:
		s.Low++
	default:
		s.Informational++
	}
}

// Count returns the number of alerts at level.
func (s RiskStats) Count(level finding.RiskLevel) int {
	switch level {
	case finding.RiskHigh:
		return s.High
	case finding.RiskMedium:
		return s.Medium
	case finding.RiskLow:
		return s.Low
	default:
		return s.Informational
	}
}

// Total returns the number of alerts across all levels.
func (s RiskStats) Total() int {
	return s.High + s.Medium + s.Low + s.Informational
}
