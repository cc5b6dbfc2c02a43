package report

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/waftester/scanreport/pkg/alerts"
	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/templates"
)

// Config defines report generation settings.
// Configuration is loaded from YAML files to allow per-organization branding,
// language, limits and section visibility.
type Config struct {
	// Name is the configuration identifier (e.g., "default", "minimal")
	Name string `yaml:"name" json:"name"`

	// Version is the config version for compatibility
	Version string `yaml:"version" json:"version"`

	// Branding customizes the cover page and footer
	Branding BrandingConfig `yaml:"branding" json:"branding"`

	// Locale selects the report language
	Locale LocaleConfig `yaml:"locale" json:"locale"`

	// Font configures an optional UTF-8 font
	Font FontConfig `yaml:"font" json:"font"`

	// Limits bounds text lengths and CVE listings
	Limits LimitsConfig `yaml:"limits" json:"limits"`

	// Sections defines which report sections to include
	Sections SectionConfig `yaml:"sections" json:"sections"`

	// Page controls paper size and output encoding
	Page PageConfig `yaml:"page" json:"page"`

	// Export configures the analysis text export
	Export ExportConfig `yaml:"export" json:"export"`
}

// BrandingConfig holds organization branding information.
type BrandingConfig struct {
	// CompanyName appears in the report title
	CompanyName string `yaml:"company_name" json:"company_name"`

	// ToolName is the scanner named on the cover
	ToolName string `yaml:"tool_name" json:"tool_name"`

	// Author is printed on the cover and written to document metadata
	Author string `yaml:"author" json:"author"`

	// LogoPath is a PNG or JPEG shown on the cover
	LogoPath string `yaml:"logo_path" json:"logo_path"`

	// FooterText appears at the bottom of each page
	FooterText string `yaml:"footer_text" json:"footer_text"`
}

// LocaleConfig selects labels and vulnerability name translation.
type LocaleConfig struct {
	// Language is a BCP 47 tag such as "en" or "zh-TW"
	Language string `yaml:"language" json:"language"`
}

// FontConfig configures text rendering.
type FontConfig struct {
	// Path is a TrueType font covering the report language. Required for
	// legible non-Latin output.
	Path string `yaml:"path" json:"path"`
}

// LimitsConfig bounds scanner-supplied content.
type LimitsConfig struct {
	// TextLimit caps descriptions and remediation in runes (0 disables)
	TextLimit int `yaml:"text_limit" json:"text_limit"`

	// TruncationMarker is appended to capped text
	TruncationMarker string `yaml:"truncation_marker" json:"truncation_marker"`

	// CVEsPerPort limits significant CVEs listed per port (0 lists all)
	CVEsPerPort int `yaml:"cves_per_port" json:"cves_per_port"`

	// CVSSThreshold is the score at which a CVE is significant
	CVSSThreshold float64 `yaml:"cvss_threshold" json:"cvss_threshold"`
}

// SectionConfig enables or disables specific report sections.
type SectionConfig struct {
	// Infrastructure shows hosts, open ports and CVEs
	Infrastructure bool `yaml:"infrastructure" json:"infrastructure"`

	// Chart embeds the risk distribution chart
	Chart bool `yaml:"chart" json:"chart"`

	// ExecutiveSummary shows the AI executive summary
	ExecutiveSummary bool `yaml:"executive_summary" json:"executive_summary"`

	// Details shows one block per alert
	Details bool `yaml:"details" json:"details"`
}

// PageConfig controls the PDF page setup.
type PageConfig struct {
	// Size is "A3", "A4", "A5", "Letter" or "Legal"
	Size string `yaml:"size" json:"size"`

	// Orientation is "portrait" or "landscape"
	Orientation string `yaml:"orientation" json:"orientation"`

	// Compress enables content stream compression
	Compress bool `yaml:"compress" json:"compress"`

	// PlainLists renders markdown lists as indented paragraphs
	PlainLists bool `yaml:"plain_lists" json:"plain_lists"`
}

// ExportConfig configures the High/Medium analysis export.
type ExportConfig struct {
	// Enabled writes the export next to the PDF
	Enabled bool `yaml:"enabled" json:"enabled"`

	// FileName is the export file name, relative to the PDF directory
	FileName string `yaml:"file_name" json:"file_name"`

	// TemplatePath replaces the built-in export layout
	TemplatePath string `yaml:"template_path" json:"template_path"`
}

// DefaultExportFileName is the analysis export written beside the PDF.
const DefaultExportFileName = "zap_analysis.md"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "default",
		Version: "1.0",
		Branding: BrandingConfig{
			CompanyName: "Security Assessment",
			ToolName:    "OWASP ZAP",
		},
		Locale: LocaleConfig{
			Language: "en",
		},
		Limits: LimitsConfig{
			TextLimit:        alerts.DefaultTextLimit,
			TruncationMarker: alerts.DefaultTruncationMarker,
			CVEsPerPort:      5,
			CVSSThreshold:    finding.DefaultCVSSThreshold,
		},
		Sections: SectionConfig{
			Infrastructure:   true,
			Chart:            true,
			ExecutiveSummary: true,
			Details:          true,
		},
		Page: PageConfig{
			Size:        "A4",
			Orientation: "portrait",
			Compress:    true,
		},
		Export: ExportConfig{
			Enabled:  true,
			FileName: DefaultExportFileName,
		},
	}
}

// MinimalConfig returns a configuration with only the summary and details.
func MinimalConfig() *Config {
	cfg := DefaultConfig()
	cfg.Name = "minimal"
	cfg.Sections = SectionConfig{Details: true}
	cfg.Export.Enabled = false
	return cfg
}

// LoadConfig loads a configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadBundledConfig loads one of the configurations embedded in the
// templates package by name, e.g. "minimal" or "zh-tw".
func LoadBundledConfig(name string) (*Config, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return nil, fmt.Errorf("%w: invalid bundled config name %q", finding.ErrValidation, name)
	}
	data, err := templates.FS.ReadFile(path.Join(templates.ReportConfigDir, name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: unknown bundled config %q", finding.ErrValidation, name)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: bundled config %s: %w", finding.ErrParse, name, err)
	}
	return cfg, nil
}

// BundledConfigs lists the names accepted by LoadBundledConfig.
func BundledConfigs() []string {
	entries, err := fs.ReadDir(templates.FS, templates.ReportConfigDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	return names
}

// SaveConfig writes a configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// MergeConfig merges a partial config into base.
// Empty strings and zero numbers in override keep the base value. Sections
// and booleans are taken from override, since a loaded override already
// carries defaults for keys it does not set.
func MergeConfig(base, override *Config) *Config {
	if override == nil {
		return base
	}

	if override.Name != "" {
		base.Name = override.Name
	}
	if override.Version != "" {
		base.Version = override.Version
	}

	if override.Branding.CompanyName != "" {
		base.Branding.CompanyName = override.Branding.CompanyName
	}
	if override.Branding.ToolName != "" {
		base.Branding.ToolName = override.Branding.ToolName
	}
	if override.Branding.Author != "" {
		base.Branding.Author = override.Branding.Author
	}
	if override.Branding.LogoPath != "" {
		base.Branding.LogoPath = override.Branding.LogoPath
	}
	if override.Branding.FooterText != "" {
		base.Branding.FooterText = override.Branding.FooterText
	}

	if override.Locale.Language != "" {
		base.Locale.Language = override.Locale.Language
	}
	if override.Font.Path != "" {
		base.Font.Path = override.Font.Path
	}

	if override.Limits.TextLimit != 0 {
		base.Limits.TextLimit = override.Limits.TextLimit
	}
	if override.Limits.TruncationMarker != "" {
		base.Limits.TruncationMarker = override.Limits.TruncationMarker
	}
	if override.Limits.CVEsPerPort != 0 {
		base.Limits.CVEsPerPort = override.Limits.CVEsPerPort
	}
	if override.Limits.CVSSThreshold != 0 {
		base.Limits.CVSSThreshold = override.Limits.CVSSThreshold
	}

	base.Sections = override.Sections

	if override.Page.Size != "" {
		base.Page.Size = override.Page.Size
	}
	if override.Page.Orientation != "" {
		base.Page.Orientation = override.Page.Orientation
	}
	base.Page.Compress = override.Page.Compress
	base.Page.PlainLists = override.Page.PlainLists

	base.Export.Enabled = override.Export.Enabled
	if override.Export.FileName != "" {
		base.Export.FileName = override.Export.FileName
	}
	if override.Export.TemplatePath != "" {
		base.Export.TemplatePath = override.Export.TemplatePath
	}

	return base
}

// ValidateConfig checks configuration for errors and returns descriptive
// validation errors instead of silently correcting values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", finding.ErrValidation)
	}

	var errs []string

	switch cfg.Page.Size {
	case "A3", "A4", "A5", "Letter", "Legal":
		// Valid
	default:
		errs = append(errs, fmt.Sprintf("invalid page size %q: must be A3, A4, A5, Letter, or Legal", cfg.Page.Size))
	}

	switch cfg.Page.Orientation {
	case "portrait", "landscape":
		// Valid
	default:
		errs = append(errs, fmt.Sprintf("invalid orientation %q: must be portrait or landscape", cfg.Page.Orientation))
	}

	if _, err := language.Parse(cfg.Locale.Language); err != nil {
		errs = append(errs, fmt.Sprintf("invalid locale %q: %v", cfg.Locale.Language, err))
	}

	if cfg.Limits.TextLimit < 0 {
		errs = append(errs, fmt.Sprintf("invalid text_limit %d: must not be negative", cfg.Limits.TextLimit))
	}
	if cfg.Limits.CVEsPerPort < 0 {
		errs = append(errs, fmt.Sprintf("invalid cves_per_port %d: must not be negative", cfg.Limits.CVEsPerPort))
	}
	if cfg.Limits.CVSSThreshold < 0 || cfg.Limits.CVSSThreshold > 10 {
		errs = append(errs, fmt.Sprintf("invalid cvss_threshold %g: must be between 0 and 10", cfg.Limits.CVSSThreshold))
	}

	if cfg.Export.Enabled {
		name := cfg.Export.FileName
		if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
			errs = append(errs, fmt.Sprintf("invalid export file_name %q: must be a plain file name", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: report config: %s", finding.ErrValidation, strings.Join(errs, "; "))
	}

	return nil
}

func (c *Config) orientation() string {
	if c.Page.Orientation == "landscape" {
		return "L"
	}
	return "P"
}

func (c *Config) normalizeOptions() alerts.NormalizeOptions {
	return alerts.NormalizeOptions{
		TextLimit: c.Limits.TextLimit,
		Marker:    c.Limits.TruncationMarker,
	}
}
