package alerts

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/pkg/jsonutil"
	"github.com/waftester/scanreport/pkg/strutil"
)

type zapDocument struct {
	Site jsontext.Value `json:"site"`
}

type zapSite struct {
	Name   string           `json:"'@name'"`
	Alerts []jsontext.Value `json:"alerts"`
}

type zapAlert struct {
	Alert      string               `json:"alert"`
	Name       string               `json:"name"`
	RiskCode   jsonutil.LooseString `json:"riskcode"`
	RiskDesc   string               `json:"riskdesc"`
	Confidence jsonutil.LooseString `json:"confidence"`
	Desc       string               `json:"desc"`
	Solution   string               `json:"solution"`
	Reference  string               `json:"reference"`
	CWEID      jsonutil.LooseString `json:"cweid"`
	WASCID     jsonutil.LooseString `json:"wascid"`
	PluginID   jsonutil.LooseString `json:"pluginid"`
	Count      jsonutil.LooseString `json:"count"`
	Instances  []jsontext.Value     `json:"instances"`
}

// confidenceNames maps ZAP confidence codes to labels.
var confidenceNames = map[string]string{
	"0": "False Positive",
	"1": "Low",
	"2": "Medium",
	"3": "High",
	"4": "Confirmed",
}

// ParseZAPJSON normalizes a ZAP JSON report. A malformed document yields an
// empty report and a warning. Alerts that fail to decode are logged and
// skipped; the rest of the site is kept.
func ParseZAPJSON(raw []byte, opts NormalizeOptions, logger *slog.Logger) Report {
	logger = orDefault(logger)

	report, err := DecodeZAPJSON(raw, opts, logger)
	if err != nil {
		logger.Warn("ZAP JSON is empty or malformed, continuing without alerts",
			slog.Any("error", err))
	}
	return report
}

// DecodeZAPJSON is ParseZAPJSON with document-level failures returned
// instead of logged. The report is always usable: on error it has no
// sites. Skipped alerts are still logged to logger.
func DecodeZAPJSON(raw []byte, opts NormalizeOptions, logger *slog.Logger) (Report, error) {
	logger = orDefault(logger)
	empty := Report{Sites: []Site{}}

	if len(bytes.TrimSpace(raw)) == 0 {
		return empty, fmt.Errorf("%w: empty ZAP document", finding.ErrParse)
	}

	var doc zapDocument
	if err := jsonutil.Unmarshal(raw, &doc); err != nil {
		return empty, fmt.Errorf("%w: %w", finding.ErrParse, err)
	}

	sites, err := decodeSites(doc.Site)
	if err != nil {
		return empty, fmt.Errorf("%w: site list: %w", finding.ErrParse, err)
	}

	report := Report{Sites: make([]Site, 0, len(sites))}
	for _, zs := range sites {
		site := Site{Name: strings.TrimSpace(zs.Name), Alerts: make([]AlertRecord, 0, len(zs.Alerts))}
		for i, rawAlert := range zs.Alerts {
			rec, err := normalizeAlert(rawAlert, site.Name, opts)
			if err != nil {
				logger.Warn("skipping malformed ZAP alert",
					slog.String("site", site.Name),
					slog.Int("index", i),
					slog.Any("error", err))
				continue
			}
			site.Alerts = append(site.Alerts, rec)
		}
		report.Sites = append(report.Sites, site)
	}
	return report, nil
}

// decodeSites accepts the site member as a list or, as older ZAP versions
// emit for single-site scans, a lone object. A missing member means no sites.
func decodeSites(v jsontext.Value) ([]zapSite, error) {
	switch v.Kind() {
	case 0, 'n':
		return nil, nil
	case '{':
		var s zapSite
		if err := jsonutil.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		return []zapSite{s}, nil
	case '[':
		var out []zapSite
		if err := jsonutil.Unmarshal(v, &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("site must be a list or object, got %v", v.Kind())
	}
}

func normalizeAlert(raw jsontext.Value, siteName string, opts NormalizeOptions) (AlertRecord, error) {
	var za zapAlert
	if err := jsonutil.Unmarshal(raw, &za); err != nil {
		return AlertRecord{}, fmt.Errorf("%w: %w", finding.ErrParse, err)
	}

	name := strings.TrimSpace(za.Alert)
	if name == "" {
		name = strings.TrimSpace(za.Name)
	}
	if name == "" {
		return AlertRecord{}, fmt.Errorf("%w: alert has no name", finding.ErrParse)
	}

	return AlertRecord{
		CanonicalName: name,
		Risk:          risk(za),
		Confidence:    confidence(za),
		Description:   strutil.Cap(strutil.StripHTML(za.Desc), opts.TextLimit, opts.Marker),
		Remediation:   strutil.Cap(strutil.StripHTML(za.Solution), opts.TextLimit, opts.Marker),
		References:    strutil.StripHTML(za.Reference),
		SiteName:      siteName,
		CWEID:         strings.TrimSpace(za.CWEID.String()),
		WASCID:        strings.TrimSpace(za.WASCID.String()),
		PluginID:      strings.TrimSpace(za.PluginID.String()),
		Instances:     instances(za),
	}, nil
}

// risk classifies by riskcode. Alerts without a code fall back to the
// leading word of riskdesc.
func risk(za zapAlert) finding.RiskLevel {
	code := strings.TrimSpace(za.RiskCode.String())
	if code == "" && za.RiskDesc != "" {
		return finding.RiskFromDescriptor(za.RiskDesc)
	}
	return finding.RiskFromCode(code)
}

// confidence reads the parenthetical of a descriptor like "High (Medium)",
// falling back to the numeric confidence code.
func confidence(za zapAlert) string {
	if _, rest, ok := strings.Cut(za.RiskDesc, "("); ok {
		if c, _, ok := strings.Cut(rest, ")"); ok && strings.TrimSpace(c) != "" {
			return strings.TrimSpace(c)
		}
	}
	return confidenceNames[strings.TrimSpace(za.Confidence.String())]
}

func instances(za zapAlert) int {
	if n, err := strconv.Atoi(strings.TrimSpace(za.Count.String())); err == nil && n >= 0 {
		return n
	}
	return len(za.Instances)
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
