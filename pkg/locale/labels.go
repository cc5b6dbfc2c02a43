// Package locale holds the report's fixed wording per language and the
// boundary to vulnerability-name translation.
package locale

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/waftester/scanreport/pkg/finding"
)

// Labels is the fixed wording of one report language.
type Labels struct {
	Tag language.Tag

	// Cover
	TitleFormat string
	Tool        string
	Generated   string
	Target      string
	ReportID    string
	Author      string

	// Infrastructure summary
	InfraTitle     string
	HostsHeading   string
	PortsHeading   string
	Host           string
	Address        string
	OS             string
	OpenPorts      string
	Port           string
	Service        string
	Product        string
	CVEs           string
	NoCVEs         string
	InfraIntroForm string

	// Vulnerability summary
	SummaryTitle     string
	SummaryIntroForm string
	RiskLevel        string
	Count            string
	HighRiskForm     string
	ChartUnavailable string
	NoAlerts         string

	// Executive summary
	ExecutiveTitle string

	// Details
	DetailsTitle  string
	OriginalName  string
	Risk          string
	Confidence    string
	Description   string
	AIAnalysis    string
	AIRemediation string
	Remediation   string
	Source        string
	SourceAI      string
	SourceScanner string
	References    string
	CWE           string
	Instances     string
	RenderFailed  string
	SectionFailed string

	// Analysis text export
	ExportTitle     string
	ExportCondition string
	ExportAdvice    string
	ExportNone      string
	ExportShown     string

	risks map[finding.RiskLevel]string
}

// RiskName returns the display name of a risk level.
func (l Labels) RiskName(level finding.RiskLevel) string {
	if s, ok := l.risks[level]; ok {
		return s
	}
	return level.String()
}

// Title formats the cover title for a company.
func (l Labels) Title(company string) string {
	return fmt.Sprintf(l.TitleFormat, company)
}

// English returns the English wording.
func English() Labels {
	return Labels{
		Tag:         language.English,
		TitleFormat: "%s - Vulnerability Scan Report",
		Tool:        "Scanner",
		Generated:   "Generated",
		Target:      "Target",
		ReportID:    "Report ID",
		Author:      "Prepared by",

		InfraTitle:     "Infrastructure Summary",
		HostsHeading:   "Hosts",
		PortsHeading:   "Open Ports and CVEs",
		Host:           "Host",
		Address:        "Address",
		OS:             "Operating System",
		OpenPorts:      "Open Ports",
		Port:           "Port",
		Service:        "Service",
		Product:        "Product / Version",
		CVEs:           "Significant CVEs",
		NoCVEs:         "-",
		InfraIntroForm: "The network scan found %d live host(s) with %d open port(s) and %d significant CVE(s).",

		SummaryTitle:     "1. Scan Result Summary",
		SummaryIntroForm: "This scan found %d potential vulnerabilities. Distribution by risk:",
		RiskLevel:        "Risk Level",
		Count:            "Count",
		HighRiskForm:     "Warning: %d high risk vulnerabilities require immediate remediation.",
		ChartUnavailable: "(chart could not be loaded)",
		NoAlerts:         "No alerts were reported.",

		ExecutiveTitle: "AI Executive Summary",

		DetailsTitle:  "2. Vulnerability Details",
		OriginalName:  "Original Name",
		Risk:          "Risk",
		Confidence:    "Confidence",
		Description:   "Description",
		AIAnalysis:    "Analysis (AI)",
		AIRemediation: "Remediation (AI)",
		Remediation:   "Remediation",
		Source:        "Source",
		SourceAI:      "Generative AI recommendation",
		SourceScanner: "Scanner recommendation",
		References:    "References",
		CWE:           "CWE",
		Instances:     "Instances",
		RenderFailed:  "(this finding could not be rendered)",
		SectionFailed: "(this section could not be rendered)",

		ExportTitle:     "Critical Findings (High/Medium Only)",
		ExportCondition: "Condition",
		ExportAdvice:    "Advice",
		ExportNone:      "No high or medium risk findings.",
		ExportShown:     "High/Medium findings shown",

		risks: map[finding.RiskLevel]string{
			finding.RiskHigh:          "High",
			finding.RiskMedium:        "Medium",
			finding.RiskLow:           "Low",
			finding.RiskInformational: "Informational",
		},
	}
}

// TraditionalChinese returns the zh-Hant wording.
func TraditionalChinese() Labels {
	return Labels{
		Tag:         language.TraditionalChinese,
		TitleFormat: "%s - 弱點掃描報告",
		Tool:        "掃描工具",
		Generated:   "產生日期",
		Target:      "掃描目標",
		ReportID:    "報告編號",
		Author:      "製作單位",

		InfraTitle:     "基礎設施摘要",
		HostsHeading:   "主機清單",
		PortsHeading:   "開放埠與 CVE",
		Host:           "主機",
		Address:        "位址",
		OS:             "作業系統",
		OpenPorts:      "開放埠數",
		Port:           "埠",
		Service:        "服務",
		Product:        "產品 / 版本",
		CVEs:           "重大 CVE",
		NoCVEs:         "-",
		InfraIntroForm: "網路掃描共發現 %d 台存活主機、%d 個開放埠以及 %d 個重大 CVE。",

		SummaryTitle:     "1. 掃描結果摘要",
		SummaryIntroForm: "本次掃描共發現 %d 個潛在弱點。風險分佈如下：",
		RiskLevel:        "風險等級",
		Count:            "數量 (Count)",
		HighRiskForm:     "注意：系統存在 %d 個高風險弱點，建議立即進行修復！",
		ChartUnavailable: "(圖表載入失敗)",
		NoAlerts:         "未回報任何弱點。",

		ExecutiveTitle: "生成式 AI 總結",

		DetailsTitle:  "2. 弱點詳情分析",
		OriginalName:  "弱點原名",
		Risk:          "風險等級",
		Confidence:    "可信度",
		Description:   "弱點描述",
		AIAnalysis:    "弱點分析 (AI)",
		AIRemediation: "修復建議 (AI)",
		Remediation:   "修復建議",
		Source:        "建議來源",
		SourceAI:      "生成式 AI 建議",
		SourceScanner: "ZAP 標準建議",
		References:    "參考資料",
		CWE:           "CWE",
		Instances:     "發生次數",
		RenderFailed:  "(此弱點無法呈現)",
		SectionFailed: "(此章節無法呈現)",

		ExportTitle:     "重大弱點 (僅高/中風險)",
		ExportCondition: "狀況",
		ExportAdvice:    "建議",
		ExportNone:      "未發現高或中風險弱點。",
		ExportShown:     "僅列出高/中風險弱點",

		risks: map[finding.RiskLevel]string{
			finding.RiskHigh:          "高風險 (High)",
			finding.RiskMedium:        "中風險 (Medium)",
			finding.RiskLow:           "低風險 (Low)",
			finding.RiskInformational: "資訊 (Info)",
		},
	}
}

// supported lists catalog languages; the first entry is the fallback.
var supported = []language.Tag{
	language.English,
	language.TraditionalChinese,
}

var matcher = language.NewMatcher(supported)

// Match returns the supported language closest to tag.
func Match(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// Parse resolves a BCP 47 string such as "zh-TW" to a supported
// language. Unparsable input resolves to English.
func Parse(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return Match(tag)
}

// LabelsFor returns the wording for the supported language closest to tag.
func LabelsFor(tag language.Tag) Labels {
	if Match(tag) == language.TraditionalChinese {
		return TraditionalChinese()
	}
	return English()
}
