// Package strutil provides shared string utilities for the report engine.
package strutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Truncate shortens s to at most maxLen runes for log fields and headings.
// The "..." suffix counts against maxLen.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runeCount := utf8.RuneCountInString(s)
	if runeCount <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// Cap keeps the first limit runes of s and appends marker when anything was
// cut. The marker is not counted against limit. A limit <= 0 disables capping.
func Cap(s string, limit int, marker string) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + marker
}

// blockTags end a line of text when stripped.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true,
	"ul": true, "ol": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "pre": true, "table": true,
}

// StripHTML removes markup from scanner-supplied HTML, unescapes entities,
// and turns block-level elements into line breaks. Lines are trimmed and
// runs of blank lines collapse to a single blank line.
func StripHTML(raw string) string {
	if raw == "" {
		return ""
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return normalizeLines(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch {
			case string(name) == "br":
				sb.WriteByte('\n')
			case blockTags[string(name)]:
				if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
					sb.WriteByte('\n')
				}
			}
		}
	}
}

// normalizeLines trims every line and collapses consecutive blank lines.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
