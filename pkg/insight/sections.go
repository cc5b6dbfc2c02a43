package insight

import (
	"regexp"
	"strings"
)

// Sections partitions AI remediation text into its named parts.
type Sections struct {
	Explanation string
	Solution    string
	Reference   string
}

// IsEmpty reports whether every section is blank.
func (s Sections) IsEmpty() bool {
	return s.Explanation == "" && s.Solution == "" && s.Reference == ""
}

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionExplanation
	sectionSolution
	sectionReference
)

// headerPattern matches a header line from the bilingual vocabulary,
// optionally wrapped as a markdown heading or bold text.
var headerPattern = regexp.MustCompile(
	`^(?:#+\s*|\*\*)?(弱點說明|修復建議|解決方法|參考資料|(?i:explanation|solution|reference))[:：]?(?:\*\*)?\s*$`)

var headerKinds = map[string]sectionKind{
	"弱點說明":        sectionExplanation,
	"explanation": sectionExplanation,
	"修復建議":        sectionSolution,
	"解決方法":        sectionSolution,
	"solution":    sectionSolution,
	"參考資料":        sectionReference,
	"reference":   sectionReference,
}

// SplitSections detects header lines and assigns the lines under each to
// its section. Text before the first header is explanation. Text with no
// header at all becomes the solution. Lines inside code fences are never
// treated as headers, and repeated headers append to their section.
func SplitSections(text string) Sections {
	var (
		bufs    [4][]string
		current = sectionNone
		seen    bool
		inFence bool
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence {
			if m := headerPattern.FindStringSubmatch(trimmed); m != nil {
				current = headerKinds[strings.ToLower(m[1])]
				seen = true
				continue
			}
		}
		if current == sectionNone {
			if trimmed == "" && len(bufs[sectionExplanation]) == 0 {
				continue
			}
			bufs[sectionExplanation] = append(bufs[sectionExplanation], line)
			continue
		}
		bufs[current] = append(bufs[current], line)
	}

	if !seen {
		return Sections{Solution: strings.TrimSpace(text)}
	}
	return Sections{
		Explanation: strings.TrimSpace(strings.Join(bufs[sectionExplanation], "\n")),
		Solution:    strings.TrimSpace(strings.Join(bufs[sectionSolution], "\n")),
		Reference:   strings.TrimSpace(strings.Join(bufs[sectionReference], "\n")),
	}
}
