package markdown

import "strings"

// ParseInline splits s into plain, bold and code runs. A span is
// recognized only when its closing marker is present; unmatched markers are
// kept as literal text. Adjacent plain text is merged into one run, and
// empty spans such as "****" produce no run.
func ParseInline(s string) []Run {
	var (
		runs  []Run
		plain strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, Plain(plain.String()))
			plain.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "**"):
			if end := strings.Index(s[i+2:], "**"); end >= 0 {
				if end > 0 {
					flush()
					runs = append(runs, Bold(s[i+2:i+2+end]))
				}
				i += 2 + end + 2
				continue
			}
		case s[i] == '`':
			if end := strings.IndexByte(s[i+1:], '`'); end >= 0 {
				if end > 0 {
					flush()
					runs = append(runs, Code(s[i+1:i+1+end]))
				}
				i += 1 + end + 1
				continue
			}
		}
		plain.WriteByte(s[i])
		i++
	}
	flush()
	return runs
}

// PlainText concatenates run text, dropping styling.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
