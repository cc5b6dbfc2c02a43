package markdown

import (
	"regexp"
	"strings"
)

type parseState int

const (
	stateDefault parseState = iota
	stateInCode
	stateInTable
)

var (
	// fencePattern matches a fence marker with an optional info word.
	fencePattern = regexp.MustCompile("^```\\s*[\\w+#.-]*\\s*$")

	orderedPattern = regexp.MustCompile(`^\d+\.\s+`)
)

// parser holds the state machine for one Parse call.
type parser struct {
	state  parseState
	blocks []Block
	rows   []string
}

// Parse converts text into blocks in a single pass over its lines.
// An unterminated fence turns every remaining line into a CodeLine.
func Parse(text string) []Block {
	p := &parser{}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		p.line(line)
	}
	p.flushTable()
	return p.blocks
}

func (p *parser) line(raw string) {
	trimmed := strings.TrimSpace(raw)

	if p.state == stateInCode {
		if fencePattern.MatchString(trimmed) {
			p.state = stateDefault
			return
		}
		p.emit(CodeLine{Text: raw})
		return
	}

	if fencePattern.MatchString(trimmed) {
		p.flushTable()
		p.state = stateInCode
		return
	}

	if isTableRow(trimmed) {
		p.state = stateInTable
		p.rows = append(p.rows, trimmed)
		return
	}
	p.flushTable()

	switch {
	case strings.HasPrefix(trimmed, "## "):
		p.emit(Heading{Level: HeadingSection, Text: strings.TrimSpace(trimmed[3:])})
	case strings.HasPrefix(trimmed, "### "):
		p.emit(Heading{Level: HeadingSubsection, Text: strings.TrimSpace(trimmed[4:])})
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		p.emit(ListItem{Runs: ParseInline(strings.TrimSpace(trimmed[2:]))})
	case orderedPattern.MatchString(trimmed):
		p.emit(ListItem{Ordered: true, Runs: ParseInline(orderedPattern.ReplaceAllString(trimmed, ""))})
	case trimmed == "":
		// blank lines only separate blocks
	default:
		p.emit(Paragraph{Runs: ParseInline(trimmed)})
	}
}

func (p *parser) emit(b Block) {
	p.blocks = append(p.blocks, b)
}

func isTableRow(trimmed string) bool {
	return len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// flushTable turns buffered rows into a Table. The second row is a header
// separator when every cell holds only '-', ':' and spaces.
func (p *parser) flushTable() {
	if p.state == stateInTable {
		p.state = stateDefault
	}
	if len(p.rows) == 0 {
		return
	}

	cells := make([][]string, len(p.rows))
	for i, row := range p.rows {
		cells[i] = splitRow(row)
	}
	p.rows = p.rows[:0]

	t := Table{}
	body := cells
	if len(cells) > 1 && isSeparator(cells[1]) {
		t.Header = cells[0]
		body = cells[2:]
	}
	t.Rows = body
	if t.Header != nil {
		t.MaxCols = len(t.Header)
	}
	for _, r := range body {
		t.MaxCols = max(t.MaxCols, len(r))
	}
	p.emit(t)
}

func splitRow(row string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(row, "|"), "|")
	parts := strings.Split(inner, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isSeparator(row []string) bool {
	for _, c := range row {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}
