// Package markdown interprets the loose markdown found in AI-authored
// remediation text and renders it into document primitives.
//
// Parse turns text into a flat list of blocks with a single-pass line
// state machine. Render walks those blocks in order and drives an Emitter.
// Only the subset that scanner and AI output actually use is recognized:
// fenced code, pipe tables, two heading levels, bullet and numbered items,
// and inline bold and code spans.
package markdown

// HeadingLevel is the visual weight of a heading.
type HeadingLevel int

const (
	// HeadingSection is produced by "## ".
	HeadingSection HeadingLevel = 2

	// HeadingSubsection is produced by "### ".
	HeadingSubsection HeadingLevel = 3
)

// Block is one node of the parsed document. The concrete types are
// Heading, Paragraph, ListItem, CodeLine and Table.
type Block interface {
	block()
}

// Heading is a section or subsection title.
type Heading struct {
	Level HeadingLevel
	Text  string
}

// Paragraph is a line of running text.
type Paragraph struct {
	Runs []Run
}

// ListItem is a bullet or numbered item. Source numbers are discarded;
// numbering is assigned when rendering.
type ListItem struct {
	Ordered bool
	Runs    []Run
}

// CodeLine is one verbatim line from inside a fenced block.
type CodeLine struct {
	Text string
}

// Table is a pipe table. Header is nil when no separator row followed the
// first row. Rows may be ragged; MaxCols is the widest row, header included.
type Table struct {
	Header  []string
	Rows    [][]string
	MaxCols int
}

// HasHeader reports whether the table has a header row.
func (t Table) HasHeader() bool {
	return t.Header != nil
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (ListItem) block()  {}
func (CodeLine) block()  {}
func (Table) block()     {}

// RunKind is the style of an inline run.
type RunKind int

const (
	// RunPlain is unstyled text.
	RunPlain RunKind = iota

	// RunBold is text wrapped in **.
	RunBold

	// RunCode is text wrapped in backticks.
	RunCode
)

// String returns the kind name.
func (k RunKind) String() string {
	switch k {
	case RunBold:
		return "bold"
	case RunCode:
		return "code"
	default:
		return "plain"
	}
}

// Run is a span of inline text with a single style.
type Run struct {
	Kind RunKind
	Text string
}

// Plain returns a plain run.
func Plain(s string) Run { return Run{Kind: RunPlain, Text: s} }

// Bold returns a bold run.
func Bold(s string) Run { return Run{Kind: RunBold, Text: s} }

// Code returns a code run.
func Code(s string) Run { return Run{Kind: RunCode, Text: s} }
