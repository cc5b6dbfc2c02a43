package markdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/waftester/scanreport/pkg/finding"
)

// Emitter receives document primitives in order.
type Emitter interface {
	Heading(level HeadingLevel, text string)
	Paragraph(runs []Run)
	IndentedParagraph(runs []Run)
	CodeLine(text string)

	// Table draws a grid with the header row bolded. An error means the
	// target cannot draw this table; rows are then emitted as paragraphs.
	Table(t Table) error
}

// ListEmitter is implemented by targets with native list styles. number is
// the 1-based position within the current ordered run and zero for bullets.
// An error makes the renderer fall back to an indented paragraph.
type ListEmitter interface {
	ListItem(ordered bool, number int, runs []Run) error
}

// bulletPrefix marks fallback bullet items.
const bulletPrefix = "• "

// Render emits blocks to e in input order. Ordered list numbering restarts
// after any block that is not an ordered item. Fallbacks never stop
// rendering; the returned error, if any, joins one finding.ErrRender per
// fallback taken.
func Render(blocks []Block, e Emitter) error {
	var (
		errs   []error
		number int
	)
	lists, hasLists := e.(ListEmitter)

	for _, b := range blocks {
		item, isItem := b.(ListItem)
		if isItem && item.Ordered {
			number++
		} else {
			number = 0
		}

		switch v := b.(type) {
		case Heading:
			e.Heading(v.Level, PlainText(ParseInline(v.Text)))
		case Paragraph:
			e.Paragraph(v.Runs)
		case CodeLine:
			e.CodeLine(v.Text)
		case ListItem:
			n := 0
			if v.Ordered {
				n = number
			}
			if hasLists {
				err := lists.ListItem(v.Ordered, n, v.Runs)
				if err == nil {
					continue
				}
				errs = append(errs, fmt.Errorf("%w: list item: %w", finding.ErrRender, err))
			}
			e.IndentedParagraph(withPrefix(v.Ordered, n, v.Runs))
		case Table:
			if err := e.Table(v); err != nil {
				errs = append(errs, fmt.Errorf("%w: table: %w", finding.ErrRender, err))
				tableFallback(e, v)
			}
		}
	}
	return errors.Join(errs...)
}

// RenderText parses text and renders it to e.
func RenderText(text string, e Emitter) error {
	return Render(Parse(text), e)
}

func withPrefix(ordered bool, number int, runs []Run) []Run {
	prefix := bulletPrefix
	if ordered {
		prefix = strconv.Itoa(number) + ". "
	}
	out := make([]Run, 0, len(runs)+1)
	if len(runs) > 0 && runs[0].Kind == RunPlain {
		out = append(out, Plain(prefix+runs[0].Text))
		return append(out, runs[1:]...)
	}
	out = append(out, Plain(prefix))
	return append(out, runs...)
}

// tableFallback writes each row as a paragraph of " | " separated cells,
// header first and bold.
func tableFallback(e Emitter, t Table) {
	if t.HasHeader() {
		e.Paragraph([]Run{Bold(strings.Join(t.Header, " | "))})
	}
	for _, row := range t.Rows {
		e.Paragraph(ParseInline(strings.Join(row, " | ")))
	}
}
