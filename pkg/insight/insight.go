// Package insight ingests AI-authored remediation payloads and correlates
// their entries with scanner alert names.
//
// A payload carries an executive summary and a set of solutions keyed by
// vulnerability name. Solutions arrive as a mapping, a list of single-entry
// mappings, or a JSON string encoding either; ParseInsight normalizes all
// three into one ordered Solutions value.
package insight

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/pkg/jsonutil"
)

// Insight is a validated AI insight payload.
type Insight struct {
	ExecutiveSummary string    `json:"executive_summary"`
	Solutions        Solutions `json:"-"`
}

// Solution is one name to remediation entry.
type Solution struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Solutions is an ordered name to remediation mapping. Entries keep the
// position of their first occurrence; a repeated name replaces the text.
type Solutions struct {
	entries []Solution
	index   map[string]int
}

// NewSolutions builds a Solutions value from entries in order.
func NewSolutions(entries ...Solution) Solutions {
	var s Solutions
	for _, e := range entries {
		s.set(e.Name, e.Text)
	}
	return s
}

func (s *Solutions) set(name, text string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.entries[i].Text = text
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Solution{Name: name, Text: text})
}

// Len returns the number of distinct names.
func (s Solutions) Len() int {
	return len(s.entries)
}

// Get returns the text stored under the exact name.
func (s Solutions) Get(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.entries[i].Text, true
}

// Entries returns a copy of the entries in document order.
func (s Solutions) Entries() []Solution {
	out := make([]Solution, len(s.entries))
	copy(out, s.entries)
	return out
}

// ParseInsight validates and normalizes an AI insight payload. The summary
// is read from executiveSummary, or executive_summary when the former is
// absent. Any payload that is not a JSON object of the expected shape
// yields an error wrapping finding.ErrValidation.
func ParseInsight(raw []byte) (*Insight, error) {
	members, err := jsonutil.Members(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", finding.ErrValidation, err)
	}

	var (
		ins                  Insight
		camel, snake         string
		haveCamel, haveSnake bool
	)
	for _, m := range members {
		switch m.Name {
		case "executiveSummary":
			if camel, err = decodeText(m.Value); err != nil {
				return nil, fmt.Errorf("%w: executiveSummary: %w", finding.ErrValidation, err)
			}
			haveCamel = true
		case "executive_summary":
			if snake, err = decodeText(m.Value); err != nil {
				return nil, fmt.Errorf("%w: executive_summary: %w", finding.ErrValidation, err)
			}
			haveSnake = true
		case "solutions":
			if ins.Solutions, err = decodeSolutions(m.Value); err != nil {
				return nil, fmt.Errorf("%w: solutions: %w", finding.ErrValidation, err)
			}
		}
	}

	switch {
	case haveCamel:
		ins.ExecutiveSummary = camel
	case haveSnake:
		ins.ExecutiveSummary = snake
	}
	return &ins, nil
}

// decodeText accepts a string or null.
func decodeText(v jsontext.Value) (string, error) {
	switch v.Kind() {
	case 'n':
		return "", nil
	case '"':
		var s string
		if err := jsonutil.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	default:
		return "", fmt.Errorf("expected string, got %v", v.Kind())
	}
}

// decodeSolutions normalizes the three accepted solution encodings. A JSON
// string must itself hold an object or a list.
func decodeSolutions(v jsontext.Value) (Solutions, error) {
	var out Solutions
	switch v.Kind() {
	case 'n':
		return out, nil
	case '{':
		if err := addMembers(&out, v); err != nil {
			return Solutions{}, err
		}
		return out, nil
	case '[':
		var items []jsontext.Value
		if err := jsonutil.Unmarshal(v, &items); err != nil {
			return Solutions{}, err
		}
		for i, item := range items {
			if item.Kind() != '{' {
				return Solutions{}, fmt.Errorf("entry %d: expected object, got %v", i, item.Kind())
			}
			if err := addMembers(&out, item); err != nil {
				return Solutions{}, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return out, nil
	case '"':
		var s string
		if err := jsonutil.Unmarshal(v, &s); err != nil {
			return Solutions{}, err
		}
		if strings.TrimSpace(s) == "" {
			return out, nil
		}
		inner := jsontext.Value(s)
		if k := inner.Kind(); k != '{' && k != '[' {
			return Solutions{}, fmt.Errorf("string must encode an object or list")
		}
		return decodeSolutions(inner)
	default:
		return Solutions{}, fmt.Errorf("expected object, list or string, got %v", v.Kind())
	}
}

func addMembers(out *Solutions, obj jsontext.Value) error {
	members, err := jsonutil.Members(obj)
	if err != nil {
		return err
	}
	for _, m := range members {
		text, err := decodeText(m.Value)
		if err != nil {
			return fmt.Errorf("%q: %w", m.Name, err)
		}
		out.set(m.Name, text)
	}
	return nil
}
