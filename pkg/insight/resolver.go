package insight

import (
	"strings"

	"golang.org/x/text/cases"
)

// Localizer maps a canonical vulnerability name to its localized title.
type Localizer interface {
	Title(name string) string
}

// MatchRule identifies which resolution rule produced a match.
type MatchRule int

const (
	// MatchNone means no solution entry matched.
	MatchNone MatchRule = iota

	// MatchExact means the canonical name matched a key exactly.
	MatchExact

	// MatchLocalized means the localized title matched a key exactly.
	MatchLocalized

	// MatchFolded means the case-folded, whitespace-normalized name matched.
	MatchFolded
)

// String returns a short rule name used in logs and metrics labels.
func (r MatchRule) String() string {
	switch r {
	case MatchExact:
		return "exact"
	case MatchLocalized:
		return "localized"
	case MatchFolded:
		return "folded"
	default:
		return "none"
	}
}

// Match is a resolved solution entry.
type Match struct {
	Key  string
	Text string
	Via  MatchRule
}

// Resolver correlates alert names with AI solution entries. It is
// read-only after construction, so Resolve is deterministic and safe to
// call repeatedly.
type Resolver struct {
	solutions Solutions
	titles    Localizer
	folded    map[string]int
}

// NewResolver indexes solutions for lookup. titles may be nil, which
// disables localized matching.
func NewResolver(solutions Solutions, titles Localizer) *Resolver {
	r := &Resolver{
		solutions: solutions,
		titles:    titles,
		folded:    make(map[string]int, solutions.Len()),
	}
	for i, e := range solutions.entries {
		key := foldKey(e.Name)
		if key == "" {
			continue
		}
		// first key in document order wins
		if _, ok := r.folded[key]; !ok {
			r.folded[key] = i
		}
	}
	return r
}

// Resolve finds the solution for an alert name. Rules are tried in order:
// exact name, exact localized title, then case-folded name with surrounding
// whitespace trimmed and inner runs collapsed.
func (r *Resolver) Resolve(name string) (Match, bool) {
	if r == nil || r.solutions.Len() == 0 {
		return Match{}, false
	}

	if text, ok := r.solutions.Get(name); ok {
		return Match{Key: name, Text: text, Via: MatchExact}, true
	}

	if r.titles != nil {
		if title := r.titles.Title(name); title != "" && title != name {
			if text, ok := r.solutions.Get(title); ok {
				return Match{Key: title, Text: text, Via: MatchLocalized}, true
			}
		}
	}

	if key := foldKey(name); key != "" {
		if i, ok := r.folded[key]; ok {
			e := r.solutions.entries[i]
			return Match{Key: e.Name, Text: e.Text, Via: MatchFolded}, true
		}
	}

	return Match{}, false
}

// foldKey case-folds s and normalizes whitespace. A new Caser is built per
// call because Casers carry state.
func foldKey(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
