package food

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var alternatePattern = regexp.MustCompile(`\(([^)]+)\)`)

// Entry is the matcher's view of a catalog item: its position and the
// case-folded name and parenthesised alternates.
type Entry struct {
	Index      int
	Name       string
	Alternates []string
}

func newEntry(index int, name string) Entry {
	folded := fold(name)
	e := Entry{Index: index, Name: folded}
	if m := alternatePattern.FindStringSubmatch(folded); m != nil {
		for _, alt := range strings.Split(m[1], "/") {
			if alt = strings.TrimSpace(alt); alt != "" {
				e.Alternates = append(e.Alternates, alt)
			}
		}
	}
	return e
}

// MatchesAlternate reports whether term overlaps a parenthesised alternate name.
func (e Entry) MatchesAlternate(term string) bool {
	for _, alt := range e.Alternates {
		if strings.Contains(alt, term) || strings.Contains(term, alt) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// MatchStrategy finds the first catalog entry accepted for a folded query and
// returns its Index. Name labels the stage in logs and lookup results.
type MatchStrategy interface {
	Name() string
	Match(query string, entries []Entry) (int, bool)
}

// ExactMatch accepts an entry whose name equals the query ignoring case.
type ExactMatch struct{}

func (ExactMatch) Name() string { return "exact" }

func (ExactMatch) Match(query string, entries []Entry) (int, bool) {
	for _, e := range entries {
		if e.Name == query {
			return e.Index, true
		}
	}
	return 0, false
}

// PartialMatch accepts substring overlap in either direction, or overlap with an alternate name.
type PartialMatch struct{}

func (PartialMatch) Name() string { return "partial" }

func (PartialMatch) Match(query string, entries []Entry) (int, bool) {
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if strings.Contains(e.Name, query) || strings.Contains(query, e.Name) || e.MatchesAlternate(query) {
			return e.Index, true
		}
	}
	return 0, false
}

// WordMatch accepts the first entry containing any query word longer than two characters.
type WordMatch struct{}

func (WordMatch) Name() string { return "word" }

func (WordMatch) Match(query string, entries []Entry) (int, bool) {
	var words []string
	for _, w := range strings.Fields(query) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return 0, false
	}
	for _, e := range entries {
		for _, w := range words {
			if strings.Contains(e.Name, w) {
				return e.Index, true
			}
		}
	}
	return 0, false
}

// DefaultStrategies is the lookup order used by NewResolver.
func DefaultStrategies() []MatchStrategy {
	return []MatchStrategy{ExactMatch{}, PartialMatch{}, WordMatch{}}
}
