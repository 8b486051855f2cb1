// Package matcher provides fuzzy matching of OCR-extracted place names
// against canonical gazetteer entries using Levenshtein distance.
package matcher

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match pairs a candidate with its edit distance from the query.
type Match struct {
	Candidate string
	Distance  int
}

// Matcher compares free text against candidate names. The OCR correction
// table is fixed at construction and never mutated afterwards, so a single
// Matcher is safe for concurrent use.
type Matcher struct {
	corrections map[string]string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithCorrections replaces the default OCR correction table.
func WithCorrections(table map[string]string) Option {
	return func(m *Matcher) {
		corr := make(map[string]string, len(table))
		for k, v := range table {
			corr[strings.ToUpper(strings.TrimSpace(k))] = v
		}
		m.corrections = corr
	}
}

// New returns a Matcher with the default correction table.
func New(opts ...Option) *Matcher {
	m := &Matcher{corrections: defaultCorrections}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Normalize uppercases s and strips every rune outside A-Z. Applying it
// twice yields the same result.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Distance returns the Levenshtein distance between the normalized forms
// of a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(Normalize(a), Normalize(b))
}

// FindBestMatch returns the candidate with minimal edit distance from query,
// provided the distance is at most maxDistance. Ties on distance resolve to
// the lexicographically smallest candidate. The second return is false when
// nothing matches.
//
// A candidate whose normalized form is empty only matches a query that also
// normalizes to empty, and vice versa; non-Latin text never fuzzy-matches
// Latin text by accident.
func (m *Matcher) FindBestMatch(query string, candidates []string, maxDistance int) (string, bool) {
	best := ""
	bestDist := -1
	nq := Normalize(query)
	for _, c := range candidates {
		nc := Normalize(c)
		if (nq == "") != (nc == "") {
			continue
		}
		d := levenshtein.ComputeDistance(nq, nc)
		if d > maxDistance {
			continue
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

// FindMatches returns every candidate within maxDistance of query, sorted by
// ascending distance. Candidates at equal distance keep their input order.
func (m *Matcher) FindMatches(query string, candidates []string, maxDistance int) []Match {
	var out []Match
	nq := Normalize(query)
	for _, c := range candidates {
		nc := Normalize(c)
		if (nq == "") != (nc == "") {
			continue
		}
		d := levenshtein.ComputeDistance(nq, nc)
		if d <= maxDistance {
			out = append(out, Match{Candidate: c, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// IsSimilar reports whether a and b are within maxDistance edits after
// normalization. A string that normalizes to empty is only similar to
// another empty-normalized string.
func (m *Matcher) IsSimilar(a, b string, maxDistance int) bool {
	na, nb := Normalize(a), Normalize(b)
	if (na == "") != (nb == "") {
		return false
	}
	return levenshtein.ComputeDistance(na, nb) <= maxDistance
}

// Similarity scores a against b in [0, 1]: 1 - distance/max(len). Two
// strings that both normalize to empty are identical (1.0); exactly one
// empty scores 0.0.
func (m *Matcher) Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}
	if maxLen == 0 {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	return 1.0 - float64(levenshtein.ComputeDistance(na, nb))/float64(maxLen)
}
