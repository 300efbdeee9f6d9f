// Package match maps noisy status labels onto a fixed controlled
// vocabulary using weighted-ratio string similarity.
package match

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the minimum weighted-ratio score (0-100 scale) for a
// vocabulary label to overwrite the raw value.
const DefaultThreshold = 80

// Matcher resolves free-text values against an ordered vocabulary. Matching
// is pure per value, so one Matcher can be shared across rows and requests.
type Matcher struct {
	vocabulary []string
	threshold  int
}

// New creates a Matcher over the given vocabulary. A threshold <= 0 falls
// back to DefaultThreshold. Vocabulary order is significant: score ties
// resolve to the earliest entry, keeping matches deterministic.
func New(vocabulary []string, threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{
		vocabulary: append([]string(nil), vocabulary...),
		threshold:  threshold,
	}
}

// Vocabulary returns a copy of the controlled vocabulary.
func (m *Matcher) Vocabulary() []string {
	return append([]string(nil), m.vocabulary...)
}

// Match returns the canonical label for value, or value itself when no
// vocabulary entry scores at or above the threshold. An empty value is
// returned unchanged. Leaving a low-confidence value untouched is
// deliberate: downstream metrics count it as its own category rather than
// forcing a wrong canonical label.
func (m *Matcher) Match(value string) string {
	best, score := m.BestMatch(value)
	if score >= m.threshold {
		return best
	}
	return value
}

// BestMatch returns the highest-scoring vocabulary entry and its
// weighted-ratio score. Empty input or an empty vocabulary yields ("", 0).
func (m *Matcher) BestMatch(value string) (string, int) {
	if value == "" || len(m.vocabulary) == 0 {
		return "", 0
	}
	best, bestScore := "", -1
	for _, choice := range m.vocabulary {
		if score := fuzzy.WRatio(value, choice); score > bestScore {
			best, bestScore = choice, score
		}
	}
	return best, bestScore
}
