// Package scoring computes the composite match score between one extracted
// query and one candidate file name. The base signal is token-overlap
// coverage; date, extension, and exact-sequence boosts stack additively on
// top. Scores are intentionally uncapped: stacked boosts pushing past 1.0 are
// read downstream as a very-high-confidence signal.
package scoring

import (
	"strings"

	"pontolink/internal/textnorm"
)

// Thresholds holds the empirically chosen scoring constants. They were tuned
// against real correspondence archives, not derived; override them from
// configuration rather than re-deriving.
type Thresholds struct {
	// MinScore is the floor below which a candidate is discarded.
	MinScore float64
	// DateBoost is added when a date signal appears in the candidate name.
	// A matching date is a near-certain identity signal for dated
	// correspondence and must dominate weak token overlap.
	DateBoost float64
	// ExtensionBoost is added when query and candidate share a file extension.
	ExtensionBoost float64
	// SequenceBoost is added when the candidate name contains the query as a
	// contiguous alphanumeric sequence.
	SequenceBoost float64
}

// DefaultThresholds returns the tuned constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinScore:       0.55,
		DateBoost:      0.40,
		ExtensionBoost: 0.20,
		SequenceBoost:  0.15,
	}
}

// Query is a pre-tokenized search query, shared across all candidates of a
// classification run so normalization happens once.
type Query struct {
	raw     string
	tokens  []string
	set     map[string]struct{}
	compact string
	ext     string
}

// NewQuery normalizes a raw query string.
func NewQuery(raw string) Query {
	tokens := textnorm.Tokenize(raw)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return Query{
		raw:     raw,
		tokens:  tokens,
		set:     set,
		compact: textnorm.AlphanumericOnly(raw),
		ext:     extension(raw),
	}
}

// Raw returns the original query text.
func (q Query) Raw() string { return q.raw }

// Empty reports whether normalization left no searchable tokens.
func (q Query) Empty() bool { return len(q.tokens) == 0 }

// Score rates one candidate file name against the query and the row's date
// signals. The second return is false when the token intersection is empty,
// meaning the candidate is skipped for this query.
func Score(q Query, dateSignals []string, name string, th Thresholds) (float64, bool) {
	if q.Empty() {
		return 0, false
	}
	nameTokens := textnorm.Tokenize(name)
	if len(nameTokens) == 0 {
		return 0, false
	}

	nameSet := make(map[string]struct{}, len(nameTokens))
	for _, token := range nameTokens {
		nameSet[token] = struct{}{}
	}
	overlap := 0
	for token := range nameSet {
		if _, ok := q.set[token]; ok {
			overlap++
		}
	}
	if overlap == 0 {
		return 0, false
	}

	// Either a short query fully contained in a long filename or a long query
	// mostly reproduced in a short filename should rank well, so take the
	// better of the two coverages.
	fileCoverage := float64(overlap) / float64(len(nameSet))
	queryCoverage := float64(overlap) / float64(len(q.set))
	score := fileCoverage
	if queryCoverage > score {
		score = queryCoverage
	}

	if hasDateSignal(dateSignals, name) {
		score += th.DateBoost
	}
	if q.ext != "" && q.ext == extension(name) {
		score += th.ExtensionBoost
	}
	if q.compact != "" && strings.Contains(textnorm.AlphanumericOnly(name), q.compact) {
		score += th.SequenceBoost
	}
	return score, true
}

func hasDateSignal(signals []string, name string) bool {
	if len(signals) == 0 {
		return false
	}
	nameDigits := textnorm.DigitsOnly(name)
	if nameDigits == "" {
		return false
	}
	for _, signal := range signals {
		if strings.Contains(nameDigits, signal) {
			return true
		}
	}
	return false
}

// extension returns the lowercased trailing-dot suffix when it is long enough
// to be meaningful (more than two characters), otherwise "".
func extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	ext := strings.ToLower(name[idx+1:])
	if len(ext) <= 2 {
		return ""
	}
	return ext
}
