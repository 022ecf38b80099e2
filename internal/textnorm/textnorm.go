// Package textnorm canonicalizes free text into token sequences shared by
// search queries and candidate file names. Normalization is deterministic:
// the only locale-sensitive step is a fixed accent-folding rule.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFolder decomposes text and drops combining marks, so "Relatório" and
// "Relatorio" normalize identically.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stopWords are connectors and prepositions in the two working languages
// (Portuguese and English) plus email-thread prefixes. Tokens in this set
// carry no matching signal and are dropped.
var stopWords = map[string]struct{}{
	// Portuguese connectors.
	"a": {}, "o": {}, "as": {}, "os": {}, "um": {}, "uma": {},
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"em": {}, "no": {}, "na": {}, "nos": {}, "nas": {},
	"e": {}, "ou": {}, "para": {}, "por": {}, "com": {}, "sem": {},
	// English connectors.
	"an": {}, "the": {}, "of": {}, "and": {}, "or": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {},
	// Email thread prefixes.
	"re": {}, "fw": {}, "fwd": {}, "res": {}, "enc": {},
}

// FoldAccents lowercases the input and strips diacritics.
func FoldAccents(text string) string {
	lowered := strings.ToLower(text)
	folded, _, err := transform.String(accentFolder, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Tokenize converts arbitrary text into an ordered sequence of lowercase
// tokens. Runs of non-alphanumeric characters and underscores act as
// separators; zero-length tokens and stop words are dropped.
func Tokenize(text string) []string {
	folded := FoldAccents(text)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// Non-ASCII letters survive folding (e.g. CJK); keep them.
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	raw := strings.Fields(b.String())
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if _, stop := stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// TokenSet returns the unique tokens of the input.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AlphanumericOnly folds accents and strips everything that is not a letter
// or digit, producing the compact form used for contiguous-substring checks.
func AlphanumericOnly(text string) string {
	folded := FoldAccents(text)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
