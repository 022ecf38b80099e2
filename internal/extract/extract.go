// Package extract pulls searchable metadata out of raw spreadsheet cell text:
// quoted document titles and date-like substrings. Unquoted free text is too
// noisy to search reliably, so only quoted phrases become queries; dates alone
// never trigger a search.
package extract

import (
	"regexp"
	"strings"
)

// quotedPattern matches a maximal substring enclosed in straight or curly
// double quotes. Opening and closing marks are interchangeable so mixed
// “smart” quoting pasted from email clients still extracts.
var quotedPattern = regexp.MustCompile(`["\x{201C}\x{201D}]([^"\x{201C}\x{201D}]*)["\x{201C}\x{201D}]`)

// datePattern accepts day-first and year-first numeric dates with slash, dash,
// or dot separators. Calendar plausibility is deliberately not checked here.
var datePattern = regexp.MustCompile(`\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2}|\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4}`)

// Reference is one row's parsed content. Both lists preserve appearance order;
// dates keep duplicates. A Reference is produced once from immutable input
// text and never mutated afterward.
type Reference struct {
	Queries []string `json:"queries"`
	Dates   []string `json:"dates"`
}

// HasQueries reports whether the reference is searchable.
func (r Reference) HasQueries() bool {
	return len(r.Queries) > 0
}

// FromCell extracts queries and dates from one cell's raw text. Empty or
// whitespace-only input yields an empty reference.
func FromCell(text string) Reference {
	var ref Reference
	if strings.TrimSpace(text) == "" {
		return ref
	}
	for _, group := range quotedPattern.FindAllStringSubmatch(text, -1) {
		query := strings.TrimSpace(group[1])
		if query == "" {
			continue
		}
		ref.Queries = append(ref.Queries, query)
	}
	ref.Dates = datePattern.FindAllString(text, -1)
	return ref
}
