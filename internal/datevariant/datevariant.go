// Package datevariant expands one recognized date string into the literal
// substrings a filename might plausibly contain.
package datevariant

import (
	"strings"

	"pontolink/internal/textnorm"
)

func isSeparator(r rune) bool {
	return r == '/' || r == '-' || r == '.'
}

// variantSeparators are the joiners filenames use between date components.
var variantSeparators = []string{"-", "_", ".", " "}

// Expand returns the literal variants of a raw matched date string: the
// 8-digit concatenation in both day-first and year-first order, plus the
// separated variants in both orders. The layout heuristic is digit-count
// based: a 4-digit leading component means year-first, anything else is read
// day-first. Calendar plausibility is not validated, so ambiguous numeric
// dates (03/04/2020) keep whatever the source convention was; downstream
// file-naming conventions rely on the same guess.
//
// A raw string that does not split into exactly three numeric parts is
// returned unchanged as the sole variant.
func Expand(raw string) []string {
	parts := strings.FieldsFunc(raw, isSeparator)
	if len(parts) != 3 || !allDigits(parts) {
		return []string{raw}
	}

	var day, month, year string
	if len(parts[0]) == 4 {
		year, month, day = parts[0], parts[1], parts[2]
	} else {
		day, month, year = parts[0], parts[1], parts[2]
	}
	day = pad2(day)
	month = pad2(month)

	variants := make([]string, 0, 2+2*len(variantSeparators))
	variants = append(variants, day+month+year, year+month+day)
	for _, sep := range variantSeparators {
		variants = append(variants,
			day+sep+month+sep+year,
			year+sep+month+sep+day,
		)
	}
	return variants
}

// DigitSignals returns the digit-only forms of every variant for every date,
// keeping only those long enough (six digits or more) to be an unambiguous
// identity signal inside a filename. The result is deduplicated, order
// preserved.
func DigitSignals(dates []string) []string {
	seen := make(map[string]struct{})
	var signals []string
	for _, date := range dates {
		for _, variant := range Expand(date) {
			digits := textnorm.DigitsOnly(variant)
			if len(digits) < 6 {
				continue
			}
			if _, dup := seen[digits]; dup {
				continue
			}
			seen[digits] = struct{}{}
			signals = append(signals, digits)
		}
	}
	return signals
}

func allDigits(parts []string) bool {
	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

func pad2(value string) string {
	if len(value) == 1 {
		return "0" + value
	}
	return value
}
