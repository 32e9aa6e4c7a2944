// Package citekey defines the author-year key model shared by the citation
// and reference extractors: the (surname, year) pair, surname normalization,
// noise-word filtering, and year-suffix handling.
package citekey

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Key identifies one cited work by lead-author surname and publication year.
// Year is four digits optionally followed by one lowercase disambiguation
// letter ("1912a"). Surname is stored with a capitalized first letter
// regardless of input casing.
type Key struct {
	Surname string
	Year    string
}

// String renders the key in the report form "Surname (Year)".
func (k Key) String() string {
	return fmt.Sprintf("%s (%s)", k.Surname, k.Year)
}

// BaseYear returns the year with any disambiguation suffix stripped.
func (k Key) BaseYear() string {
	return StripYearSuffix(k.Year)
}

var yearSuffix = regexp.MustCompile(`[a-z]$`)

// StripYearSuffix removes a single trailing lowercase letter:
// "1912a" -> "1912". Idempotent on years without a suffix.
func StripYearSuffix(year string) string {
	return yearSuffix.ReplaceAllString(year, "")
}

// NormalizeSurname capitalizes the first letter and leaves the rest
// unchanged, so "stiles" and "Stiles" produce the same key.
func NormalizeSurname(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	if len(r) == 1 {
		return strings.ToUpper(s)
	}
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}

// Hedge phrases that precede an author inside a citation:
// "(e.g., Smith, 2009)", "(see Jones, 2011)".
var hedgePrefix = regexp.MustCompile(`(?i)^(e\.g\.,?\s*|see\s+|cf\.\s*|for\s+review,?\s*see\s*|also\s+|as cited in\s+|as well as\s+)`)

// Trailing possessive marker, straight or curly.
var possessiveSuffix = regexp.MustCompile(`['’]s$`)

// CleanAuthor strips leading hedge phrases, trailing commas, and a trailing
// possessive marker from an author string.
func CleanAuthor(author string) string {
	s := strings.TrimSpace(author)
	s = strings.TrimSpace(hedgePrefix.ReplaceAllString(s, ""))
	s = strings.TrimSpace(strings.TrimRight(s, ","))
	s = possessiveSuffix.ReplaceAllString(s, "")
	return s
}

// Particles kept attached to the surname: "Bessel van der Kolk" ->
// "der Kolk", not "Kolk".
var surnameParticles = map[string]bool{
	"van": true, "de": true, "den": true, "der": true, "von": true,
	"di": true, "la": true, "le": true, "el": true, "al": true,
}

// FirstSurname extracts the lead author's surname from a multi-author
// string. "et al.", "&"/"and" conjunctions, and trailing commas are split
// off first. When two or more capitalized tokens remain, the last one is
// the surname (skipping a leading first name: "Otto Kernberg" -> "Kernberg")
// unless the preceding token is a particle, which is retained.
// The result always has a capitalized first letter.
func FirstSurname(author string) string {
	s := author
	if i := strings.Index(s, " et al"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, " & "); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, " and "); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "."))

	parts := strings.Fields(s)
	if len(parts) == 0 {
		return NormalizeSurname(s)
	}

	var capitalized []string
	for _, p := range parts {
		r := []rune(p)
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			capitalized = append(capitalized, p)
		}
	}
	if len(capitalized) >= 2 {
		last := capitalized[len(capitalized)-1]
		for i, p := range parts {
			if p == last && i > 0 {
				if surnameParticles[strings.ToLower(parts[i-1])] {
					return parts[i-1] + " " + last
				}
				break
			}
		}
		return NormalizeSurname(last)
	}
	return NormalizeSurname(parts[0])
}
