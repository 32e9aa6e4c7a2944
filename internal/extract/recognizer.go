// Package extract recognizes author-year citations in body text and
// bibliography entries in reference paragraphs.
//
// Citation forms are open-ended: parenthetical blocks, narrative mentions,
// possessives, brackets, "and colleagues" phrasing, and inconsistent
// casing. Each form gets its own recognizer; a shared accumulator enforces
// that no two recognizers claim overlapping spans in one paragraph.
package extract

import (
	"regexp"
	"strings"

	"github.com/refcheck/refcheck/internal/citekey"
)

// Candidate is one recognized citation occurrence: the byte span it claims
// in the scanned text and the keys it covers.
type Candidate struct {
	Start int
	End   int
	Keys  []citekey.Key
}

// Recognizer finds citation candidates of one syntactic form.
type Recognizer interface {
	Name() string
	FindCandidates(text string, cfg citekey.Config) []Candidate
}

// SpanRecognizers returns the recognizers in the fixed priority order used
// for span work: bracket single, bracket multi, parenthetical, narrative,
// possessive, "and colleagues", lowercase. Earlier recognizers claim spans
// first; later candidates that intersect a claimed span are dropped.
func SpanRecognizers() []Recognizer {
	return []Recognizer{
		bracketSingle{},
		bracketMulti{},
		parenthetical{},
		narrative{},
		possessive{},
		andColleagues{},
		lowercase{},
	}
}

// setRecognizers adds the et-al-complex form, which only contributes keys:
// its spans always coincide with narrative or parenthetical claims.
func setRecognizers() []Recognizer {
	return append(SpanRecognizers(), etAlComplex{})
}

// Accumulator collects accepted spans for one paragraph and rejects
// candidates that intersect any of them.
type Accumulator struct {
	spans []Candidate
}

// Overlaps reports whether [start, end) intersects an accepted span.
// Half-open test: a span is touched when either endpoint falls strictly
// inside it.
func (a *Accumulator) Overlaps(start, end int) bool {
	for _, s := range a.spans {
		if (s.Start <= start && start < s.End) || (s.Start < end && end <= s.End) {
			return true
		}
	}
	return false
}

// Accept records a claimed span.
func (a *Accumulator) Accept(c Candidate) {
	a.spans = append(a.spans, c)
}

// Accepted returns the claimed spans in acceptance order.
func (a *Accumulator) Accepted() []Candidate {
	return a.spans
}

// yearRe matches a four-digit year with an optional disambiguation letter.
var yearRe = regexp.MustCompile(`\d{4}[a-z]?`)

// authorBeforeYear splits a citation segment at the first year, leaving the
// author portion.
var authorBeforeYear = regexp.MustCompile(`,?\s*\d{4}`)

// inheritMode controls what happens to a segment that carries bare years
// and no author of its own.
type inheritMode int

const (
	// noInherit drops bare-year segments.
	noInherit inheritMode = iota
	// carryForward keys bare years to the nearest preceding authored
	// segment in the same block: (Gelso, 2009; 2014) -> both Gelso.
	carryForward
	// fixedFallback keys bare years to a surname established outside the
	// block (possessive subject, "X and colleagues").
	fixedFallback
)

// segmentKeys parses a semicolon-separated citation block into keys.
func segmentKeys(content string, mode inheritMode, fallback string, cfg citekey.Config) []citekey.Key {
	var keys []citekey.Key
	lastAuthor := ""

	for _, part := range strings.Split(content, ";") {
		part = strings.TrimSpace(part)
		years := yearRe.FindAllString(part, -1)
		if len(years) == 0 {
			continue
		}

		authorPart := part
		if loc := authorBeforeYear.FindStringIndex(part); loc != nil {
			authorPart = part[:loc[0]]
		}
		authorPart = citekey.CleanAuthor(strings.TrimSpace(authorPart))

		if len([]rune(authorPart)) > 2 {
			surname := citekey.FirstSurname(authorPart)
			if !cfg.IsNoise(surname) {
				lastAuthor = surname
				for _, y := range years {
					keys = append(keys, citekey.Key{Surname: surname, Year: y})
				}
			}
			continue
		}

		switch mode {
		case carryForward:
			if lastAuthor != "" {
				for _, y := range years {
					keys = append(keys, citekey.Key{Surname: lastAuthor, Year: y})
				}
			}
		case fixedFallback:
			if fallback != "" && !cfg.IsNoise(fallback) {
				for _, y := range years {
					keys = append(keys, citekey.Key{Surname: fallback, Year: y})
				}
			}
		}
	}
	return keys
}
