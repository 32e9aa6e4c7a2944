package extract

import (
	"regexp"
	"strings"

	"github.com/refcheck/refcheck/internal/citekey"
	"github.com/refcheck/refcheck/internal/text"
)

// Citations extracts the union key set from body text. The text is
// normalized with the set-building normalizer first; positions are not
// tracked here (the highlighter recomputes spans on length-preserving
// text).
func Citations(body string, cfg citekey.Config) *citekey.Set {
	normalized := text.NormalizeForSet(body)
	set := citekey.NewSet()

	for _, r := range setRecognizers() {
		for _, c := range r.FindCandidates(normalized, cfg) {
			for _, k := range c.Keys {
				set.Add(k)
			}
		}
	}

	// Lowercase surnames also appear in comma form ("stiles, 2009"),
	// which claims no highlightable span but still contributes a key.
	for _, m := range lowercaseCommaRe.FindAllStringSubmatch(normalized, -1) {
		surname := citekey.NormalizeSurname(m[1])
		if !cfg.IsNoise(surname) {
			set.Add(citekey.Key{Surname: surname, Year: m[2]})
		}
	}

	return set
}

// --- Bracket citation: Author [Year] ---

var bracketSingleRe = regexp.MustCompile(
	`([A-Z][a-z]+(?:-[A-Z][a-z]+)?(?:,?\s*&?\s*[A-Z][a-z]+(?:-[A-Z][a-z]+)?)*(?:\s+et\s+al\.?)?)\s*\[(\d{4}[a-z]?)\]`)

type bracketSingle struct{}

func (bracketSingle) Name() string { return "bracket" }

func (bracketSingle) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range bracketSingleRe.FindAllStringSubmatchIndex(s, -1) {
		author := strings.TrimSpace(s[m[2]:m[3]])
		year := s[m[4]:m[5]]
		surname := citekey.FirstSurname(citekey.CleanAuthor(author))
		if cfg.IsNoise(surname) {
			continue
		}
		out = append(out, Candidate{
			Start: m[0],
			End:   m[1],
			Keys:  []citekey.Key{{Surname: surname, Year: year}},
		})
	}
	return out
}

// --- Multi-citation bracket block: [Author, Year; Author2, Year2] ---

var bracketMultiRe = regexp.MustCompile(`\[([^\]]*\d{4}[^\]]*;[^\]]*)\]`)

type bracketMulti struct{}

func (bracketMulti) Name() string { return "bracket-multi" }

func (bracketMulti) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range bracketMultiRe.FindAllStringSubmatchIndex(s, -1) {
		keys := segmentKeys(s[m[2]:m[3]], noInherit, "", cfg)
		if len(keys) == 0 {
			continue
		}
		out = append(out, Candidate{Start: m[0], End: m[1], Keys: keys})
	}
	return out
}

// --- Parenthetical: (Author, Year; Author2, Year2) with inheritance ---

var parentheticalRe = regexp.MustCompile(`\(([^)]*\d{4}[a-z]?[^)]*)\)`)

type parenthetical struct{}

func (parenthetical) Name() string { return "parenthetical" }

func (parenthetical) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range parentheticalRe.FindAllStringSubmatchIndex(s, -1) {
		keys := segmentKeys(s[m[2]:m[3]], carryForward, "", cfg)
		if len(keys) == 0 {
			continue
		}
		out = append(out, Candidate{Start: m[0], End: m[1], Keys: keys})
	}
	return out
}

// --- Narrative: Author (Year), Author et al. (Year), A & B (Year) ---
//
// An optional leading first name is discarded; a hedge word may precede
// the year: "Bion (e.g., 1962)". Multiple comma-separated years allowed.

var narrativeRe = regexp.MustCompile(
	`(?:([A-Z][a-z]+(?:-[A-Z][a-z]+)?)\s+)?` +
		`([A-Z][a-z]+(?:-[A-Z][a-z]+)?(?:\s+(?:&|and)\s+[A-Z][a-z]+(?:-[A-Z][a-z]+)?)?(?:\s+et\s+al\.?)?)` +
		`\s*\((?:e\.g\.,?\s*|see\s+|cf\.?\s*)?(\d{4}[a-z]?(?:,\s*\d{4}[a-z]?)*)\)`)

type narrative struct{}

func (narrative) Name() string { return "narrative" }

func (narrative) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range narrativeRe.FindAllStringSubmatchIndex(s, -1) {
		author := strings.TrimSpace(s[m[4]:m[5]])
		surname := citekey.FirstSurname(author)
		if cfg.IsNoise(surname) {
			continue
		}
		var keys []citekey.Key
		for _, y := range yearRe.FindAllString(s[m[6]:m[7]], -1) {
			keys = append(keys, citekey.Key{Surname: surname, Year: y})
		}
		out = append(out, Candidate{Start: m[0], End: m[1], Keys: keys})
	}
	return out
}

// --- Possessive: Author's ... (Year) ---
//
// The gap between the possessive and the opening parenthesis is bounded
// and must not cross another Name's boundary, so in
// "Ferenczi's ideas influenced Sullivan's (1953)" the citation belongs to
// Sullivan. RE2 has no lookahead, so the boundary rule runs as an explicit
// gap check after matching the possessive head.

const possessiveGapLimit = 80

var (
	possessiveHeadRe = regexp.MustCompile(`(?:([A-Z][a-z]+)\s+)?([A-Z][a-z]+)'s\s+`)
	possessiveGapRe  = regexp.MustCompile(`[A-Z][a-z]+(?:-[A-Z][a-z]+)?'s`)
	parenContentRe   = regexp.MustCompile(`^\(([^)]*)\)`)
	anyYearRe        = regexp.MustCompile(`\d{4}`)
)

type possessive struct{}

func (possessive) Name() string { return "possessive" }

func (possessive) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range possessiveHeadRe.FindAllStringSubmatchIndex(s, -1) {
		surname := s[m[4]:m[5]]
		gapStart := m[1]

		// Find the opening parenthesis within the bounded gap.
		parenStart := -1
		limit := gapStart + possessiveGapLimit
		if limit > len(s) {
			limit = len(s)
		}
		for i := gapStart; i < limit; i++ {
			if s[i] == '(' {
				parenStart = i
				break
			}
		}
		if parenStart < 0 {
			continue
		}

		// Another possessive in the gap owns this parenthetical.
		if possessiveGapRe.MatchString(s[gapStart:parenStart]) {
			continue
		}

		pm := parenContentRe.FindStringSubmatchIndex(s[parenStart:])
		if pm == nil {
			continue
		}
		content := s[parenStart+pm[2] : parenStart+pm[3]]
		if !anyYearRe.MatchString(content) {
			continue
		}

		keys := segmentKeys(content, fixedFallback, surname, cfg)
		if len(keys) == 0 {
			continue
		}
		out = append(out, Candidate{Start: m[0], End: parenStart + pm[1], Keys: keys})
	}
	return out
}

// --- "Author and colleagues (…)" ---

var andColleaguesRe = regexp.MustCompile(
	`([A-Z][a-z]+)\s+and\s+(?:colleagues|coworkers|collaborators)\s*\(([^)]+)\)`)

type andColleagues struct{}

func (andColleagues) Name() string { return "and-colleagues" }

func (andColleagues) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range andColleaguesRe.FindAllStringSubmatchIndex(s, -1) {
		keys := segmentKeys(s[m[4]:m[5]], fixedFallback, s[m[2]:m[3]], cfg)
		if len(keys) == 0 {
			continue
		}
		out = append(out, Candidate{Start: m[0], End: m[1], Keys: keys})
	}
	return out
}

// --- "Author et al. (Year1; Other, Year2)" ---
//
// Contributes keys for set building only; its spans coincide with
// narrative or parenthetical claims, so it is not part of the span
// priority list.

var etAlComplexRe = regexp.MustCompile(`([A-Z][a-z]+)\s+et\s+al\.?\s*\(([^)]+)\)`)

type etAlComplex struct{}

func (etAlComplex) Name() string { return "et-al-complex" }

func (etAlComplex) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range etAlComplexRe.FindAllStringSubmatchIndex(s, -1) {
		keys := segmentKeys(s[m[4]:m[5]], fixedFallback, s[m[2]:m[3]], cfg)
		if len(keys) == 0 {
			continue
		}
		out = append(out, Candidate{Start: m[0], End: m[1], Keys: keys})
	}
	return out
}

// --- Lowercase narrative fallback: "stiles (2009)" ---
//
// A net for inconsistent capitalization; the surname is normalized to its
// capitalized form.

var (
	lowercaseParenRe = regexp.MustCompile(`([a-z][a-z]+(?:-[a-zA-Z]+)?)\s*\((\d{4}[a-z]?(?:,\s*\d{4}[a-z]?)*)\)`)
	lowercaseCommaRe = regexp.MustCompile(`([a-z][a-z]+(?:-[a-zA-Z]+)?)\s*[(,]\s*(\d{4}[a-z]?)`)
)

type lowercase struct{}

func (lowercase) Name() string { return "lowercase" }

func (lowercase) FindCandidates(s string, cfg citekey.Config) []Candidate {
	var out []Candidate
	for _, m := range lowercaseParenRe.FindAllStringSubmatchIndex(s, -1) {
		surname := citekey.NormalizeSurname(s[m[2]:m[3]])
		if cfg.IsNoise(surname) {
			continue
		}
		var keys []citekey.Key
		for _, y := range yearRe.FindAllString(s[m[4]:m[5]], -1) {
			keys = append(keys, citekey.Key{Surname: surname, Year: y})
		}
		out = append(out, Candidate{Start: m[0], End: m[1], Keys: keys})
	}
	return out
}
