package extract

import (
	"regexp"
	"strings"

	"github.com/refcheck/refcheck/internal/citekey"
	"github.com/refcheck/refcheck/internal/text"
)

// Bibliography heading forms, matched case-sensitively after trimming.
var headingForms = map[string]bool{
	"References":     true,
	"REFERENCES":     true,
	"Reference List": true,
	"Bibliography":   true,
}

// IsHeading reports whether a paragraph marks the bibliography boundary.
func IsHeading(paragraph string) bool {
	return headingForms[strings.TrimSpace(paragraph)]
}

// HeadingIndex returns the index of the bibliography heading paragraph, or
// len(paragraphs) when no heading exists. The degenerate case is not an
// error: every paragraph is then body text and the run yields zero
// references.
func HeadingIndex(paragraphs []string) int {
	for i, p := range paragraphs {
		if IsHeading(p) {
			return i
		}
	}
	return len(paragraphs)
}

// Entry is one raw bibliography entry in document order.
type Entry struct {
	Surname   string
	Year      string
	Paragraph int // paragraph index in the document
}

var refYearRe = regexp.MustCompile(`\((\d{4}[a-z]?)\)`)

// FirstYearParen returns the byte span of the first "(Year)" occurrence,
// or nil. The reference highlighter stops its span there.
func FirstYearParen(s string) []int {
	return refYearRe.FindStringIndex(s)
}

// ParseReference extracts the (surname, year) of a reference paragraph.
// The surname is the first whitespace-delimited token before the first
// parenthesis. Paragraphs without a parseable (Year) are skipped by the
// caller.
func ParseReference(normalized string) (Entry, bool) {
	m := refYearRe.FindStringSubmatch(normalized)
	if m == nil {
		return Entry{}, false
	}
	paren := strings.Index(normalized, "(")
	before := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(normalized[:paren]), ","))
	if i := strings.Index(before, ","); i >= 0 {
		before = before[:i]
	}
	before = strings.TrimRight(strings.TrimSpace(before), ".")
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return Entry{}, false
	}
	surname := fields[0]
	if len([]rune(surname)) <= 1 {
		return Entry{}, false
	}
	return Entry{Surname: surname, Year: m[1]}, true
}

// References scans the paragraphs after the bibliography heading and
// builds the reference key set. Entries are collected in document order.
//
// Suffix auto-assignment: author-year styles sometimes carry "1946a" in
// the text while the bibliography lists two bare "1946" entries. When a
// (surname, base year) group has more than one member, members without an
// explicit suffix get the next unused letter in document order, and the
// unsuffixed key is kept too so the bare form still resolves via fuzzy
// lookup. Letters are assigned by document order only; a citation-side
// suffix that happens to align is coincidental and is left to the external
// verifier.
func References(paragraphs []string, headingIdx int) (*citekey.Set, []Entry) {
	var raw []Entry
	for pi := headingIdx + 1; pi < len(paragraphs); pi++ {
		normalized := text.NormalizeForSet(strings.TrimSpace(paragraphs[pi]))
		if normalized == "" || IsHeading(normalized) {
			continue
		}
		e, ok := ParseReference(normalized)
		if !ok {
			continue
		}
		e.Paragraph = pi
		raw = append(raw, e)
	}

	baseCounts := make(map[citekey.Key]int)
	for _, e := range raw {
		base := citekey.Key{Surname: e.Surname, Year: citekey.StripYearSuffix(e.Year)}
		baseCounts[base]++
	}

	set := citekey.NewSet()
	nextSuffix := make(map[citekey.Key]byte)
	for _, e := range raw {
		base := citekey.Key{Surname: e.Surname, Year: citekey.StripYearSuffix(e.Year)}
		hasSuffix := e.Year != base.Year
		if baseCounts[base] > 1 && !hasSuffix {
			if _, ok := nextSuffix[base]; !ok {
				nextSuffix[base] = 'a'
			}
			suffix := nextSuffix[base]
			nextSuffix[base]++
			set.Add(citekey.Key{Surname: e.Surname, Year: e.Year + string(suffix)})
			set.Add(citekey.Key{Surname: e.Surname, Year: e.Year})
		} else {
			set.Add(citekey.Key{Surname: e.Surname, Year: e.Year})
		}
	}

	return set, raw
}
