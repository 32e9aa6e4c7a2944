// Package context extracts citation-sentence pairs from a manuscript: each
// sentence that cites a work, joined to the full text of the reference it
// cites. The pair list is the working set for the external semantic
// verifier, which checks claims against sources.
package context

import (
	"regexp"
	"strings"

	"github.com/refcheck/refcheck/internal/citekey"
	"github.com/refcheck/refcheck/internal/extract"
	"github.com/refcheck/refcheck/internal/text"
)

// maxSentenceLen bounds the stored sentence text.
const maxSentenceLen = 500

// Citation is one (author, year) occurrence inside a sentence. Author is
// the surface form as written, not the normalized key.
type Citation struct {
	Author string `json:"author"`
	Year   string `json:"year"`
}

// Sentence is one sentence with the citations it contains.
type Sentence struct {
	Text      string     `json:"sentence"`
	Citations []Citation `json:"citations"`
	Paragraph int        `json:"paragraph_num"`
}

// Pair joins a citing sentence with the cited reference's full text.
type Pair struct {
	Sentence  string `json:"sentence"`
	Citation  string `json:"citation"`
	Reference string `json:"reference_text"`
}

// ReferenceInfo describes a unique cited reference with a ready-made
// search query for the verifier.
type ReferenceInfo struct {
	Title       string `json:"title"`
	Surname     string `json:"surname"`
	Year        string `json:"year"`
	SearchQuery string `json:"search_query"`
}

var (
	yearRe           = regexp.MustCompile(`\d{4}[a-z]?`)
	parenBlockRe     = regexp.MustCompile(`\(([^)]*\d{4}[a-z]?[^)]*)\)`)
	narrativeCiteRe  = regexp.MustCompile(`([A-Z][a-z]+(?:-[A-Z][a-z]+)?(?:\s+et\s+al\.?)?)\s*\((\d{4}[a-z]?)\)`)
	bracketCiteRe    = regexp.MustCompile(`([A-Z][a-z]+(?:-[A-Z][a-z]+)?)\s*\[(\d{4}[a-z]?)\]`)
	authorSplitRe    = regexp.MustCompile(`,?\s*\d{4}`)
	refTitleRe       = regexp.MustCompile(`\(\d{4}[a-z]?\)\.\s*(.+?)(?:\.\s|$)`)
	titleMarkupRe    = regexp.MustCompile(`[_*]`)
	refBaseYearRe    = regexp.MustCompile(`\((\d{4})`)
	hedgeInSegmentRe = regexp.MustCompile(`(?i)^(e\.g\.,?\s*|see\s+|cf\.\s*|also\s+)`)
)

// Sentences finds every sentence in the body text that contains at least
// one citation. Paragraphs are the blank-line-separated blocks of the
// body text.
func Sentences(bodyText string) []Sentence {
	normalized := text.NormalizeForSet(bodyText)

	var out []Sentence
	for paraNum, para := range strings.Split(normalized, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		for _, sentence := range text.SplitSentences(para) {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}

			var cites []Citation

			// Parenthetical blocks, segment by segment.
			for _, m := range parenBlockRe.FindAllStringSubmatch(sentence, -1) {
				for _, part := range strings.Split(m[1], ";") {
					part = strings.TrimSpace(part)
					years := yearRe.FindAllString(part, -1)
					if len(years) == 0 {
						continue
					}
					authorPart := part
					if loc := authorSplitRe.FindStringIndex(part); loc != nil {
						authorPart = part[:loc[0]]
					}
					authorPart = strings.TrimSpace(authorPart)
					authorPart = strings.TrimRight(strings.TrimSpace(hedgeInSegmentRe.ReplaceAllString(authorPart, "")), ",")
					if len([]rune(authorPart)) > 2 {
						for _, y := range years {
							cites = append(cites, Citation{Author: authorPart, Year: y})
						}
					}
				}
			}

			// Narrative and bracketed forms.
			for _, m := range narrativeCiteRe.FindAllStringSubmatch(sentence, -1) {
				cites = append(cites, Citation{Author: m[1], Year: m[2]})
			}
			for _, m := range bracketCiteRe.FindAllStringSubmatch(sentence, -1) {
				cites = append(cites, Citation{Author: m[1], Year: m[2]})
			}

			if len(cites) > 0 {
				out = append(out, Sentence{
					Text:      truncate(sentence, maxSentenceLen),
					Citations: dedupe(cites),
					Paragraph: paraNum,
				})
			}
		}
	}
	return out
}

// ReferenceEntries maps (surname, year) to the full text of each
// bibliography entry.
func ReferenceEntries(paragraphs []string, headingIdx int) map[citekey.Key]string {
	entries := make(map[citekey.Key]string)
	for pi := headingIdx + 1; pi < len(paragraphs); pi++ {
		normalized := text.NormalizeForSet(strings.TrimSpace(paragraphs[pi]))
		if normalized == "" || extract.IsHeading(normalized) {
			continue
		}
		if e, ok := extract.ParseReference(normalized); ok {
			entries[citekey.Key{Surname: e.Surname, Year: e.Year}] = normalized
		}
	}
	return entries
}

// BuildPairs joins each sentence citation to its reference entry. A
// citation year with a suffix falls back to the base year when the exact
// year is absent. Citations with no matching entry produce no pair.
func BuildPairs(sentences []Sentence, entries map[citekey.Key]string) []Pair {
	var pairs []Pair
	for _, s := range sentences {
		for _, c := range s.Citations {
			surname := c.Author
			if i := strings.Index(surname, " et al"); i >= 0 {
				surname = surname[:i]
			}
			if i := strings.Index(surname, " & "); i >= 0 {
				surname = surname[:i]
			}
			if i := strings.Index(surname, ","); i >= 0 {
				surname = surname[:i]
			}
			surname = strings.TrimSpace(surname)
			if fields := strings.Fields(surname); len(fields) > 1 {
				surname = fields[len(fields)-1]
			}

			refText, ok := entries[citekey.Key{Surname: surname, Year: c.Year}]
			if !ok {
				if base := citekey.StripYearSuffix(c.Year); base != c.Year {
					refText, ok = entries[citekey.Key{Surname: surname, Year: base}]
				}
			}
			if ok {
				pairs = append(pairs, Pair{
					Sentence:  s.Text,
					Citation:  c.Author + " (" + c.Year + ")",
					Reference: refText,
				})
			}
		}
	}
	return pairs
}

// UniqueReferences deduplicates pair references and derives a search query
// per reference.
func UniqueReferences(pairs []Pair) map[string]ReferenceInfo {
	out := make(map[string]ReferenceInfo)
	for _, p := range pairs {
		if _, seen := out[p.Reference]; seen {
			continue
		}
		info := ReferenceInfo{Surname: strings.TrimSpace(strings.SplitN(p.Reference, ",", 2)[0])}
		if m := refTitleRe.FindStringSubmatch(p.Reference); m != nil {
			info.Title = titleMarkupRe.ReplaceAllString(strings.TrimRight(strings.TrimSpace(m[1]), "."), "")
		}
		if m := refBaseYearRe.FindStringSubmatch(p.Reference); m != nil {
			info.Year = m[1]
		}
		if info.Title != "" {
			info.SearchQuery = strings.TrimSpace(info.Surname + " " + info.Year + " " + info.Title)
		} else {
			info.SearchQuery = strings.TrimSpace(info.Surname + " " + info.Year)
		}
		out[p.Reference] = info
	}
	return out
}

// truncate limits s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// dedupe removes duplicate citations, keeping first-seen order.
func dedupe(cites []Citation) []Citation {
	seen := make(map[Citation]bool, len(cites))
	out := make([]Citation, 0, len(cites))
	for _, c := range cites {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
