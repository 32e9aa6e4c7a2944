// Package apa parses APA-style bibliography entries into structured
// records for interchange export and batched verification.
package apa

import (
	"regexp"
	"strings"
)

// Type classifies a parsed reference.
type Type string

const (
	TypeJournal    Type = "journal"
	TypeBook       Type = "book"
	TypeChapter    Type = "chapter"
	TypeEditedBook Type = "edited_book"
	TypeUnknown    Type = "unknown"
)

// Reference is a parsed APA entry. FullText always carries the original
// entry so nothing is lost when parsing is partial.
type Reference struct {
	Authors   string `json:"authors"`
	Year      string `json:"year"`
	Title     string `json:"title"`
	Type      Type   `json:"type"`
	Journal   string `json:"journal"`
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	Pages     string `json:"pages"`
	Publisher string `json:"publisher"`
	Editors   string `json:"editors"`
	Edition   string `json:"edition"`
	DOI       string `json:"doi"`
	FullText  string `json:"full_text"`
}

var (
	doiRe     = regexp.MustCompile(`https?://doi\.org/\S+`)
	edsHeadRe = regexp.MustCompile(`^(.+?)\s*\(Eds?\.\)\.\s*\((\d{4}[a-z]?)\)\.?\s*(.*)$`)
	regHeadRe = regexp.MustCompile(`^(.+?)\s*\((\d{4}[a-z]?(?:/\d{4})?)\)\.?\s*(.*)$`)
	inSplitRe = regexp.MustCompile(`\.\s+In\s+`)
	edsInRe   = regexp.MustCompile(`^(.+?)\s*\(Eds?\.(?:\s*&\s*Trans\.)?\)\s*,?\s*(.*)$`)
	titleRe   = regexp.MustCompile(`^(.+?)(?:\s*\((.+?)\))?\.\s*(.*)`)
	pagesRe   = regexp.MustCompile(`pp?\.?\s*([\d\x{2013}\x{2014}-]+)`)
	journalRe = regexp.MustCompile(`^(.+?)\.\s+([A-Z][^,]+?),\s*(\d+)\s*(?:\((\d+)\))?\s*,\s*([\d\x{2013}\x{2014}-]+(?:\x{2013}\d+)?)\s*\.?$`)
	// Journal names with a subtitle colon defeat the plain form.
	journalColonRe = regexp.MustCompile(`^(.+?)\.\s+([A-Z][^,]+?:\s*[^,]+?),\s*(\d+)\s*(?:\((\d+)\))?\s*,\s*([\d\x{2013}\x{2014}-]+)\s*\.?$`)
	headLabelRe    = regexp.MustCompile(`^(.+?)\s*\((\d{4}[a-z]?)\)`)
)

// Parse parses one APA reference entry. Unparseable entries come back as
// TypeUnknown with FullText set.
func Parse(entry string) Reference {
	entry = strings.TrimSpace(entry)
	r := Reference{Type: TypeUnknown, FullText: entry}

	working := entry
	if m := doiRe.FindStringIndex(entry); m != nil {
		r.DOI = strings.TrimRight(entry[m[0]:m[1]], ".")
		working = strings.TrimRight(strings.TrimSpace(entry[:m[0]]), ".")
	} else {
		working = strings.TrimRight(working, ".")
	}

	var remainder string
	if m := edsHeadRe.FindStringSubmatch(working); m != nil {
		r.Authors = strings.TrimRight(strings.TrimSpace(m[1]), ",")
		r.Editors = r.Authors
		r.Year = m[2]
		remainder = strings.TrimSpace(m[3])
		r.Type = TypeEditedBook
	} else if m := regHeadRe.FindStringSubmatch(working); m != nil {
		r.Authors = strings.TrimRight(strings.TrimSpace(m[1]), ",")
		r.Year = m[2]
		remainder = strings.TrimSpace(m[3])
	} else {
		return r
	}
	if remainder == "" {
		return r
	}

	switch {
	case r.Type != TypeEditedBook && inSplitRe.MatchString(remainder):
		parseChapter(&r, remainder)
	case r.Type == TypeEditedBook:
		if m := titleRe.FindStringSubmatch(remainder); m != nil {
			r.Title = strings.TrimRight(strings.TrimSpace(m[1]), ".")
			if strings.Contains(strings.ToLower(m[2]), "ed.") {
				r.Edition = m[2]
			}
			r.Publisher = strings.TrimRight(strings.TrimSpace(m[3]), ".")
		}
	default:
		parseJournalOrBook(&r, remainder)
	}

	return r
}

func parseChapter(r *Reference, remainder string) {
	r.Type = TypeChapter
	loc := inSplitRe.FindStringIndex(remainder)
	r.Title = strings.TrimRight(strings.TrimSpace(remainder[:loc[0]]), ".")
	afterIn := strings.TrimSpace(remainder[loc[1]:])

	bookRest := afterIn
	if m := edsInRe.FindStringSubmatch(afterIn); m != nil {
		r.Editors = strings.TrimSpace(m[1])
		bookRest = strings.TrimSpace(m[2])
	}

	if m := titleRe.FindStringSubmatch(bookRest); m != nil {
		if m[2] != "" {
			if pp := pagesRe.FindStringSubmatch(m[2]); pp != nil {
				r.Pages = pp[1]
			}
		}
		if after := strings.TrimSpace(m[3]); after != "" {
			r.Publisher = strings.TrimRight(after, ".")
		}
	}
}

func parseJournalOrBook(r *Reference, remainder string) {
	m := journalRe.FindStringSubmatch(remainder)
	if m == nil {
		m = journalColonRe.FindStringSubmatch(remainder)
	}
	if m != nil {
		r.Type = TypeJournal
		r.Title = strings.TrimSpace(m[1])
		r.Journal = strings.TrimSpace(m[2])
		r.Volume = m[3]
		r.Issue = m[4]
		r.Pages = m[5]
		return
	}

	r.Type = TypeBook
	if bm := titleRe.FindStringSubmatch(remainder); bm != nil {
		r.Title = strings.TrimRight(strings.TrimSpace(bm[1]), ".")
		rest := strings.TrimRight(strings.TrimSpace(bm[3]), ".")
		if bm[2] != "" && strings.Contains(strings.ToLower(bm[2]), "ed.") {
			r.Edition = bm[2]
		}
		if rest != "" {
			r.Publisher = strings.TrimRight(strings.TrimSpace(strings.SplitN(rest, ".", 2)[0]), ".")
		}
	} else {
		r.Title = remainder
	}
}

// HeadLabel extracts the first author surname and year for a short label:
// "Freud, S. (1912a). ..." -> ("Freud", "1912a"). Unparseable entries get
// placeholder values.
func HeadLabel(entry string) (author, year string) {
	if m := headLabelRe.FindStringSubmatch(entry); m != nil {
		return strings.TrimSpace(strings.SplitN(m[1], ",", 2)[0]), m[2]
	}
	return "Unknown", "????"
}

// SplitAuthors splits an APA author string into individual
// "Surname, Initials" entries: "Freud, S., & Jung, C. G." yields two.
func SplitAuthors(authors string) []string {
	s := regexp.MustCompile(`,?\s*&\s*`).ReplaceAllString(authors, ", ")
	parts := splitBeforeCapital(s)

	initialsRe := regexp.MustCompile(`^[A-Z]\.\s*[A-Z]?\.*$`)
	var out []string
	current := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if initialsRe.MatchString(part) {
			current += ", " + part
			out = append(out, strings.TrimSpace(current))
			current = ""
		} else {
			if current != "" {
				out = append(out, strings.TrimSpace(current))
			}
			current = part
		}
	}
	if current != "" {
		out = append(out, strings.TrimSpace(current))
	}
	return out
}

// splitBeforeCapital splits on commas whose following token starts with a
// capital letter, keeping "van der Kolk" style lowercase continuations
// attached.
func splitBeforeCapital(s string) []string {
	var parts []string
	start := 0
	commaRe := regexp.MustCompile(`,\s*`)
	for _, loc := range commaRe.FindAllStringIndex(s, -1) {
		if loc[1] < len(s) {
			c := s[loc[1]]
			if c >= 'A' && c <= 'Z' {
				parts = append(parts, s[start:loc[0]])
				start = loc[1]
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
