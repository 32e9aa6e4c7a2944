// Package export converts parsed references to bibliography-manager
// interchange formats (RIS, BibTeX).
package export

import (
	"fmt"
	"strings"

	"github.com/refcheck/refcheck/internal/apa"
)

// risTypes maps parsed reference types to RIS TY values.
var risTypes = map[apa.Type]string{
	apa.TypeJournal:    "JOUR",
	apa.TypeBook:       "BOOK",
	apa.TypeChapter:    "CHAP",
	apa.TypeEditedBook: "EDBOOK",
	apa.TypeUnknown:    "GEN",
}

// ToRIS converts one parsed reference to an RIS record. refNum feeds the
// sequential ID tag.
func ToRIS(ref apa.Reference, refNum int) string {
	var lines []string
	add := func(tag, value string) {
		lines = append(lines, fmt.Sprintf("%s  - %s", tag, value))
	}

	risType, ok := risTypes[ref.Type]
	if !ok {
		risType = "GEN"
	}
	add("TY", risType)
	add("ID", fmt.Sprintf("ref%03d", refNum))

	for _, au := range apa.SplitAuthors(ref.Authors) {
		add("AU", au)
	}
	if ref.Year != "" {
		add("PY", ref.Year)
	}
	if ref.Title != "" {
		tag := "TI"
		if risType == "JOUR" {
			tag = "T1"
		}
		add(tag, ref.Title)
	}
	if ref.Journal != "" {
		add("JO", ref.Journal)
	}
	if ref.Volume != "" {
		add("VL", ref.Volume)
	}
	if ref.Issue != "" {
		add("IS", ref.Issue)
	}
	if ref.Pages != "" {
		pages := strings.NewReplacer("–", "-", "—", "-").Replace(ref.Pages)
		if start, end, found := strings.Cut(pages, "-"); found {
			add("SP", start)
			add("EP", end)
		} else {
			add("SP", pages)
		}
	}
	if ref.Publisher != "" {
		add("PB", ref.Publisher)
	}
	if ref.Editors != "" && (ref.Type == apa.TypeChapter || ref.Type == apa.TypeEditedBook) {
		for _, ed := range apa.SplitAuthors(ref.Editors) {
			add("ED", ed)
		}
	}
	if ref.Edition != "" {
		add("ET", ref.Edition)
	}
	if ref.DOI != "" {
		add("DO", strings.TrimPrefix(ref.DOI, "https://doi.org/"))
		add("UR", ref.DOI)
	}
	add("N1", "Original APA text: "+ref.FullText)
	add("ER", "")

	return strings.Join(lines, "\n")
}

// ToRISList converts multiple references, blank-line separated.
func ToRISList(refs []apa.Reference) string {
	var records []string
	for i, ref := range refs {
		records = append(records, ToRIS(ref, i+1))
	}
	return strings.Join(records, "\n\n") + "\n"
}
