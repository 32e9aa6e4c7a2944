package export

import (
	"fmt"
	"strings"

	"github.com/refcheck/refcheck/internal/apa"
)

// ToBibTeX converts one parsed reference to a BibTeX entry.
func ToBibTeX(ref apa.Reference, refNum int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{ref%03d,\n", bibtexEntryType(ref.Type), refNum))

	if ref.Authors != "" {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", strings.Join(apa.SplitAuthors(ref.Authors), " and ")))
	}
	if ref.Title != "" {
		b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(ref.Title)))
	}
	if ref.Journal != "" {
		b.WriteString(fmt.Sprintf("  journal = {%s},\n", escapeLatex(ref.Journal)))
	}
	if ref.Year != "" {
		b.WriteString(fmt.Sprintf("  year = {%s},\n", ref.Year))
	}
	if ref.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", ref.Volume))
	}
	if ref.Issue != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", ref.Issue))
	}
	if ref.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", ref.Pages))
	}
	if ref.Publisher != "" {
		b.WriteString(fmt.Sprintf("  publisher = {%s},\n", escapeLatex(ref.Publisher)))
	}
	if ref.Editors != "" && (ref.Type == apa.TypeChapter || ref.Type == apa.TypeEditedBook) {
		b.WriteString(fmt.Sprintf("  editor = {%s},\n", strings.Join(apa.SplitAuthors(ref.Editors), " and ")))
	}
	if ref.Edition != "" {
		b.WriteString(fmt.Sprintf("  edition = {%s},\n", escapeLatex(ref.Edition)))
	}
	if ref.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", strings.TrimPrefix(ref.DOI, "https://doi.org/")))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple references to BibTeX format.
func ToBibTeXList(refs []apa.Reference) string {
	var entries []string
	for i, ref := range refs {
		entries = append(entries, ToBibTeX(ref, i+1))
	}
	return strings.Join(entries, "\n")
}

// bibtexEntryType returns the BibTeX entry type for a parsed type.
func bibtexEntryType(t apa.Type) string {
	switch t {
	case apa.TypeJournal:
		return "article"
	case apa.TypeBook, apa.TypeEditedBook:
		return "book"
	case apa.TypeChapter:
		return "incollection"
	default:
		return "misc"
	}
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
