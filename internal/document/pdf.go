package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadPDF extracts the text of every page and builds a document from it.
// PDFs expose no run formatting, so each paragraph starts as a single run;
// highlighting still applies to the in-memory model and shows up in the
// rendered output.
func LoadPDF(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	doc := &Document{Name: stem(path)}
	for _, line := range strings.Split(strings.TrimSuffix(builder.String(), "\n"), "\n") {
		doc.Paragraphs = append(doc.Paragraphs, NewParagraph(line))
	}
	return doc, nil
}
