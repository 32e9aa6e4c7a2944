package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadText reads a plain-text manuscript. Each line becomes one paragraph,
// mirroring how word processors expose one paragraph per block; empty
// lines become empty paragraphs so document order and spacing survive a
// render round trip.
func LoadText(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manuscript: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")

	doc := &Document{Name: stem(path)}
	for _, line := range strings.Split(content, "\n") {
		doc.Paragraphs = append(doc.Paragraphs, NewParagraph(line))
	}
	return doc, nil
}

// Load reads a manuscript, dispatching on file extension: .pdf uses the
// PDF text extractor, everything else is treated as plain text.
func Load(path string) (*Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return LoadPDF(path)
	}
	return LoadText(path)
}

// stem returns the file name without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
