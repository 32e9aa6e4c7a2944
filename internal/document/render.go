package document

import (
	"fmt"
	"os"
	"strings"
)

// Render serializes the marked document as text. Highlighted runs are
// wrapped in ⟦color⟧…⟦/⟧ markers; comments are collected into a numbered
// footnote block after the body. The output is meant for review in any
// editor, without a word processor.
func Render(d *Document) string {
	var b strings.Builder
	var notes []string

	for _, p := range d.Paragraphs {
		for _, r := range p.Runs {
			if r.Highlight != NoColor {
				fmt.Fprintf(&b, "⟦%s⟧%s⟦/⟧", r.Highlight, r.Text)
			} else {
				b.WriteString(r.Text)
			}
			for _, c := range r.Comments {
				notes = append(notes, fmt.Sprintf("[%d] %s: %s", len(notes)+1, c.Author, c.Text))
				fmt.Fprintf(&b, "[%d]", len(notes))
			}
		}
		b.WriteString("\n")
	}

	if len(notes) > 0 {
		b.WriteString("\n--- Comments ---\n")
		for _, n := range notes {
			b.WriteString(n)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Save writes the rendered document to a file.
func Save(d *Document, path string) error {
	if err := os.WriteFile(path, []byte(Render(d)), 0644); err != nil {
		return fmt.Errorf("writing marked document: %w", err)
	}
	return nil
}
