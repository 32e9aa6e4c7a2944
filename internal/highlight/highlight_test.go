package highlight

import (
	"strings"
	"testing"

	"github.com/refcheck/refcheck/internal/citekey"
	"github.com/refcheck/refcheck/internal/document"
	"github.com/refcheck/refcheck/internal/match"
)

func newDoc(paragraphs ...string) *document.Document {
	d := &document.Document{Name: "paper"}
	for _, p := range paragraphs {
		d.Paragraphs = append(d.Paragraphs, document.NewParagraph(p))
	}
	return d
}

func refSet(keys ...citekey.Key) (*citekey.Set, citekey.FuzzyIndex) {
	s := citekey.NewSet()
	for _, k := range keys {
		s.Add(k)
	}
	return s, citekey.NewFuzzyIndex(s)
}

func TestBodyClassification(t *testing.T) {
	doc := newDoc(
		"Freud (1912) laid the groundwork. Klein (1946) extended it, and Adler (1927) is uncited.",
		"References",
	)
	refs, idx := refSet(
		citekey.Key{Surname: "Freud", Year: "1912"},
		citekey.Key{Surname: "Klein", Year: "1946a"},
	)

	spans, tally := Body(doc, 1, citekey.DefaultConfig(), refs, idx)

	if tally.Exact != 1 || tally.Fuzzy != 1 || tally.Unmatched != 1 {
		t.Fatalf("tally = %+v, want exact 1, fuzzy 1, unmatched 1", tally)
	}

	byColor := map[document.Color]int{}
	for _, s := range spans {
		byColor[s.Color]++
	}
	if byColor[document.Green] != 1 || byColor[document.Cyan] != 1 || byColor[document.Yellow] != 1 {
		t.Errorf("span colors = %v", byColor)
	}

	for _, s := range spans {
		if s.Kind == match.None && s.Comment == "" {
			t.Error("unmatched span should carry a comment")
		}
		if s.Kind != match.None && s.Comment != "" {
			t.Errorf("matched span should not carry a comment: %+v", s)
		}
	}
}

// A multi-key block takes the worst classification of its keys.
func TestBodyWorstCaseBlockColor(t *testing.T) {
	doc := newDoc(
		"Combined evidence (Freud, 1912; Nobody, 1999) is cited.",
		"References",
	)
	refs, idx := refSet(citekey.Key{Surname: "Freud", Year: "1912"})

	spans, tally := Body(doc, 1, citekey.DefaultConfig(), refs, idx)

	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Color != document.Yellow {
		t.Errorf("block color = %v, want yellow (worst case)", spans[0].Color)
	}
	// Both keys still tally individually.
	if tally.Exact != 1 || tally.Unmatched != 1 {
		t.Errorf("tally = %+v", tally)
	}
}

// Span offsets are rune offsets even when the paragraph carries curly
// quotes before the citation.
func TestBodySpanOffsetsWithMultibyteText(t *testing.T) {
	para := "The “analytic frame” matters: Freud (1912) insisted on it."
	doc := newDoc(para, "References")
	refs, idx := refSet(citekey.Key{Surname: "Freud", Year: "1912"})

	spans, _ := Body(doc, 1, citekey.DefaultConfig(), refs, idx)
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}

	runes := []rune(para)
	got := string(runes[spans[0].Start:spans[0].End])
	if got != "Freud (1912)" {
		t.Errorf("span text = %q, want %q", got, "Freud (1912)")
	}
}

func TestReferencesSpans(t *testing.T) {
	doc := newDoc(
		"Freud (1912) is discussed.",
		"References",
		"Freud, S. (1912). The dynamics of transference. Standard Edition.",
		"Adler, A. (1927). Understanding human nature. Greenberg.",
	)
	cites, idx := refSet(citekey.Key{Surname: "Freud", Year: "1912"})

	spans, tally := References(doc, 1, cites, idx)

	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if tally.Exact != 1 || tally.Unmatched != 1 {
		t.Errorf("tally = %+v", tally)
	}

	// The span stops at the end of the first "(Year)".
	freud := spans[0]
	text := doc.Paragraphs[freud.Paragraph].Text()
	if got := string([]rune(text)[freud.Start:freud.End]); got != "Freud, S. (1912)" {
		t.Errorf("span text = %q, want %q", got, "Freud, S. (1912)")
	}

	adler := spans[1]
	if adler.Color != document.Red {
		t.Errorf("uncited reference color = %v, want red", adler.Color)
	}
	if adler.Comment == "" {
		t.Error("uncited reference should carry a comment")
	}
}

func TestApplyRoundTrip(t *testing.T) {
	doc := newDoc(
		"Freud (1912) laid the groundwork.",
		"References",
		"Freud, S. (1912). The dynamics of transference.",
	)
	before := strings.Join(doc.ParagraphTexts(), "\n")

	refs, refIdx := refSet(citekey.Key{Surname: "Freud", Year: "1912"})
	bodySpans, _ := Body(doc, 1, citekey.DefaultConfig(), refs, refIdx)
	refSpans, _ := References(doc, 1, refs, refIdx)

	Apply(doc, bodySpans, true)
	Apply(doc, refSpans, true)

	after := strings.Join(doc.ParagraphTexts(), "\n")
	if before != after {
		t.Errorf("highlighting changed paragraph text:\nbefore: %q\nafter:  %q", before, after)
	}

	var green string
	for _, r := range doc.Paragraphs[0].Runs {
		if r.Highlight == document.Green {
			green += r.Text
		}
	}
	if green != "Freud (1912)" {
		t.Errorf("green run text = %q, want %q", green, "Freud (1912)")
	}
}

func TestApplySkipsOutOfRangeParagraphs(t *testing.T) {
	doc := newDoc("only one paragraph")
	Apply(doc, []Span{{Paragraph: 5, Start: 0, End: 3, Color: document.Green}}, false)
	// No panic; text unchanged.
	if doc.Paragraphs[0].Text() != "only one paragraph" {
		t.Error("text changed")
	}
}
