// Package highlight locates citation spans in the formatted document and
// applies color marks. Span computation is a read-only pass over the
// length-preserving normalized text of each paragraph; all run mutation
// happens in a separate apply pass, so the document tree is never modified
// while being scanned.
package highlight

import (
	"github.com/refcheck/refcheck/internal/citekey"
	"github.com/refcheck/refcheck/internal/document"
	"github.com/refcheck/refcheck/internal/extract"
	"github.com/refcheck/refcheck/internal/match"
	"github.com/refcheck/refcheck/internal/text"
)

// CommentAuthor is the author name attached to generated reviewer comments.
const CommentAuthor = "refcheck"

// Span is one claimed citation or reference span, in rune offsets into its
// paragraph's text.
type Span struct {
	Paragraph  int
	Start      int
	End        int
	Keys       []citekey.Key
	Kind       match.Kind
	Recognizer string
	Color      document.Color
	Comment    string // empty when no comment is wanted
}

// Tally aggregates per-key classifications for one side of the check.
type Tally struct {
	Exact     int
	Fuzzy     int
	Unmatched int
	FuzzyList []string
	NoneList  []string
}

func (t *Tally) record(key citekey.Key, kind match.Kind) {
	switch kind {
	case match.Exact:
		t.Exact++
	case match.Fuzzy:
		t.Fuzzy++
		t.FuzzyList = append(t.FuzzyList, key.String())
	default:
		t.Unmatched++
		t.NoneList = append(t.NoneList, key.String())
	}
}

// colorFor maps an aggregate kind to the body-citation color scheme.
func colorFor(kind match.Kind) document.Color {
	switch kind {
	case match.Exact:
		return document.Green
	case match.Fuzzy:
		return document.Cyan
	default:
		return document.Yellow
	}
}

// Body computes the citation spans of every body paragraph (those before
// the bibliography heading) and classifies each against the reference set.
// Recognizers run in the fixed priority order; a candidate intersecting an
// already accepted span in the same paragraph is dropped.
func Body(doc *document.Document, headingIdx int, cfg citekey.Config, refs *citekey.Set, refIdx citekey.FuzzyIndex) ([]Span, Tally) {
	var spans []Span
	var tally Tally

	for pi := 0; pi < headingIdx && pi < len(doc.Paragraphs); pi++ {
		plain := text.NormalizeForSpan(doc.Paragraphs[pi].Text())
		if plain == "" {
			continue
		}

		runeIdx := text.NewRuneIndex(plain)
		var acc extract.Accumulator

		for _, rec := range extract.SpanRecognizers() {
			for _, cand := range rec.FindCandidates(plain, cfg) {
				if acc.Overlaps(cand.Start, cand.End) {
					continue
				}
				acc.Accept(cand)

				kinds := make([]match.Kind, len(cand.Keys))
				for i, k := range cand.Keys {
					res := match.Citation(k, refs, refIdx)
					kinds[i] = res.Kind
					tally.record(k, res.Kind)
				}
				worst := match.Worst(kinds...)

				span := Span{
					Paragraph:  pi,
					Start:      runeIdx.Rune(cand.Start),
					End:        runeIdx.Rune(cand.End),
					Keys:       cand.Keys,
					Kind:       worst,
					Recognizer: rec.Name(),
					Color:      colorFor(worst),
				}
				if worst == match.None {
					span.Comment = "Citation not found in reference list"
				}
				spans = append(spans, span)
			}
		}
	}

	return spans, tally
}

// References computes the reference-side spans. The highlighted span always
// stops at the end of the first "(Year)" occurrence so publisher and
// journal text stays unmarked.
func References(doc *document.Document, headingIdx int, cites *citekey.Set, citeIdx citekey.FuzzyIndex) ([]Span, Tally) {
	var spans []Span
	var tally Tally

	for pi := headingIdx + 1; pi < len(doc.Paragraphs); pi++ {
		plain := doc.Paragraphs[pi].Text()
		normalized := text.NormalizeForSet(plain)
		entry, ok := extract.ParseReference(normalized)
		if !ok {
			continue
		}

		key := citekey.Key{Surname: entry.Surname, Year: entry.Year}
		res := match.Reference(key, cites, citeIdx)
		tally.record(key, res.Kind)

		color := colorFor(res.Kind)
		if res.Kind == match.None {
			color = document.Red
		}

		runeIdx := text.NewRuneIndex(plain)
		end := runeIdx.Len()
		if loc := extract.FirstYearParen(plain); loc != nil {
			end = runeIdx.Rune(loc[1])
		}

		span := Span{
			Paragraph: pi,
			Start:     0,
			End:       end,
			Keys:      []citekey.Key{key},
			Kind:      res.Kind,
			Color:     color,
		}
		if res.Kind == match.None {
			span.Comment = "Reference not cited in body text"
		}
		spans = append(spans, span)
	}

	return spans, tally
}

// Apply marks every span on the document. Comments are attached only when
// withComments is set. Marking a zero-length span is a no-op by the
// document model's contract.
func Apply(doc *document.Document, spans []Span, withComments bool) {
	for _, s := range spans {
		if s.Paragraph < 0 || s.Paragraph >= len(doc.Paragraphs) {
			continue
		}
		para := doc.Paragraphs[s.Paragraph]
		para.MarkRange(s.Start, s.End, s.Color)
		if withComments && s.Comment != "" {
			para.CommentRange(s.Start, s.End, document.Comment{
				Author: CommentAuthor,
				Text:   s.Comment,
			})
		}
	}
}
