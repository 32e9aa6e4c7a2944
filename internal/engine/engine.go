// Package engine orchestrates a full check run: extraction on both sides,
// matching, span marking, learned-pattern reconciliation, and report
// assembly. The run is single-threaded and deterministic over an in-memory
// document snapshot; the only mutation is the marking applied to the
// document itself.
package engine

import (
	"strings"

	"github.com/refcheck/refcheck/internal/citekey"
	"github.com/refcheck/refcheck/internal/document"
	"github.com/refcheck/refcheck/internal/extract"
	"github.com/refcheck/refcheck/internal/highlight"
	"github.com/refcheck/refcheck/internal/learned"
	"github.com/refcheck/refcheck/internal/match"
	"github.com/refcheck/refcheck/internal/report"
)

// Options configures a run.
type Options struct {
	// Learned is the loaded pattern store; nil disables the adapter.
	Learned *learned.Store
	// Comments attaches reviewer comments to unmatched spans.
	Comments bool
	// SkipLegend suppresses the legend paragraph (used by tests that
	// compare paragraph indices before and after a run).
	SkipLegend bool
}

// Run checks the document's citations against its bibliography, marks
// every recognized span, and returns the structured report. The document
// is expected to be unmarked; marking is single-pass and monotonic.
func Run(doc *document.Document, opts Options) *report.Report {
	cfg := citekey.DefaultConfig()
	if opts.Learned != nil {
		cfg = cfg.WithNoiseWords(opts.Learned.NoiseWords)
	}

	texts := doc.ParagraphTexts()
	headingIdx := extract.HeadingIndex(texts)

	bodyText := strings.Join(texts[:headingIdx], "\n\n")
	var refLines []string
	for _, t := range texts[min(headingIdx+1, len(texts)):] {
		if s := strings.TrimSpace(t); s != "" {
			refLines = append(refLines, s)
		}
	}
	refText := strings.Join(refLines, "\n")

	citations := extract.Citations(bodyText, cfg)
	refs, _ := extract.References(texts, headingIdx)

	refIdx := citekey.NewFuzzyIndex(refs)
	citeIdx := citekey.NewFuzzyIndex(citations)

	bodySpans, bodyTally := highlight.Body(doc, headingIdx, cfg, refs, refIdx)
	refSpans, refTally := highlight.References(doc, headingIdx, citations, citeIdx)

	// Learned cross-matches reclassify both sides from unmatched to fuzzy,
	// but only when citation and reference are both present in this run.
	var autoMatches []report.AutoMatch
	if opts.Learned != nil {
		for _, am := range opts.Learned.ApplyCrossMatches(bodyTally.NoneList, refTally.NoneList) {
			autoMatches = append(autoMatches, report.AutoMatch{
				Citation:  am.Citation,
				Reference: am.Reference,
				Reason:    am.Reason,
			})
			if removeFirst(&bodyTally.NoneList, am.Citation) {
				bodyTally.FuzzyList = append(bodyTally.FuzzyList, am.Citation)
				bodyTally.Unmatched--
				bodyTally.Fuzzy++
			}
			if removeFirst(&refTally.NoneList, am.Reference) {
				refTally.FuzzyList = append(refTally.FuzzyList, am.Reference)
				refTally.Unmatched--
				refTally.Fuzzy++
			}
		}
	}

	highlight.Apply(doc, bodySpans, opts.Comments)
	highlight.Apply(doc, refSpans, opts.Comments)
	if !opts.SkipLegend {
		doc.InsertLegend()
	}

	var matchedCitations []string
	for _, k := range citations.Keys() {
		if match.Citation(k, refs, refIdx).Kind == match.Exact {
			matchedCitations = append(matchedCitations, k.String())
		}
	}

	return &report.Report{
		Paper:    doc.Name,
		BodyText: bodyText,
		RefText:  refText,
		Stats: report.Stats{
			RegexCitations: citations.Len(),
			References:     refs.Len(),
			BodyMatched:    bodyTally.Exact,
			BodyFuzzy:      bodyTally.Fuzzy,
			BodyUnmatched:  bodyTally.Unmatched,
			RefCited:       refTally.Exact,
			RefFuzzy:       refTally.Fuzzy,
			RefUncited:     refTally.Unmatched,
		},
		MatchedCitations:   report.SortedUnique(matchedCitations),
		FuzzyMatches:       report.SortedUnique(append(append([]string{}, bodyTally.FuzzyList...), refTally.FuzzyList...)),
		UnmatchedCitations: report.SortedUnique(bodyTally.NoneList),
		UncitedReferences:  report.SortedUnique(refTally.NoneList),
		CitationSet:        citations.Strings(),
		RefSet:             refs.Strings(),
		AutoMatches:        autoMatches,
	}
}

// removeFirst deletes the first occurrence of v from the list.
func removeFirst(list *[]string, v string) bool {
	for i, s := range *list {
		if s == v {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
