// Package report defines the structured output of a check run, handed to
// the external semantic verifier and rendered for humans.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Stats holds the aggregate classification counts for both sides.
type Stats struct {
	RegexCitations int `json:"regex_citations"`
	References     int `json:"references"`
	BodyMatched    int `json:"body_matched"`
	BodyFuzzy      int `json:"body_fuzzy"`
	BodyUnmatched  int `json:"body_unmatched"`
	RefCited       int `json:"ref_cited"`
	RefFuzzy       int `json:"ref_fuzzy"`
	RefUncited     int `json:"ref_uncited"`
}

// AutoMatch is a learned cross-match applied during this run.
type AutoMatch struct {
	Citation  string `json:"citation"`
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

// Report is the structured result of one check run. The raw body and
// bibliography text ride along so the external verifier can work from the
// same snapshot the engine saw.
type Report struct {
	Paper              string      `json:"paper"`
	BodyText           string      `json:"body_text"`
	RefText            string      `json:"ref_text"`
	Stats              Stats       `json:"stats"`
	MatchedCitations   []string    `json:"matched_citations"`
	FuzzyMatches       []string    `json:"fuzzy_matches"`
	UnmatchedCitations []string    `json:"unmatched_citations"`
	UncitedReferences  []string    `json:"uncited_references"`
	CitationSet        []string    `json:"citation_set"`
	RefSet             []string    `json:"ref_set"`
	AutoMatches        []AutoMatch `json:"auto_matches,omitempty"`
}

// SortedUnique sorts a string list and removes duplicates, for stable
// report output.
func SortedUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

// WriteSummary renders the human-readable run summary.
func (r *Report) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Body citations - exact match (GREEN):   %d\n", r.Stats.BodyMatched)
	fmt.Fprintf(w, "Body citations - fuzzy match (CYAN):    %d\n", r.Stats.BodyFuzzy)
	fmt.Fprintf(w, "Body citations - missing (YELLOW):      %d\n", r.Stats.BodyUnmatched)

	if len(r.UnmatchedCitations) > 0 {
		fmt.Fprintf(w, "\n  Citations missing from references:\n")
		for _, item := range r.UnmatchedCitations {
			fmt.Fprintf(w, "    - %s\n", item)
		}
	}

	fmt.Fprintf(w, "\nReferences - cited (GREEN):             %d\n", r.Stats.RefCited)
	fmt.Fprintf(w, "References - fuzzy match (CYAN):        %d\n", r.Stats.RefFuzzy)
	fmt.Fprintf(w, "References - not cited (RED):           %d\n", r.Stats.RefUncited)

	if len(r.FuzzyMatches) > 0 {
		fmt.Fprintf(w, "\n  Fuzzy matches:\n")
		for _, item := range r.FuzzyMatches {
			fmt.Fprintf(w, "    ~ %s\n", item)
		}
	}

	if len(r.UncitedReferences) > 0 {
		fmt.Fprintf(w, "\n  Uncited references:\n")
		for _, item := range r.UncitedReferences {
			fmt.Fprintf(w, "    - %s\n", item)
		}
	}

	if len(r.AutoMatches) > 0 {
		fmt.Fprintf(w, "\n  Learned cross-matches applied:\n")
		for _, am := range r.AutoMatches {
			fmt.Fprintf(w, "    %s <-> %s (%s)\n", am.Citation, am.Reference, am.Reason)
		}
	}
}
