package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/refcheck/refcheck/internal/document"
)

func init() {
	rootCmd.AddCommand(annotateCmd)
}

var annotateCmd = &cobra.Command{
	Use:   "annotate <marked-doc> <findings.json>",
	Short: "Apply external-verifier findings as reviewer comments",
	Long: `Apply findings from an external semantic verification pass as
reviewer comments on an already-marked document. Each finding is located
by substring search; findings whose text is not found are skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnnotate,
}

// Findings is the external verifier's output format.
type Findings struct {
	CrossMatches []struct {
		Citation  string `json:"citation"`
		Reference string `json:"reference"`
		Reason    string `json:"reason"`
	} `json:"cross_matches"`
	FalsePositives []struct {
		Text   string `json:"text"`
		Reason string `json:"reason"`
	} `json:"false_positives"`
	FuzzyComments []struct {
		Citation string `json:"citation"`
		Comment  string `json:"comment"`
	} `json:"fuzzy_comments"`
	PossiblyCitedRefs []struct {
		Reference string `json:"reference"`
		Evidence  string `json:"evidence"`
	} `json:"possibly_cited_refs"`
	Additional []struct {
		Text string `json:"text"`
		Note string `json:"note"`
	} `json:"additional"`
}

// AnnotateResult is the response for the annotate command.
type AnnotateResult struct {
	Status string `json:"status"`
	Added  int    `json:"added"`
	Path   string `json:"path"`
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	doc, err := document.LoadText(args[0])
	if err != nil {
		exitWithError(ExitDataError, "loading marked document: %v", err)
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		exitWithError(ExitDataError, "reading findings: %v", err)
	}
	var findings Findings
	if err := json.Unmarshal(data, &findings); err != nil {
		exitWithError(ExitDataError, "parsing findings: %v", err)
	}

	added := 0
	for _, cm := range findings.CrossMatches {
		comment := fmt.Sprintf("Possible match: %s <-> %s (%s)", cm.Citation, cm.Reference, cm.Reason)
		if commentAt(doc, searchStem(cm.Citation), comment) {
			added++
		}
	}
	for _, fp := range findings.FalsePositives {
		reason := fp.Reason
		if reason == "" {
			reason = "Not a real citation"
		}
		if commentAt(doc, searchStem(fp.Text), "Not a real citation: "+reason) {
			added++
		}
	}
	for _, fc := range findings.FuzzyComments {
		if fc.Citation != "" && fc.Comment != "" {
			if commentAt(doc, searchStem(fc.Citation), fc.Comment) {
				added++
			}
		}
	}
	for _, pr := range findings.PossiblyCitedRefs {
		if pr.Reference != "" && pr.Evidence != "" {
			if commentAt(doc, searchStem(pr.Reference), "Possibly cited: "+pr.Evidence) {
				added++
			}
		}
	}
	for _, item := range findings.Additional {
		if item.Text != "" && item.Note != "" {
			if commentAt(doc, searchStem(item.Text), item.Note) {
				added++
			}
		}
	}

	if err := document.Save(doc, args[0]); err != nil {
		exitWithError(ExitError, "saving annotated document: %v", err)
	}

	if humanOutput {
		outputHuman("Added %d findings comments to %s\n", added, args[0])
	} else {
		outputJSON(AnnotateResult{Status: "ok", Added: added, Path: args[0]})
	}
	return nil
}

// searchStem reduces a finding label like "Freud (1912)" to the text to
// search for in the document.
func searchStem(label string) string {
	return strings.TrimSpace(strings.SplitN(label, "(", 2)[0])
}

// commentAt finds the first paragraph containing search and attaches a
// reviewer comment to that range. Returns false when search is empty or
// not found.
func commentAt(doc *document.Document, search, comment string) bool {
	if search == "" {
		return false
	}
	for _, p := range doc.Paragraphs {
		text := p.Text()
		idx := strings.Index(text, search)
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(text[:idx])
		end := start + utf8.RuneCountInString(search)
		p.CommentRange(start, end, document.Comment{
			Author: "refcheck (verifier)",
			Text:   comment,
		})
		return true
	}
	return false
}
