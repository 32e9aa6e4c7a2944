package main

import (
	"strings"

	"github.com/spf13/cobra"

	refcontext "github.com/refcheck/refcheck/internal/context"
	"github.com/refcheck/refcheck/internal/document"
	"github.com/refcheck/refcheck/internal/extract"
)

func init() {
	rootCmd.AddCommand(contextCmd)
}

var contextCmd = &cobra.Command{
	Use:   "context <manuscript>",
	Short: "Extract citation-sentence pairs for semantic verification",
	Long: `Extract every sentence that cites a work, paired with the full text
of the cited reference. The pair list is the working set for an external
semantic verifier that checks claims against sources.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

// ContextResult is the response for the context command.
type ContextResult struct {
	Paper      string                              `json:"paper"`
	Sentences  []refcontext.Sentence               `json:"sentences"`
	Pairs      []refcontext.Pair                   `json:"pairs"`
	References map[string]refcontext.ReferenceInfo `json:"references"`
}

func runContext(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "loading manuscript: %v", err)
	}

	texts := doc.ParagraphTexts()
	headingIdx := extract.HeadingIndex(texts)
	bodyText := strings.Join(texts[:headingIdx], "\n\n")

	sentences := refcontext.Sentences(bodyText)
	entries := refcontext.ReferenceEntries(texts, headingIdx)
	pairs := refcontext.BuildPairs(sentences, entries)
	refs := refcontext.UniqueReferences(pairs)

	if humanOutput {
		outputHuman("Citing sentences: %d\nSentence-reference pairs: %d\nUnique references: %d\n\n",
			len(sentences), len(pairs), len(refs))
		for _, p := range pairs {
			outputHuman("%s\n  -> %s\n\n", p.Citation, p.Sentence)
		}
	} else {
		outputJSON(ContextResult{
			Paper:      doc.Name,
			Sentences:  sentences,
			Pairs:      pairs,
			References: refs,
		})
	}

	return nil
}
