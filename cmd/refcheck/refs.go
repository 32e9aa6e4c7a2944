package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refcheck/refcheck/internal/apa"
	"github.com/refcheck/refcheck/internal/document"
	"github.com/refcheck/refcheck/internal/export"
	"github.com/refcheck/refcheck/internal/extract"
	"github.com/refcheck/refcheck/internal/text"
)

var (
	refsRIS       bool
	refsBibTeX    bool
	refsBatchSize int
)

func init() {
	refsCmd.Flags().BoolVar(&refsRIS, "ris", false, "Output RIS records for reference managers")
	refsCmd.Flags().BoolVar(&refsBibTeX, "bibtex", false, "Output BibTeX entries")
	refsCmd.Flags().IntVar(&refsBatchSize, "batch-size", 0, "Verification batch size (default from config)")
	rootCmd.AddCommand(refsCmd)
}

var refsCmd = &cobra.Command{
	Use:   "refs <manuscript>",
	Short: "Parse the reference list into structured records",
	Long: `Parse every bibliography entry into a structured record: authors,
year, title, type, journal, volume, pages, publisher, DOI.

Outputs parsed JSON by default; --ris and --bibtex emit interchange
records for Zotero, Mendeley, and EndNote. --batch-size groups entries
into numbered batches for piecewise external verification.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefs,
}

// RefBatch is one verification batch of parsed references.
type RefBatch struct {
	BatchNum   int             `json:"batch_num"`
	References []apa.Reference `json:"references"`
}

// RefsResult is the response for the refs command.
type RefsResult struct {
	Paper   string     `json:"paper"`
	Count   int        `json:"count"`
	Batches []RefBatch `json:"batches"`
}

func runRefs(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "loading manuscript: %v", err)
	}

	refs := parseBibliography(doc)
	if len(refs) == 0 {
		exitWithError(ExitDataError, "no reference entries found in %s", args[0])
	}

	switch {
	case refsRIS:
		fmt.Print(export.ToRISList(refs))
	case refsBibTeX:
		fmt.Print(export.ToBibTeXList(refs))
	case humanOutput:
		for i, r := range refs {
			author, year := apa.HeadLabel(r.FullText)
			outputHuman("%3d. %s (%s) [%s]\n", i+1, author, year, r.Type)
			if r.Title != "" {
				outputHuman("     %s\n", r.Title)
			}
		}
	default:
		batchSize := refsBatchSize
		if batchSize <= 0 {
			batchSize = mustLoadConfig().BatchSize
		}
		result := RefsResult{Paper: doc.Name, Count: len(refs)}
		for i := 0; i < len(refs); i += batchSize {
			end := min(i+batchSize, len(refs))
			result.Batches = append(result.Batches, RefBatch{
				BatchNum:   len(result.Batches) + 1,
				References: refs[i:end],
			})
		}
		outputJSON(result)
	}

	return nil
}

// parseBibliography parses every entry paragraph after the reference
// heading. Paragraphs without a year parenthetical are not entries.
func parseBibliography(doc *document.Document) []apa.Reference {
	texts := doc.ParagraphTexts()
	headingIdx := extract.HeadingIndex(texts)

	var refs []apa.Reference
	for i := headingIdx + 1; i < len(texts); i++ {
		entry := text.NormalizeForSet(strings.TrimSpace(texts[i]))
		if entry == "" || extract.IsHeading(entry) {
			continue
		}
		if extract.FirstYearParen(entry) == nil {
			continue
		}
		refs = append(refs, apa.Parse(entry))
	}
	return refs
}
