package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refcheck/refcheck/internal/document"
	"github.com/refcheck/refcheck/internal/engine"
	"github.com/refcheck/refcheck/internal/learned"
	"github.com/refcheck/refcheck/internal/report"
	"github.com/refcheck/refcheck/internal/storage"
)

var (
	checkComments  bool
	checkNoHistory bool
)

func init() {
	checkCmd.Flags().BoolVar(&checkComments, "add-comments", false, "Attach reviewer comments to unmatched spans")
	checkCmd.Flags().BoolVar(&checkNoHistory, "no-history", false, "Skip recording this run in the history log")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <manuscript>",
	Short: "Check in-text citations against the reference list",
	Long: `Check a manuscript's in-text citations against its reference list.

Writes a marked copy (<stem>_REF_CHECK.txt) with every citation and
bibliography entry colored by match quality, and a structured report
(<stem>_RESULTS.json) for downstream verification.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status     string       `json:"status"`
	Paper      string       `json:"paper"`
	MarkedPath string       `json:"marked_path"`
	ReportPath string       `json:"report_path"`
	Stats      report.Stats `json:"stats"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	doc, err := document.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "loading manuscript: %v", err)
	}

	store := learned.Load(cfg.LearnedPath)

	rep := engine.Run(doc, engine.Options{
		Learned:  store,
		Comments: checkComments || cfg.Comments,
	})

	dir := filepath.Dir(args[0])
	stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	markedPath := filepath.Join(dir, stem+"_REF_CHECK.txt")
	reportPath := filepath.Join(dir, stem+"_RESULTS.json")

	if err := document.Save(doc, markedPath); err != nil {
		exitWithError(ExitError, "saving marked document: %v", err)
	}
	if err := rep.WriteJSON(reportPath); err != nil {
		exitWithError(ExitError, "saving results: %v", err)
	}

	if !checkNoHistory {
		rec := storage.NewRunRecord(rep.Paper, rep.Stats, rep.UnmatchedCitations, rep.UncitedReferences)
		if err := storage.Append(cfg.HistoryPath(), rec); err != nil {
			// History is bookkeeping, not the deliverable.
			fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
		}
	}

	if humanOutput {
		rep.WriteSummary(os.Stdout)
		outputHuman("\nMarked document: %s\nResults: %s\n", markedPath, reportPath)
	} else {
		outputJSON(CheckResult{
			Status:     "ok",
			Paper:      rep.Paper,
			MarkedPath: markedPath,
			ReportPath: reportPath,
			Stats:      rep.Stats,
		})
	}

	return nil
}
