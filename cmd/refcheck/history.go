package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/refcheck/refcheck/internal/storage"
)

var (
	historyPaper string
	historyLimit int
)

func init() {
	historyCmd.Flags().StringVar(&historyPaper, "paper", "", "Only show runs for this manuscript")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past check runs",
	Long: `List past check runs, newest first. The JSONL history file is the
source of truth; the query cache is rebuilt from it on every invocation.`,
	RunE: runHistory,
}

// HistoryResult is the response for the history command.
type HistoryResult struct {
	Total int                 `json:"total"`
	Runs  []storage.RunRecord `json:"runs"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	dbPath := cfg.CacheDBPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening history cache: %v", err)
	}
	defer db.Close()

	total, err := db.RebuildFromJSONL(cfg.HistoryPath())
	if err != nil {
		exitWithError(ExitDataError, "rebuilding history cache: %v", err)
	}

	runs, err := db.List(historyPaper, historyLimit)
	if err != nil {
		exitWithError(ExitError, "listing runs: %v", err)
	}

	if humanOutput {
		if len(runs) == 0 {
			outputHuman("No check runs recorded.\n")
			return nil
		}
		for _, r := range runs {
			outputHuman("%s  %s\n", r.CheckedAt.Format("2006-01-02 15:04"), r.Paper)
			outputHuman("    citations %d (exact %d, fuzzy %d, missing %d); references %d (cited %d, fuzzy %d, uncited %d)\n",
				r.Stats.RegexCitations, r.Stats.BodyMatched, r.Stats.BodyFuzzy, r.Stats.BodyUnmatched,
				r.Stats.References, r.Stats.RefCited, r.Stats.RefFuzzy, r.Stats.RefUncited)
		}
		outputHuman("\n%d runs total\n", total)
	} else {
		if runs == nil {
			runs = []storage.RunRecord{}
		}
		outputJSON(HistoryResult{Total: total, Runs: runs})
	}

	return nil
}
