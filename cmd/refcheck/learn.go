package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refcheck/refcheck/internal/learned"
)

var learnReason string

func init() {
	learnAddMatchCmd.Flags().StringVar(&learnReason, "reason", "", "Why this pairing was confirmed")
	learnCmd.AddCommand(learnListCmd)
	learnCmd.AddCommand(learnAddNoiseCmd)
	learnCmd.AddCommand(learnAddMatchCmd)
	rootCmd.AddCommand(learnCmd)
}

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Manage learned patterns",
	Long: `Manage the learned-pattern store: noise words and cross-matches
confirmed by external verification. The check engine only reads the
store; this command group is the confirmation workflow that writes it.`,
}

var learnListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the learned-pattern store",
	RunE:  runLearnList,
}

var learnAddNoiseCmd = &cobra.Command{
	Use:   "add-noise <word>",
	Short: "Record a word as citation noise",
	Args:  cobra.ExactArgs(1),
	RunE:  runLearnAddNoise,
}

var learnAddMatchCmd = &cobra.Command{
	Use:   "add-match <author> <cite-year> <ref-year>",
	Short: "Record a confirmed citation-reference pairing",
	Long: `Record that citations of <author> (<cite-year>) refer to the
bibliography entry <author> (<ref-year>). The pairing only fires on runs
where both sides appear.`,
	Args: cobra.ExactArgs(3),
	RunE: runLearnAddMatch,
}

func runLearnList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	store := learned.Load(cfg.LearnedPath)

	if humanOutput {
		outputHuman("Noise words (%d):\n", len(store.NoiseWords))
		for _, w := range store.NoiseWords {
			outputHuman("  %s\n", w)
		}
		outputHuman("\nCross-matches (%d):\n", len(store.CrossMatches))
		for _, cm := range store.CrossMatches {
			outputHuman("  %s (%s) <-> %s (%s): %s\n", cm.Author, cm.CiteYear, cm.Author, cm.RefYear, cm.Reason)
		}
	} else {
		outputJSON(store)
	}
	return nil
}

func runLearnAddNoise(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	store := learned.Load(cfg.LearnedPath)

	word := strings.ToLower(strings.TrimSpace(args[0]))
	if word == "" {
		exitWithError(ExitDataError, "noise word cannot be empty")
	}
	for _, w := range store.NoiseWords {
		if w == word {
			exitWithError(ExitDataError, "noise word already recorded: %s", word)
		}
	}
	store.NoiseWords = append(store.NoiseWords, word)

	if err := saveStore(store, cfg.LearnedPath); err != nil {
		exitWithError(ExitError, "saving learned patterns: %v", err)
	}

	if humanOutput {
		outputHuman("Recorded noise word: %s\n", word)
	} else {
		outputJSON(UpdateResponse{Status: "ok", Key: "noise_word", Value: word})
	}
	return nil
}

func runLearnAddMatch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	store := learned.Load(cfg.LearnedPath)

	cm := learned.CrossMatch{
		Author:   strings.TrimSpace(args[0]),
		CiteYear: strings.TrimSpace(args[1]),
		RefYear:  strings.TrimSpace(args[2]),
		Reason:   learnReason,
	}
	if cm.Author == "" || cm.CiteYear == "" || cm.RefYear == "" {
		exitWithError(ExitDataError, "author and both years are required")
	}
	store.CrossMatches = append(store.CrossMatches, cm)

	if err := saveStore(store, cfg.LearnedPath); err != nil {
		exitWithError(ExitError, "saving learned patterns: %v", err)
	}

	value := cm.Author + " (" + cm.CiteYear + ") <-> (" + cm.RefYear + ")"
	if humanOutput {
		outputHuman("Recorded cross-match: %s\n", value)
	} else {
		outputJSON(UpdateResponse{Status: "ok", Key: "cross_match", Value: value})
	}
	return nil
}

// saveStore writes the learned store, creating its directory first.
func saveStore(store *learned.Store, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return store.Save(path)
}
