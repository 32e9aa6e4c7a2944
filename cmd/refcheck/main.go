// Package main provides the refcheck CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/refcheck/refcheck/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Citation and reference checker for academic manuscripts",
	Long: `refcheck cross-checks a manuscript's in-text citations against its
reference list, marks every citation and bibliography entry by match
quality, and emits a structured report for downstream verification.

All commands output JSON by default for easy integration with AI agents
and other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for REFCHECK_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustLoadConfig loads the global config, applying REFCHECK_* environment
// overrides, or exits on a malformed config file.
func mustLoadConfig() *config.GlobalConfig {
	cfg, err := config.LoadGlobal()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if p := os.Getenv("REFCHECK_LEARNED_PATH"); p != "" {
		cfg.LearnedPath = p
	}
	if d := os.Getenv("REFCHECK_HISTORY_DIR"); d != "" {
		cfg.HistoryDir = d
	}
	return cfg
}
