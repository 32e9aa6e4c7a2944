package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  refcheck config                            # Show all config
  refcheck config learned-path               # Get specific value
  refcheck config batch-size 20              # Set value

Keys:
  learned-path  Path to the learned-pattern store
  history-dir   Directory for run-history files
  batch-size    Default verification batch size
  comments      Attach reviewer comments by default (true/false)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	LearnedPath string `json:"learned_path"`
	HistoryDir  string `json:"history_dir"`
	BatchSize   int    `json:"batch_size"`
	Comments    bool   `json:"comments"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			outputHuman("learned-path: %s\n", cfg.LearnedPath)
			outputHuman("history-dir:  %s\n", cfg.HistoryDir)
			outputHuman("batch-size:   %d\n", cfg.BatchSize)
			outputHuman("comments:     %t\n", cfg.Comments)
		} else {
			outputJSON(ConfigResponse{
				LearnedPath: cfg.LearnedPath,
				HistoryDir:  cfg.HistoryDir,
				BatchSize:   cfg.BatchSize,
				Comments:    cfg.Comments,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		var value string
		switch key {
		case "learned-path":
			value = cfg.LearnedPath
		case "history-dir":
			value = cfg.HistoryDir
		case "batch-size":
			value = strconv.Itoa(cfg.BatchSize)
		case "comments":
			value = strconv.FormatBool(cfg.Comments)
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			outputHuman("%s\n", value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	switch key {
	case "learned-path":
		cfg.LearnedPath = value
	case "history-dir":
		cfg.HistoryDir = value
	case "batch-size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			exitWithError(ExitError, "batch-size must be a positive integer, got %q", value)
		}
		cfg.BatchSize = n
	case "comments":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "comments must be true or false, got %q", value)
		}
		cfg.Comments = b
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}

	return nil
}

// normalizeKey converts key formats (batch-size, batch_size) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
