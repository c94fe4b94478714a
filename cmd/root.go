// Package cmd provides the command-line interface for the graft tool.
package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "graft mirrors JIRA issues across projects and mints matching branches",
	Long: `graft keeps two JIRA projects in step and turns issues into branches.

It mirrors in-progress issues from a source project into a target project
without creating duplicates, and derives deterministic branch names from
issue type, key and summary on GitLab or GitHub.

Configuration comes from environment variables; run any command with
--verbose for debug logging.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logging.SetupLogger(os.Stdout, logging.LevelDebug)
		}
	},
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// logLevel resolves the level for command-scoped loggers: the --verbose
// flag wins, then LOG_LEVEL, then info.
func logLevel(cmd *cobra.Command) logging.LogLevel {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logging.LevelDebug
	}
	if level := strings.ToLower(os.Getenv("LOG_LEVEL")); level != "" {
		return logging.LogLevel(level)
	}
	return logging.LevelInfo
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(transitionCmd)
	rootCmd.AddCommand(transitionsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
}
