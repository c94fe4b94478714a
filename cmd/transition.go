package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/jira"
	"github.com/hasuim/graft/internal/logging"
)

var transitionCmd = &cobra.Command{
	Use:   "transition KEY STATUS",
	Short: "Move an issue to another status",
	Long: `Move a JIRA issue to another status by transition name.

The name is matched case-insensitively against the transitions currently
available on the issue. Use "graft transitions KEY" to see them.

Example:
  graft transition SSCVE-4625 "In Progress"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		jiraClient, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		ctx := cmd.Context()
		key := strings.ToUpper(args[0])

		if err := jiraClient.TransitionIssue(ctx, key, args[1]); err != nil {
			return err
		}
		logging.OK("issue transitioned", "issue", key, "transition", args[1])

		issue, err := jiraClient.GetIssue(ctx, key)
		if err != nil {
			logging.Warn("failed to re-fetch issue after transition", "issue", key, "error", err)
			return nil
		}
		fmt.Println(renderIssue(issue, jiraClient.BrowseURL(key)))
		return nil
	},
}
