package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/jira"
	"github.com/hasuim/graft/internal/naming"
)

// previewCmd prints the branch name an issue would get, without creating
// anything. The bare name goes to stdout so it can be piped into git.
var previewCmd = &cobra.Command{
	Use:   "preview KEY",
	Short: "Print the branch name an issue would get",
	Example: `  graft preview SSCVE-4625
  git checkout -b "$(graft preview SSCVE-4625)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		jiraClient, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		issue, err := jiraClient.GetIssue(cmd.Context(), strings.ToUpper(args[0]))
		if err != nil {
			return err
		}

		fmt.Println(naming.BranchName(issue, namingConfig(cfg)))
		return nil
	},
}
