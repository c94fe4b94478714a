package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/jira"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/internal/naming"
	"github.com/hasuim/graft/pkg/models"
)

var branchCmd = &cobra.Command{
	Use:   "branch KEY",
	Short: "Create a branch for an existing issue",
	Long: `Create a branch for an existing JIRA issue.

The branch name is derived from the issue type, key and summary, for
example bugfix/SSCVE-101-fix-login-error. The key is uppercased before
lookup. A branch that already exists is reported and counts as success.

Example:
  graft branch SSCVE-4625
  graft branch sscve-4625 --ref main`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		ref, err := cmd.Flags().GetString("ref")
		if err != nil {
			return err
		}
		if ref == "" {
			ref = cfg.Branch.BaseRef
		}
		if err := config.ValidateBranchConfig(cfg); err != nil {
			return err
		}

		key := strings.ToUpper(args[0])

		jiraClient, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		ctx := cmd.Context()
		issue, err := jiraClient.GetIssue(ctx, key)
		if err != nil {
			return err
		}

		name := naming.BranchName(issue, namingConfig(cfg))
		logging.Info("creating branch", "issue", key, "branch", name, "ref", ref)

		host, err := newHost(cfg)
		if err != nil {
			return err
		}

		branch, err := host.CreateBranch(ctx, name, ref)
		if err != nil {
			var alreadyExists *models.AlreadyExistsError
			if errors.As(err, &alreadyExists) {
				logging.Skip("branch already exists", "branch", name)
				fmt.Println(renderBranch(models.Branch{Name: name, IssueKey: key}))
				return nil
			}
			return err
		}
		branch.IssueKey = key

		logging.OK("branch created", "branch", branch.Name, "url", branch.WebURL)
		fmt.Println(renderBranch(branch))
		return nil
	},
}

func init() {
	branchCmd.Flags().String("ref", "", "base ref to branch from (default BRANCH_BASE_REF)")
}
