package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/jira"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/internal/naming"
	"github.com/hasuim/graft/pkg/models"
)

var createCmd = &cobra.Command{
	Use:   "create SUMMARY",
	Short: "Create an issue and its branch in one step",
	Long: `Create a JIRA issue in the target project and mint its branch.

The issue type defaults to Task. After creation the issue can be moved
with --transition, then the branch is created from the configured base
ref (override with --ref). If the branch already exists the command
still succeeds.

Example:
  graft create "Fix login error"
  graft create "Add OAuth2 support" --type Story --label auth --transition "In Progress"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		issueType, err := cmd.Flags().GetString("type")
		if err != nil {
			return err
		}
		description, err := cmd.Flags().GetString("description")
		if err != nil {
			return err
		}
		labels, err := cmd.Flags().GetStringArray("label")
		if err != nil {
			return err
		}
		transition, err := cmd.Flags().GetString("transition")
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

		jiraClient, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		ctx := cmd.Context()
		issue, err := jiraClient.CreateIssue(ctx, models.CreateIssueRequest{
			ProjectKey:  cfg.Jira.ProjectKey,
			Summary:     args[0],
			TypeName:    issueType,
			Description: description,
			Labels:      labels,
		})
		if err != nil {
			return err
		}
		logging.OK("issue created", "issue", issue.Key, "type", issueType)

		if transition != "" {
			if err := jiraClient.TransitionIssue(ctx, issue.Key, transition); err != nil {
				fmt.Println(renderIssue(issue, jiraClient.BrowseURL(issue.Key)))
				return fmt.Errorf("issue %s created but transition failed: %w", issue.Key, err)
			}
			logging.OK("issue transitioned", "issue", issue.Key, "transition", transition)
			if fresh, err := jiraClient.GetIssue(ctx, issue.Key); err == nil {
				issue = fresh
			}
		}
		fmt.Println(renderIssue(issue, jiraClient.BrowseURL(issue.Key)))

		name := naming.BranchName(issue, namingConfig(cfg))
		logging.Info("creating branch", "issue", issue.Key, "branch", name, "ref", ref)

		host, err := newHost(cfg)
		if err != nil {
			return err
		}

		branch, err := host.CreateBranch(ctx, name, ref)
		if err != nil {
			var alreadyExists *models.AlreadyExistsError
			if errors.As(err, &alreadyExists) {
				logging.Skip("branch already exists", "branch", name)
				fmt.Println(renderBranch(models.Branch{Name: name, IssueKey: issue.Key}))
				return nil
			}
			return fmt.Errorf("issue %s created but branch creation failed: %w", issue.Key, err)
		}
		branch.IssueKey = issue.Key

		logging.OK("branch created", "branch", branch.Name, "url", branch.WebURL)
		fmt.Println(renderBranch(branch))
		return nil
	},
}

func init() {
	createCmd.Flags().String("type", "Task", "issue type name")
	createCmd.Flags().String("description", "", "issue description")
	createCmd.Flags().StringArray("label", nil, "label to add, repeatable")
	createCmd.Flags().String("transition", "", "transition to apply after creation (e.g. 'In Progress')")
	createCmd.Flags().String("ref", "", "base ref to branch from (default BRANCH_BASE_REF)")
}
