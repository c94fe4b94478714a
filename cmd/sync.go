package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/jira"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/internal/sync"
	"github.com/hasuim/graft/pkg/models"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync source issues and mint branches for to-do work",
	Long: `Run the two-phase batch.

Phase 1 mirrors your in-progress issues from the source project into the
target project, skipping issues that were already mirrored. Phase 2
lists your target-project issues still in the to-do status and creates a
branch for each one, skipping branches that already exist.

Before Phase 1 the command asks for the parent epic and fix version to
stamp on new mirrors; --no-input accepts the configured defaults.
--dry-run previews Phase 2 without creating branches; Phase 1 still
runs.

Example:
  graft sync
  graft sync --dry-run
  graft sync --branches-only --no-input`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}
		noInput, err := cmd.Flags().GetBool("no-input")
		if err != nil {
			return err
		}
		issuesOnly, err := cmd.Flags().GetBool("issues-only")
		if err != nil {
			return err
		}
		branchesOnly, err := cmd.Flags().GetBool("branches-only")
		if err != nil {
			return err
		}
		if !issuesOnly {
			if err := config.ValidateBranchConfig(cfg); err != nil {
				return err
			}
		}

		if cfg.LogDir != "" {
			closer, err := logging.SetupFileLogger(cfg.LogDir, "sync", logLevel(cmd))
			if err != nil {
				return fmt.Errorf("failed to set up log file: %v", err)
			}
			defer closer.Close()
		}

		jiraClient, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		ctx := cmd.Context()

		if !branchesOnly {
			if !noInput {
				parent, fixVersion, err := promptSyncSettings(ctx, cfg.Sync.ParentKey, cfg.Sync.FixVersion)
				if err != nil {
					return err
				}
				cfg.Sync.ParentKey = parent
				cfg.Sync.FixVersion = fixVersion
			}

			fixVersionID, err := resolveFixVersion(ctx, jiraClient, cfg)
			if err != nil {
				return err
			}

			detector, err := sync.NewDetector(cfg, jiraClient)
			if err != nil {
				return err
			}
			workflow := sync.NewWorkflow(cfg, jiraClient, detector, fixVersionID)

			logging.Info("phase 1: syncing issues",
				"source", cfg.Jira.SourceProject, "target", cfg.Jira.ProjectKey)
			candidates, err := jiraClient.CandidateIssues(ctx, cfg.Jira.SourceProject)
			if err != nil {
				return err
			}
			summary := workflow.SyncAll(ctx, candidates)
			fmt.Println(renderSummary("issue sync", summary))
		}

		if !issuesOnly {
			host, err := newHost(cfg)
			if err != nil {
				return err
			}
			brancher := sync.NewBrancher(cfg, jiraClient, host, dryRun)

			logging.Info("phase 2: creating branches",
				"project", cfg.Jira.ProjectKey, "dry_run", dryRun)
			summary, err := brancher.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Println(renderSummary("branch creation", summary))
		}

		return nil
	},
}

// resolveFixVersion maps the configured fix version name to its ID. An
// unknown version is reported and dropped so issues are still created.
func resolveFixVersion(ctx context.Context, client *jira.Client, cfg *config.Config) (string, error) {
	if cfg.Sync.FixVersion == "" {
		return "", nil
	}
	id, err := client.FixVersionID(ctx, cfg.Jira.ProjectKey, cfg.Sync.FixVersion)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			logging.Warn("fix version not found, creating issues without one",
				"project", cfg.Jira.ProjectKey, "version", cfg.Sync.FixVersion)
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func init() {
	syncCmd.Flags().Bool("dry-run", false, "preview branch creation without creating anything")
	syncCmd.Flags().Bool("no-input", false, "skip the interactive prompt and use configured defaults")
	syncCmd.Flags().Bool("issues-only", false, "run only the issue sync phase")
	syncCmd.Flags().Bool("branches-only", false, "run only the branch creation phase")
	syncCmd.MarkFlagsMutuallyExclusive("issues-only", "branches-only")
}
