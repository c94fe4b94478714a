package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/jira"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/internal/sync"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source project and sync new issues as they appear",
	Long: `Poll the source project and mirror issues as they enter your
in-progress set.

On startup every matching issue is synced once (already-mirrored issues
are skipped), then the watch polls every POLL_INTERVAL seconds and syncs
only newly appearing issues. Issues leaving the set are logged. Stop
with Ctrl+C; a pass already in flight finishes first.

Example:
  graft watch
  graft watch --interval 60 --no-input`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		interval, err := cmd.Flags().GetInt("interval")
		if err != nil {
			return err
		}
		if interval > 0 {
			cfg.Sync.PollInterval = interval
		}
		noInput, err := cmd.Flags().GetBool("no-input")
		if err != nil {
			return err
		}

		if cfg.LogDir != "" {
			closer, err := logging.SetupFileLogger(cfg.LogDir, "watch", logLevel(cmd))
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
		watcher := sync.NewWatcher(cfg, jiraClient, workflow)

		return watcher.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().Int("interval", 0, "poll interval in seconds (default POLL_INTERVAL)")
	watchCmd.Flags().Bool("no-input", false, "skip the interactive prompt and use configured defaults")
}
