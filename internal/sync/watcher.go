package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/pkg/models"
)

// Watcher polls the source project and mirrors issues as they enter the
// watched set.
type Watcher struct {
	Tracker  Tracker
	Workflow *Workflow

	SourceProject string
	Interval      time.Duration
}

// NewWatcher wires a watcher from the configuration.
func NewWatcher(cfg *config.Config, tracker Tracker, workflow *Workflow) *Watcher {
	return &Watcher{
		Tracker:       tracker,
		Workflow:      workflow,
		SourceProject: cfg.Jira.SourceProject,
		Interval:      time.Duration(cfg.Sync.PollInterval) * time.Second,
	}
}

// Run loops until ctx is canceled. The first poll both syncs the snapshot
// and seeds the known set; afterwards only issues newly entering the set
// are synced. Cancellation is observed between ticks; a tick that has
// started always runs to completion.
func (w *Watcher) Run(ctx context.Context) error {
	logging.Info("watch started", "project", w.SourceProject, "interval", w.Interval)

	issues, err := w.Tracker.CandidateIssues(ctx, w.SourceProject)
	if err != nil {
		return fmt.Errorf("initial poll: %w", err)
	}

	summary := w.Workflow.SyncAll(context.WithoutCancel(ctx), issues)
	logging.Info("initial sync done",
		"issues", len(issues),
		"created", summary.Created,
		"skipped", summary.Skipped,
		"failed", summary.Failed)

	known := make(map[string]models.Issue, len(issues))
	for _, issue := range issues {
		known[issue.Key] = issue
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("watch stopped", "known", len(known))
			return ctx.Err()
		case <-ticker.C:
		}

		// A cancel arriving mid-tick is picked up at the next select.
		tickCtx := context.WithoutCancel(ctx)

		current, err := w.Tracker.CandidateIssues(tickCtx, w.SourceProject)
		if err != nil {
			logging.Warn("poll failed, retrying next tick", "error", err)
			continue
		}

		currentSet := make(map[string]models.Issue, len(current))
		var added []models.Issue
		for _, issue := range current {
			currentSet[issue.Key] = issue
			if _, ok := known[issue.Key]; !ok {
				added = append(added, issue)
			}
		}

		if len(added) == 0 {
			logging.Debug("no new issues", "known", len(currentSet))
		} else {
			for _, issue := range added {
				logging.Info("new issue detected", "key", issue.Key, "summary", issue.Summary)
			}
			summary := w.Workflow.SyncAll(tickCtx, added)
			logging.Info("tick sync done",
				"created", summary.Created,
				"skipped", summary.Skipped,
				"failed", summary.Failed)
		}

		for key := range known {
			if _, ok := currentSet[key]; !ok {
				logging.Info("issue left the watched set", "key", key)
			}
		}

		known = currentSet
	}
}
