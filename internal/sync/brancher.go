package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/internal/naming"
	"github.com/hasuim/graft/pkg/models"
)

// Brancher mints a branch for every to-do issue in the target project.
type Brancher struct {
	Tracker Tracker
	Host    Host

	Project      string
	TodoStatusID string
	BaseRef      string
	Naming       naming.Config

	// DryRun logs what would be created instead of creating it. The
	// existence probe still runs, so existing branches report as skipped.
	DryRun bool
}

// NewBrancher wires a brancher from the configuration.
func NewBrancher(cfg *config.Config, tracker Tracker, host Host, dryRun bool) *Brancher {
	return &Brancher{
		Tracker:      tracker,
		Host:         host,
		Project:      cfg.Jira.ProjectKey,
		TodoStatusID: cfg.Jira.TodoStatusID,
		BaseRef:      cfg.Branch.BaseRef,
		Naming: naming.Config{
			MaxSlugLength:   cfg.Branch.MaxSlugLength,
			MaxBranchLength: cfg.Branch.MaxBranchLength,
			PrefixOverrides: cfg.Branch.PrefixOverrides,
		},
		DryRun: dryRun,
	}
}

// Run fetches the to-do issues and creates one branch per issue, skipping
// names that already exist. The returned error is only set when the issue
// query itself fails; per-branch failures are counted and logged.
func (b *Brancher) Run(ctx context.Context) (Summary, error) {
	issues, err := b.Tracker.TodoIssues(ctx, b.Project, b.TodoStatusID)
	if err != nil {
		return Summary{}, fmt.Errorf("list to-do issues: %w", err)
	}
	if len(issues) == 0 {
		logging.Info("no to-do issues", "project", b.Project)
		return Summary{}, nil
	}

	var summary Summary
	for _, issue := range issues {
		name := naming.BranchName(issue, b.Naming)
		logging.Info("to-do issue", "key", issue.Key, "summary", issue.Summary, "branch", name)

		exists, err := b.Host.BranchExists(ctx, name)
		if err != nil {
			logging.Error("branch lookup failed", "key", issue.Key, "branch", name, "error", err)
			summary.Failed++
			continue
		}
		if exists {
			logging.Skip("branch already exists", "key", issue.Key, "branch", name)
			summary.Skipped++
			continue
		}

		if b.DryRun {
			logging.Info("would create branch", "key", issue.Key, "branch", name, "ref", b.BaseRef)
			summary.Created++
			continue
		}

		branch, err := b.Host.CreateBranch(ctx, name, b.BaseRef)
		if err != nil {
			var alreadyExists *models.AlreadyExistsError
			if errors.As(err, &alreadyExists) {
				logging.Skip("branch already exists", "key", issue.Key, "branch", name)
				summary.Skipped++
				continue
			}
			logging.Error("branch creation failed", "key", issue.Key, "branch", name, "error", err)
			summary.Failed++
			continue
		}
		logging.OK("branch created", "key", issue.Key, "branch", branch.Name, "url", branch.WebURL)
		summary.Created++
	}
	return summary, nil
}
