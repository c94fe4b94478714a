package sync

import (
	"context"
	"fmt"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/pkg/models"
)

// Workflow mirrors source issues into the target project.
//
// Exactly one of LinkTypeID and MarkerPrefix is set. With LinkTypeID the
// mirror is linked back to its source after creation; with MarkerPrefix the
// mirror carries a marker label from the moment it is created.
type Workflow struct {
	Tracker  Tracker
	Detector Detector

	TargetProject string
	TargetTypeID  string

	LinkTypeID   string
	MarkerPrefix string

	AssigneeID   string
	ParentKey    string
	FixVersionID string
}

// NewWorkflow wires a workflow from the configuration. fixVersionID may be
// empty when no fix version is configured or its resolution failed.
func NewWorkflow(cfg *config.Config, tracker Tracker, detector Detector, fixVersionID string) *Workflow {
	w := &Workflow{
		Tracker:       tracker,
		Detector:      detector,
		TargetProject: cfg.Jira.ProjectKey,
		TargetTypeID:  cfg.Jira.TaskTypeID,
		AssigneeID:    cfg.Sync.AssigneeID,
		ParentKey:     cfg.Sync.ParentKey,
		FixVersionID:  fixVersionID,
	}
	if cfg.Sync.Detection == config.DetectionLabel {
		w.MarkerPrefix = cfg.Sync.LabelPrefix
	} else {
		w.LinkTypeID = cfg.Jira.LinkTypeID
	}
	return w
}

// SyncIssue mirrors one source issue. The duplicate check runs immediately
// before creation; a hit means nothing is written at all. A created mirror
// whose link could not be written survives with LinkPending set.
func (w *Workflow) SyncIssue(ctx context.Context, issue models.Issue) Result {
	result := Result{SourceKey: issue.Key}

	existing, err := w.Detector.FindExisting(ctx, issue.Key)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("duplicate check for %s: %w", issue.Key, err)
		return result
	}
	if existing != "" {
		logging.Skip("already synced", "source", issue.Key, "target", existing)
		result.TargetKey = existing
		result.Outcome = OutcomeSkipped
		return result
	}

	req := models.CreateIssueRequest{
		ProjectKey:   w.TargetProject,
		Summary:      issue.Summary,
		TypeID:       w.TargetTypeID,
		AssigneeID:   w.AssigneeID,
		ParentKey:    w.ParentKey,
		FixVersionID: w.FixVersionID,
	}
	if w.MarkerPrefix != "" {
		req.Labels = []string{w.MarkerPrefix + issue.Key}
	}

	created, err := w.Tracker.CreateIssue(ctx, req)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("create mirror for %s: %w", issue.Key, err)
		return result
	}
	result.TargetKey = created.Key
	result.Outcome = OutcomeCreated
	logging.OK("issue synced", "source", issue.Key, "target", created.Key)

	if w.LinkTypeID != "" {
		if err := w.Tracker.LinkIssues(ctx, w.LinkTypeID, issue.Key, created.Key); err != nil {
			result.LinkPending = true
			logging.Warn("issue created but linking failed, link manually",
				"source", issue.Key, "target", created.Key, "error", err)
		}
	}
	return result
}

// SyncAll mirrors a batch sequentially. One item's failure never aborts the
// rest.
func (w *Workflow) SyncAll(ctx context.Context, issues []models.Issue) Summary {
	var summary Summary
	for _, issue := range issues {
		result := w.SyncIssue(ctx, issue)
		if result.Outcome == OutcomeFailed {
			logging.Error("sync failed", "source", result.SourceKey, "error", result.Err)
		}
		summary.Add(result)
	}
	return summary
}
