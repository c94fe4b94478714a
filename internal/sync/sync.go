// Package sync implements the issue mirroring and branch minting engine:
// duplicate detection, the create-then-link workflow, the to-do branch pass
// and the polling watcher. All work is sequential, one issue at a time.
package sync

import (
	"context"

	"github.com/hasuim/graft/pkg/models"
)

// Tracker is the slice of the issue tracker the engine depends on.
type Tracker interface {
	CreateIssue(ctx context.Context, req models.CreateIssueRequest) (models.Issue, error)
	LinkIssues(ctx context.Context, typeID, inwardKey, outwardKey string) error
	IssueLinks(ctx context.Context, key string) ([]models.IssueLink, error)
	SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error)
	CandidateIssues(ctx context.Context, projectKey string) ([]models.Issue, error)
	TodoIssues(ctx context.Context, projectKey, statusID string) ([]models.Issue, error)
}

// Host creates branches on the configured hosting provider.
type Host interface {
	CreateBranch(ctx context.Context, name, ref string) (models.Branch, error)
	BranchExists(ctx context.Context, name string) (bool, error)
}

// Outcome classifies what happened to a single item.
type Outcome string

const (
	// OutcomeCreated means the target was created in this run.
	OutcomeCreated Outcome = "created"
	// OutcomeSkipped means the target already existed and nothing was written.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the item errored and the batch moved on.
	OutcomeFailed Outcome = "failed"
)

// Result reports the outcome for one source issue.
type Result struct {
	// SourceKey is the issue the item started from
	SourceKey string

	// TargetKey is the mirror issue, empty when nothing was found or created
	TargetKey string

	// Outcome classifies the result
	Outcome Outcome

	// LinkPending is set when the mirror was created but linking it failed
	LinkPending bool

	// Err holds the failure behind an OutcomeFailed result
	Err error
}

// Summary aggregates the outcomes of a batch.
type Summary struct {
	Created     int
	Skipped     int
	Failed      int
	LinkPending int
}

// Add counts a result into the summary.
func (s *Summary) Add(result Result) {
	switch result.Outcome {
	case OutcomeCreated:
		s.Created++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	if result.LinkPending {
		s.LinkPending++
	}
}
