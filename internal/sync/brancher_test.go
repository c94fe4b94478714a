package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/naming"
	"github.com/hasuim/graft/pkg/models"
)

func testNaming() naming.Config {
	return naming.Config{MaxSlugLength: 50, MaxBranchLength: 63}
}

func TestBrancherCreatesBranches(t *testing.T) {
	var created []string
	var refs []string
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			assert.Equal(t, "SSCVE", projectKey)
			assert.Equal(t, "10138", statusID)
			return []models.Issue{
				{Key: "SSCVE-10", Summary: "Add search", Type: "Story"},
				{Key: "SSCVE-11", Summary: "Fix crash", Type: "Bug"},
			}, nil
		},
	}
	host := &mockHost{
		BranchExistsFunc: func(ctx context.Context, name string) (bool, error) {
			return false, nil
		},
		CreateBranchFunc: func(ctx context.Context, name, ref string) (models.Branch, error) {
			created = append(created, name)
			refs = append(refs, ref)
			return models.Branch{Name: name, Ref: ref}, nil
		},
	}
	brancher := &Brancher{
		Tracker:      tracker,
		Host:         host,
		Project:      "SSCVE",
		TodoStatusID: "10138",
		BaseRef:      "develop",
		Naming:       testNaming(),
	}

	summary, err := brancher.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, []string{"feature/SSCVE-10-add-search", "bugfix/SSCVE-11-fix-crash"}, created)
	assert.Equal(t, []string{"develop", "develop"}, refs)
}

func TestBrancherSkipsExisting(t *testing.T) {
	created := false
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			return []models.Issue{{Key: "SSCVE-10", Summary: "Add search", Type: "Story"}}, nil
		},
	}
	host := &mockHost{
		BranchExistsFunc: func(ctx context.Context, name string) (bool, error) {
			assert.Equal(t, "feature/SSCVE-10-add-search", name)
			return true, nil
		},
		CreateBranchFunc: func(ctx context.Context, name, ref string) (models.Branch, error) {
			created = true
			return models.Branch{}, nil
		},
	}
	brancher := &Brancher{Tracker: tracker, Host: host, Project: "SSCVE", BaseRef: "develop", Naming: testNaming()}

	summary, err := brancher.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Created)
	assert.False(t, created, "existing branch must not be recreated")
}

func TestBrancherDryRun(t *testing.T) {
	var probed []string
	created := false
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			return []models.Issue{
				{Key: "SSCVE-10", Summary: "Add search", Type: "Story"},
				{Key: "SSCVE-11", Summary: "Fix crash", Type: "Bug"},
			}, nil
		},
	}
	host := &mockHost{
		BranchExistsFunc: func(ctx context.Context, name string) (bool, error) {
			probed = append(probed, name)
			return name == "feature/SSCVE-10-add-search", nil
		},
		CreateBranchFunc: func(ctx context.Context, name, ref string) (models.Branch, error) {
			created = true
			return models.Branch{}, nil
		},
	}
	brancher := &Brancher{
		Tracker: tracker,
		Host:    host,
		Project: "SSCVE",
		BaseRef: "develop",
		Naming:  testNaming(),
		DryRun:  true,
	}

	summary, err := brancher.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, probed, 2, "dry run still probes existence")
	assert.False(t, created, "dry run must not create")
	assert.Equal(t, 1, summary.Created, "would-create counts as created")
	assert.Equal(t, 1, summary.Skipped)
}

func TestBrancherRaceLosesGracefully(t *testing.T) {
	// The probe says missing but creation still collides.
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			return []models.Issue{{Key: "SSCVE-10", Summary: "Add search", Type: "Story"}}, nil
		},
	}
	host := &mockHost{
		BranchExistsFunc: func(ctx context.Context, name string) (bool, error) {
			return false, nil
		},
		CreateBranchFunc: func(ctx context.Context, name, ref string) (models.Branch, error) {
			return models.Branch{}, &models.AlreadyExistsError{Kind: "branch", Name: name}
		},
	}
	brancher := &Brancher{Tracker: tracker, Host: host, Project: "SSCVE", BaseRef: "develop", Naming: testNaming()}

	summary, err := brancher.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
}

func TestBrancherContinuesPastFailures(t *testing.T) {
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			return []models.Issue{
				{Key: "SSCVE-10", Summary: "Add search", Type: "Story"},
				{Key: "SSCVE-11", Summary: "Fix crash", Type: "Bug"},
			}, nil
		},
	}
	host := &mockHost{
		BranchExistsFunc: func(ctx context.Context, name string) (bool, error) {
			return false, nil
		},
		CreateBranchFunc: func(ctx context.Context, name, ref string) (models.Branch, error) {
			if name == "feature/SSCVE-10-add-search" {
				return models.Branch{}, errors.New("403 forbidden")
			}
			return models.Branch{Name: name}, nil
		},
	}
	brancher := &Brancher{Tracker: tracker, Host: host, Project: "SSCVE", BaseRef: "develop", Naming: testNaming()}

	summary, err := brancher.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Created)
}

func TestBrancherLookupFailure(t *testing.T) {
	created := false
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			return []models.Issue{{Key: "SSCVE-10", Summary: "Add search", Type: "Story"}}, nil
		},
	}
	host := &mockHost{
		BranchExistsFunc: func(ctx context.Context, name string) (bool, error) {
			return false, errors.New("502 bad gateway")
		},
		CreateBranchFunc: func(ctx context.Context, name, ref string) (models.Branch, error) {
			created = true
			return models.Branch{}, nil
		},
	}
	brancher := &Brancher{Tracker: tracker, Host: host, Project: "SSCVE", BaseRef: "develop", Naming: testNaming()}

	summary, err := brancher.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, created, "failed lookup must not create")
}

func TestBrancherQueryFailure(t *testing.T) {
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			return nil, errors.New("jira is down")
		},
	}
	brancher := &Brancher{Tracker: tracker, Host: &mockHost{}, Project: "SSCVE", Naming: testNaming()}

	_, err := brancher.Run(context.Background())
	assert.ErrorContains(t, err, "list to-do issues")
}

func TestBrancherNoIssues(t *testing.T) {
	tracker := &mockTracker{
		TodoIssuesFunc: func(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
			return nil, nil
		},
	}
	brancher := &Brancher{Tracker: tracker, Host: &mockHost{}, Project: "SSCVE", Naming: testNaming()}

	summary, err := brancher.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestNewBrancher(t *testing.T) {
	cfg := &config.Config{}
	cfg.Jira.ProjectKey = "SSCVE"
	cfg.Jira.TodoStatusID = "10138"
	cfg.Branch.BaseRef = "main"
	cfg.Branch.MaxSlugLength = 40
	cfg.Branch.MaxBranchLength = 60
	cfg.Branch.PrefixOverrides = map[string]string{"bug": "hotfix"}

	brancher := NewBrancher(cfg, &mockTracker{}, &mockHost{}, true)

	assert.Equal(t, "SSCVE", brancher.Project)
	assert.Equal(t, "10138", brancher.TodoStatusID)
	assert.Equal(t, "main", brancher.BaseRef)
	assert.Equal(t, 40, brancher.Naming.MaxSlugLength)
	assert.Equal(t, 60, brancher.Naming.MaxBranchLength)
	assert.Equal(t, "hotfix", brancher.Naming.PrefixOverrides["bug"])
	assert.True(t, brancher.DryRun)
}
