// Package gitlab provides the GitLab branch provider.
package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gitlab "github.com/xanzy/go-gitlab"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/pkg/models"
)

// requestTimeout bounds every GitLab API call
const requestTimeout = 30 * time.Second

// Client encapsulates the GitLab API client.
type Client struct {
	client    *gitlab.Client
	projectID string
}

// NewClient creates a new GitLab API client using the application
// configuration. The project ID may be numeric or a "group/project" path.
func NewClient(cfg *config.Config) (*Client, error) {
	var missingVars []string
	if cfg.GitLab.URL == "" {
		missingVars = append(missingVars, "GITLAB_URL")
	}
	if cfg.GitLab.Token == "" {
		missingVars = append(missingVars, "GITLAB_TOKEN")
	}
	if cfg.GitLab.ProjectID == "" {
		missingVars = append(missingVars, "GITLAB_PROJECT_ID")
	}
	if len(missingVars) > 0 {
		return nil, &models.ConfigError{Missing: missingVars}
	}

	logging.Debug("creating gitlab client",
		"url", cfg.GitLab.URL,
		"project_id", cfg.GitLab.ProjectID,
		"token", logging.MaskSensitive(cfg.GitLab.Token))

	client, err := gitlab.NewClient(cfg.GitLab.Token,
		gitlab.WithBaseURL(cfg.GitLab.URL),
		gitlab.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}

	return &Client{
		client:    client,
		projectID: cfg.GitLab.ProjectID,
	}, nil
}

// apiError converts a go-gitlab error into one of the shared error types.
// kind and name describe the resource a 404 should be reported as.
func apiError(resp *gitlab.Response, err error, kind, name string) error {
	if resp != nil && resp.Response != nil {
		if resp.StatusCode == http.StatusNotFound && kind != "" {
			return &models.NotFoundError{Kind: kind, Name: name}
		}
		return &models.APIError{System: "gitlab", StatusCode: resp.StatusCode, Message: err.Error()}
	}
	return &models.APIError{System: "gitlab", Message: err.Error()}
}

// CreateBranch creates a branch from ref in the configured project.
// An AlreadyExistsError is returned when the branch is already present,
// whatever commit its head points at.
func (c *Client) CreateBranch(ctx context.Context, name, ref string) (models.Branch, error) {
	logging.Debug("creating branch", "project_id", c.projectID, "name", name, "ref", ref)

	branch, resp, err := c.client.Branches.CreateBranch(c.projectID, &gitlab.CreateBranchOptions{
		Branch: gitlab.Ptr(name),
		Ref:    gitlab.Ptr(ref),
	}, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.Response != nil &&
			resp.StatusCode == http.StatusBadRequest &&
			strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return models.Branch{}, &models.AlreadyExistsError{Kind: "branch", Name: name}
		}
		return models.Branch{}, apiError(resp, err, "project", c.projectID)
	}

	return models.Branch{
		Name:   branch.Name,
		Ref:    ref,
		WebURL: branch.WebURL,
	}, nil
}

// BranchExists reports whether a branch exists in the configured project.
func (c *Client) BranchExists(ctx context.Context, name string) (bool, error) {
	_, resp, err := c.client.Branches.GetBranch(c.projectID, name, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, apiError(resp, err, "", "")
	}
	return true, nil
}
