// Package github provides the GitHub branch provider.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/pkg/models"
)

// requestTimeout bounds every GitHub API call
const requestTimeout = 30 * time.Second

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
	owner  string
	repo   string
	domain string
}

// NewClient creates a new GitHub API client using the application
// configuration. It initializes the client with the appropriate base URL,
// authenticates, and tests the connection. It returns the configured client
// or an error if initialization fails.
func NewClient(cfg *config.Config) (*Client, error) {
	var missingVars []string
	if cfg.GitHub.Token == "" {
		missingVars = append(missingVars, "GITHUB_TOKEN")
	}
	if cfg.GitHub.Repository == "" {
		missingVars = append(missingVars, "GITHUB_REPOSITORY")
	}
	if len(missingVars) > 0 {
		return nil, &models.ConfigError{Missing: missingVars}
	}

	owner, repo, err := splitRepository(cfg.GitHub.Repository)
	if err != nil {
		return nil, err
	}

	// Get domain from config, default to github.com
	domain := cfg.GitHub.Domain
	if domain == "" {
		domain = "github.com"
	}

	logging.Debug("creating github client",
		"domain", domain,
		"repository", cfg.GitHub.Repository,
		"token", logging.MaskSensitive(cfg.GitHub.Token))

	// Create the oauth2 client
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.GitHub.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = requestTimeout

	client := github.NewClient(tc)

	// If not using default GitHub.com, set custom API endpoint
	if domain != "github.com" {
		apiURL := fmt.Sprintf("https://%s/api/v3/", domain)
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}

		client.BaseURL = parsedURL

		// For GitHub Enterprise, set the upload URL to the same endpoint
		client.UploadURL = parsedURL
	}

	// Test the token
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error testing github token: %w", err)
	}
	logging.Debug("github authentication successful", "username", user.GetLogin())

	return &Client{
		client: client,
		owner:  owner,
		repo:   repo,
		domain: domain,
	}, nil
}

// splitRepository parses an "owner/repo" slug.
func splitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &models.ConfigError{
			Reason: fmt.Sprintf("invalid repository format: %s, expected format: owner/repo", repository),
		}
	}
	return parts[0], parts[1], nil
}

// apiError converts a go-github error into the shared API error type.
func apiError(resp *github.Response, err error) error {
	if resp != nil && resp.Response != nil {
		return &models.APIError{System: "github", StatusCode: resp.StatusCode, Message: err.Error()}
	}
	return &models.APIError{System: "github", Message: err.Error()}
}

// isAlreadyExists reports whether a CreateRef error means the branch is
// already present. GitHub answers 422 with a "Reference already exists"
// message.
func isAlreadyExists(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) {
		return false
	}
	return ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusUnprocessableEntity &&
		strings.Contains(strings.ToLower(ghErr.Message), "already exists")
}

// CreateBranch creates a branch pointing at the current head of ref.
// An AlreadyExistsError is returned when the branch is already present,
// whatever commit its head points at.
func (c *Client) CreateBranch(ctx context.Context, name, ref string) (models.Branch, error) {
	logging.Debug("creating branch", "repository", c.owner+"/"+c.repo, "name", name, "ref", ref)

	base, resp, err := c.client.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+ref)
	if err != nil {
		if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound {
			return models.Branch{}, &models.NotFoundError{Kind: "ref", Name: ref}
		}
		return models.Branch{}, apiError(resp, err)
	}

	newRef := &github.Reference{
		Ref:    github.String("refs/heads/" + name),
		Object: base.Object,
	}
	_, resp, err = c.client.Git.CreateRef(ctx, c.owner, c.repo, newRef)
	if err != nil {
		if isAlreadyExists(err) {
			return models.Branch{}, &models.AlreadyExistsError{Kind: "branch", Name: name}
		}
		return models.Branch{}, apiError(resp, err)
	}

	return models.Branch{
		Name:   name,
		Ref:    ref,
		WebURL: fmt.Sprintf("https://%s/%s/%s/tree/%s", c.domain, c.owner, c.repo, name),
	}, nil
}

// BranchExists reports whether a branch exists in the repository.
func (c *Client) BranchExists(ctx context.Context, name string) (bool, error) {
	_, resp, err := c.client.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+name)
	if err != nil {
		if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, apiError(resp, err)
	}
	return true, nil
}
