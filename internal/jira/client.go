package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/logging"
	"github.com/hasuim/graft/pkg/models"
)

// requestTimeout bounds every JIRA API call
const requestTimeout = 30 * time.Second

// issueFields is the field list requested when reading issues
const issueFields = "summary,issuetype,status"

// maxSearchResults caps JQL search pages
const maxSearchResults = 100

// Client handles interactions with the JIRA API
type Client struct {
	client  *jira.Client
	baseURL string

	// fixVersionIDs caches version lookups by "project/name"
	fixVersionIDs map[string]string
}

// NewClient creates a new JIRA client from the application configuration
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	logging.Debug("creating jira client",
		"base_url", cfg.Jira.BaseURL,
		"email", cfg.Jira.Email,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	// Create JIRA authentication transport
	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Email,
		Password: cfg.Jira.Token,
	}

	httpClient := tp.Client()
	httpClient.Timeout = requestTimeout

	client, err := jira.NewClient(httpClient, cfg.Jira.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{
		client:        client,
		baseURL:       strings.TrimRight(cfg.Jira.BaseURL, "/"),
		fixVersionIDs: make(map[string]string),
	}, nil
}

// apiError converts a go-jira error into one of the shared error types.
// kind and name describe the resource a 404 should be reported as.
func apiError(resp *jira.Response, err error, kind, name string) error {
	if resp != nil && resp.Response != nil {
		if resp.StatusCode == http.StatusNotFound && kind != "" {
			return &models.NotFoundError{Kind: kind, Name: name}
		}
		return &models.APIError{System: "jira", StatusCode: resp.StatusCode, Message: err.Error()}
	}
	return &models.APIError{System: "jira", Message: err.Error()}
}

// projectKeyOf extracts the project portion of an issue key
func projectKeyOf(key string) string {
	if i := strings.Index(key, "-"); i > 0 {
		return key[:i]
	}
	return key
}

// toModel maps a go-jira issue onto the shared issue model
func toModel(issue *jira.Issue) models.Issue {
	m := models.Issue{Key: issue.Key, ProjectKey: projectKeyOf(issue.Key)}
	if issue.Fields == nil {
		return m
	}
	m.Summary = issue.Fields.Summary
	m.Type = issue.Fields.Type.Name
	if issue.Fields.Status != nil {
		m.Status = issue.Fields.Status.Name
	}
	return m
}

// GetIssue fetches a single issue by key
func (c *Client) GetIssue(ctx context.Context, key string) (models.Issue, error) {
	issue, resp, err := c.client.Issue.GetWithContext(ctx, key, &jira.GetQueryOptions{Fields: issueFields})
	if err != nil {
		return models.Issue{}, apiError(resp, err, "issue", key)
	}
	return toModel(issue), nil
}

// CreateIssue creates an issue and returns its final state. The created
// issue is fetched back so fields the server assigns on creation, like the
// initial workflow status, are filled in. When that read fails the create
// still counts and a partial issue is returned.
func (c *Client) CreateIssue(ctx context.Context, req models.CreateIssueRequest) (models.Issue, error) {
	fields := &jira.IssueFields{
		Project: jira.Project{Key: req.ProjectKey},
		Summary: req.Summary,
	}
	if req.TypeID != "" {
		fields.Type = jira.IssueType{ID: req.TypeID}
	} else {
		fields.Type = jira.IssueType{Name: req.TypeName}
	}
	if req.Description != "" {
		fields.Description = req.Description
	}
	if len(req.Labels) > 0 {
		fields.Labels = req.Labels
	}
	if req.AssigneeID != "" {
		fields.Assignee = &jira.User{AccountID: req.AssigneeID}
	}
	if req.ParentKey != "" {
		fields.Parent = &jira.Parent{Key: req.ParentKey}
	}
	if req.FixVersionID != "" {
		fields.FixVersions = []*jira.FixVersion{{ID: req.FixVersionID}}
	}

	created, resp, err := c.client.Issue.CreateWithContext(ctx, &jira.Issue{Fields: fields})
	if err != nil {
		return models.Issue{}, apiError(resp, err, "", "")
	}

	issue, err := c.GetIssue(ctx, created.Key)
	if err != nil {
		logging.Warn("created issue could not be fetched back", "key", created.Key, "error", err)
		return models.Issue{
			Key:        created.Key,
			Summary:    req.Summary,
			Type:       req.TypeName,
			ProjectKey: req.ProjectKey,
		}, nil
	}
	return issue, nil
}

// GetTransitions lists the transitions currently available on an issue
func (c *Client) GetTransitions(ctx context.Context, key string) ([]models.Transition, error) {
	transitions, resp, err := c.client.Issue.GetTransitionsWithContext(ctx, key)
	if err != nil {
		return nil, apiError(resp, err, "issue", key)
	}

	result := make([]models.Transition, 0, len(transitions))
	for _, t := range transitions {
		result = append(result, models.Transition{ID: t.ID, Name: t.Name, ToStatus: t.To.Name})
	}
	return result, nil
}

// TransitionIssue moves an issue through the transition whose name matches
// target, ignoring case
func (c *Client) TransitionIssue(ctx context.Context, key, target string) error {
	transitions, err := c.GetTransitions(ctx, key)
	if err != nil {
		return err
	}

	for _, t := range transitions {
		if strings.EqualFold(t.Name, target) {
			resp, err := c.client.Issue.DoTransitionWithContext(ctx, key, t.ID)
			if err != nil {
				return apiError(resp, err, "issue", key)
			}
			logging.Debug("transitioned issue", "key", key, "transition", t.Name)
			return nil
		}
	}

	available := make([]string, 0, len(transitions))
	for _, t := range transitions {
		available = append(available, t.Name)
	}
	return &models.TransitionNotFoundError{IssueKey: key, Target: target, Available: available}
}

// LinkIssues creates an issue link of the given type between two issues
func (c *Client) LinkIssues(ctx context.Context, typeID, inwardKey, outwardKey string) error {
	link := &jira.IssueLink{
		Type:         jira.IssueLinkType{ID: typeID},
		InwardIssue:  &jira.Issue{Key: inwardKey},
		OutwardIssue: &jira.Issue{Key: outwardKey},
	}
	resp, err := c.client.Issue.AddLinkWithContext(ctx, link)
	if err != nil {
		return apiError(resp, err, "", "")
	}
	return nil
}

// IssueLinks returns the links attached to an issue
func (c *Client) IssueLinks(ctx context.Context, key string) ([]models.IssueLink, error) {
	issue, resp, err := c.client.Issue.GetWithContext(ctx, key, &jira.GetQueryOptions{Fields: "issuelinks"})
	if err != nil {
		return nil, apiError(resp, err, "issue", key)
	}
	if issue.Fields == nil {
		return nil, nil
	}

	links := make([]models.IssueLink, 0, len(issue.Fields.IssueLinks))
	for _, l := range issue.Fields.IssueLinks {
		link := models.IssueLink{TypeID: l.Type.ID, TypeName: l.Type.Name}
		if l.InwardIssue != nil {
			link.InwardKey = l.InwardIssue.Key
		}
		if l.OutwardIssue != nil {
			link.OutwardKey = l.OutwardIssue.Key
		}
		links = append(links, link)
	}
	return links, nil
}

// SearchIssues runs a JQL query and returns the matching issues
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error) {
	options := &jira.SearchOptions{
		MaxResults: maxResults,
		Fields:     []string{"summary", "issuetype", "status"},
	}
	found, resp, err := c.client.Issue.SearchWithContext(ctx, jql, options)
	if err != nil {
		return nil, apiError(resp, err, "", "")
	}

	issues := make([]models.Issue, 0, len(found))
	for i := range found {
		issues = append(issues, toModel(&found[i]))
	}
	return issues, nil
}

// CandidateIssues returns the caller's in-progress issues in a project,
// most recently updated first
func (c *Client) CandidateIssues(ctx context.Context, projectKey string) ([]models.Issue, error) {
	jql := fmt.Sprintf("project = %s AND assignee = currentUser() AND statusCategory = indeterminate ORDER BY updated DESC", projectKey)
	return c.SearchIssues(ctx, jql, maxSearchResults)
}

// TodoIssues returns the caller's issues sitting in the given status in a
// project, most recently updated first
func (c *Client) TodoIssues(ctx context.Context, projectKey, statusID string) ([]models.Issue, error) {
	jql := fmt.Sprintf("project = %s AND assignee = currentUser() AND status = %s ORDER BY updated DESC", projectKey, statusID)
	return c.SearchIssues(ctx, jql, maxSearchResults)
}

// FixVersionID resolves a version name to its ID in a project. Lookups are
// cached for the lifetime of the client.
func (c *Client) FixVersionID(ctx context.Context, projectKey, versionName string) (string, error) {
	cacheKey := projectKey + "/" + versionName
	if id, ok := c.fixVersionIDs[cacheKey]; ok {
		return id, nil
	}

	project, resp, err := c.client.Project.GetWithContext(ctx, projectKey)
	if err != nil {
		return "", apiError(resp, err, "project", projectKey)
	}

	for _, version := range project.Versions {
		if version.Name == versionName {
			c.fixVersionIDs[cacheKey] = version.ID
			return version.ID, nil
		}
	}
	return "", &models.NotFoundError{Kind: "fix version", Name: versionName}
}

// BrowseURL returns the web URL for an issue key
func (c *Client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}
