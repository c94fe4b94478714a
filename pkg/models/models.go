// Package models defines data structures shared across the application.
package models

// Issue represents a tracker issue with the fields branch naming and
// synchronization care about.
type Issue struct {
	// Key is the full issue identifier (e.g., "SSCVE-123")
	Key string

	// Summary is the issue's one-line title
	Summary string

	// Type is the issue type name (e.g., "Bug", "Story", "Task")
	Type string

	// Status is the current workflow status name
	Status string

	// ProjectKey is the project portion of the key (e.g., "SSCVE")
	ProjectKey string
}

// Transition represents a workflow transition an issue can take.
type Transition struct {
	// ID identifies the transition in the tracker
	ID string

	// Name is the transition's display name (e.g., "Start Progress")
	Name string

	// ToStatus is the status the issue lands in after the transition
	ToStatus string
}

// IssueLink is a directed, typed link between two issues.
type IssueLink struct {
	// TypeID identifies the link type in the tracker
	TypeID string

	// TypeName is the link type's display name
	TypeName string

	// InwardKey is the key of the issue on the inward side, if present
	InwardKey string

	// OutwardKey is the key of the issue on the outward side, if present
	OutwardKey string
}

// Branch describes a branch created on the git host. It is derived from an
// issue and never stored anywhere.
type Branch struct {
	// Name is the full branch name (e.g., "bugfix/SSCVE-123-fix-login")
	Name string

	// Ref is the branch the new branch was cut from
	Ref string

	// IssueKey is the issue the branch belongs to
	IssueKey string

	// WebURL is the host's web address for the branch, when reported
	WebURL string
}

// CreateIssueRequest carries everything needed to create a tracker issue.
// TypeID wins over TypeName when both are set; the optional fields are
// omitted from the request when empty.
type CreateIssueRequest struct {
	ProjectKey  string
	Summary     string
	TypeName    string
	TypeID      string
	Description string
	Labels      []string

	// AssigneeID is the account ID the new issue is assigned to
	AssigneeID string

	// ParentKey files the new issue under an epic
	ParentKey string

	// FixVersionID stamps a fix version onto the new issue
	FixVersionID string
}
