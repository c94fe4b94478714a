package models

import (
	"fmt"
	"strings"
)

// ConfigError reports missing or invalid configuration. It is always fatal
// and raised before any network call is made.
type ConfigError struct {
	// Missing lists the environment variables that were not set
	Missing []string

	// Reason describes problems other than a missing variable
	Reason string
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required environment variables: %v", e.Missing)
	}
	return e.Reason
}

// NotFoundError reports a resource the tracker or git host does not have.
type NotFoundError struct {
	// Kind names what was looked up (e.g., "issue", "branch", "fix version")
	Kind string

	// Name is the identifier that was looked up
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// APIError wraps a failed call to an external system.
type APIError struct {
	// System names the API that failed (e.g., "jira", "gitlab", "github")
	System string

	// StatusCode is the HTTP status, zero when the request never completed
	StatusCode int

	// Message carries the response body or transport error
	Message string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s api error (status %d): %s", e.System, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s api error: %s", e.System, e.Message)
}

// AlreadyExistsError reports a create call for something that is already
// there. Callers generally treat it as the work being done.
type AlreadyExistsError struct {
	Kind string
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.Name)
}

// TransitionNotFoundError reports a requested workflow transition the issue
// does not currently offer, along with the ones it does.
type TransitionNotFoundError struct {
	IssueKey  string
	Target    string
	Available []string
}

func (e *TransitionNotFoundError) Error() string {
	available := "none"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("no transition to %q available for %s (available: %s)", e.Target, e.IssueKey, available)
}
