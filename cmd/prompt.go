package cmd

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

var issueKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*-[0-9]+$`)

// validateIssueKey accepts an empty value (keep the default) or a well
// formed issue key.
func validateIssueKey(value string) error {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return nil
	}
	if !issueKeyPattern.MatchString(value) {
		return errors.New("expected an issue key like SSCVE-2561")
	}
	return nil
}

// promptSyncSettings asks for the parent epic and fix version used when
// creating mirror issues. Empty answers keep the configured defaults. A
// user abort maps to context.Canceled so it exits like an interrupt.
func promptSyncSettings(ctx context.Context, defaultParent, defaultFixVersion string) (string, string, error) {
	var parent, fixVersion string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Parent epic").
				Description("Epic the mirrored issues are filed under").
				Placeholder(defaultParent).
				Validate(validateIssueKey).
				Value(&parent),
			huh.NewInput().
				Title("Fix version").
				Description("Version name stamped on mirrored issues").
				Placeholder(defaultFixVersion).
				Value(&fixVersion),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", context.Canceled
		}
		return "", "", err
	}

	parent = strings.ToUpper(strings.TrimSpace(parent))
	if parent == "" {
		parent = defaultParent
	}
	fixVersion = strings.TrimSpace(fixVersion)
	if fixVersion == "" {
		fixVersion = defaultFixVersion
	}
	return parent, fixVersion, nil
}
