// Package naming derives git branch names from tracker issues.
//
// The convention is "{prefix}/{KEY}-{slug}", where the prefix depends on
// the issue type, the key is kept verbatim and the slug is a cleaned-up
// form of the issue summary. Summaries without any ASCII letters or digits
// produce no slug and the name collapses to "{prefix}/{KEY}".
package naming

import (
	"regexp"
	"strings"

	"github.com/hasuim/graft/pkg/models"
)

// Limits applied when the configuration does not set its own.
const (
	DefaultMaxSlugLength   = 50
	DefaultMaxBranchLength = 63
)

// defaultPrefix is used for issue types with no mapping of their own.
const defaultPrefix = "feature"

// prefixes maps lowercased issue type names to branch prefixes.
var prefixes = map[string]string{
	"bug":      "bugfix",
	"story":    "feature",
	"task":     "task",
	"epic":     "epic",
	"subtask":  "feature",
	"sub-task": "feature",
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Config holds the branch naming settings.
type Config struct {
	// MaxSlugLength caps the summary slug, zero means the default
	MaxSlugLength int

	// MaxBranchLength caps the whole branch name, zero means the default
	MaxBranchLength int

	// PrefixOverrides replaces individual entries of the built-in
	// type-to-prefix mapping, keyed by lowercased issue type
	PrefixOverrides map[string]string
}

// Slugify converts an issue summary into a branch-safe slug. The text is
// lowercased, every run of characters outside [a-z0-9] collapses into a
// single hyphen, and the result is trimmed and cut to max without leaving
// a trailing hyphen. Text with no ASCII letters or digits yields "".
func Slugify(text string, max int) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(text), "-")
	slug = strings.Trim(slug, "-")
	if max < 0 {
		max = 0
	}
	if len(slug) > max {
		slug = strings.TrimRight(slug[:max], "-")
	}
	return slug
}

// PrefixFor returns the branch prefix for an issue type name. Matching is
// case-insensitive and unknown types map to "feature". Entries in overrides
// replace the built-in mapping for their type and may introduce new types.
func PrefixFor(issueType string, overrides map[string]string) string {
	normalized := strings.ToLower(strings.TrimSpace(issueType))
	if prefix, ok := overrides[normalized]; ok {
		return prefix
	}
	if prefix, ok := prefixes[normalized]; ok {
		return prefix
	}
	return defaultPrefix
}

// BranchName builds the branch name for an issue. The slug is capped at
// cfg.MaxSlugLength first; if the full name still exceeds cfg.MaxBranchLength
// the slug is re-cut to the remaining budget, again without a trailing
// hyphen. When no budget is left the slug is dropped entirely. The slug is
// pure ASCII after Slugify, so byte lengths equal character counts here.
func BranchName(issue models.Issue, cfg Config) string {
	maxSlug := cfg.MaxSlugLength
	if maxSlug <= 0 {
		maxSlug = DefaultMaxSlugLength
	}
	maxBranch := cfg.MaxBranchLength
	if maxBranch <= 0 {
		maxBranch = DefaultMaxBranchLength
	}

	prefix := PrefixFor(issue.Type, cfg.PrefixOverrides)
	slug := Slugify(issue.Summary, maxSlug)

	base := prefix + "/" + issue.Key
	if slug == "" {
		return base
	}

	name := base + "-" + slug
	if len(name) <= maxBranch {
		return name
	}

	budget := maxBranch - len(base) - 1
	if budget <= 0 {
		return base
	}
	return base + "-" + strings.TrimRight(slug[:budget], "-")
}
