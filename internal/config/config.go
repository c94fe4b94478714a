// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/hasuim/graft/pkg/models"
)

// Detection strategies for recognizing an already-synced issue.
const (
	DetectionLink  = "link"
	DetectionLabel = "label"
)

// Supported branch hosting providers.
const (
	ProviderGitLab = "gitlab"
	ProviderGitHub = "github"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira   JiraConfig
	Sync   SyncConfig
	Branch BranchConfig
	GitLab GitLabConfig
	GitHub GitHubConfig

	// LogDir enables logging to daily files when set.
	LogDir string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	BaseURL       string
	Email         string
	Token         string
	ProjectKey    string
	SourceProject string
	LinkTypeID    string
	TaskTypeID    string
	TodoStatusID  string
}

// SyncConfig controls how synced issues are created and recognized.
type SyncConfig struct {
	Detection    string
	LabelPrefix  string
	AssigneeID   string
	ParentKey    string
	FixVersion   string
	PollInterval int
}

// BranchConfig controls the branch provider and naming rules.
type BranchConfig struct {
	Provider        string
	BaseRef         string
	MaxSlugLength   int
	MaxBranchLength int
	PrefixOverrides map[string]string
}

// GitLabConfig holds GitLab specific configuration.
type GitLabConfig struct {
	URL       string
	Token     string
	ProjectID string
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token      string
	Domain     string
	Repository string
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("jira.base_url", "JIRA_BASE_URL")
	v.BindEnv("jira.email", "JIRA_EMAIL")
	v.BindEnv("jira.api_token", "JIRA_API_TOKEN")
	v.BindEnv("jira.project_key", "JIRA_PROJECT_KEY")
	v.BindEnv("jira.source_project", "JIRA_SOURCE_PROJECT")
	v.BindEnv("jira.link_type_id", "JIRA_LINK_TYPE_ID")
	v.BindEnv("jira.task_type_id", "JIRA_TASK_TYPE_ID")
	v.BindEnv("jira.todo_status_id", "JIRA_TODO_STATUS_ID")
	v.BindEnv("sync.detection", "SYNC_DETECTION")
	v.BindEnv("sync.label_prefix", "SYNC_LABEL_PREFIX")
	v.BindEnv("sync.assignee_id", "SYNC_ASSIGNEE_ID")
	v.BindEnv("sync.parent_key", "SYNC_PARENT_KEY")
	v.BindEnv("sync.fix_version", "SYNC_FIX_VERSION")
	v.BindEnv("sync.poll_interval", "POLL_INTERVAL")
	v.BindEnv("branch.provider", "VCS_PROVIDER")
	v.BindEnv("branch.base_ref", "BRANCH_BASE_REF")
	v.BindEnv("branch.max_slug_length", "BRANCH_MAX_SLUG_LENGTH")
	v.BindEnv("branch.max_length", "BRANCH_MAX_LENGTH")
	v.BindEnv("branch.prefix_overrides", "BRANCH_PREFIX_OVERRIDES")
	v.BindEnv("gitlab.url", "GITLAB_URL")
	v.BindEnv("gitlab.token", "GITLAB_TOKEN")
	v.BindEnv("gitlab.project_id", "GITLAB_PROJECT_ID")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("github.repository", "GITHUB_REPOSITORY")
	v.BindEnv("log.dir", "LOG_DIR")

	// Defaults for the SSCVE workflow
	v.SetDefault("jira.project_key", "SSCVE")
	v.SetDefault("jira.source_project", "INTQA")
	v.SetDefault("jira.link_type_id", "10000")
	v.SetDefault("jira.task_type_id", "10124")
	v.SetDefault("jira.todo_status_id", "10138")
	v.SetDefault("sync.detection", DetectionLink)
	v.SetDefault("sync.poll_interval", "30")
	v.SetDefault("branch.provider", ProviderGitLab)
	v.SetDefault("branch.base_ref", "develop")
	v.SetDefault("branch.max_slug_length", "50")
	v.SetDefault("branch.max_length", "63")
	v.SetDefault("github.domain", "github.com")

	detection := strings.ToLower(v.GetString("sync.detection"))
	if detection != DetectionLink && detection != DetectionLabel {
		return nil, &models.ConfigError{
			Reason: fmt.Sprintf("SYNC_DETECTION must be %q or %q, got %q", DetectionLink, DetectionLabel, detection),
		}
	}

	provider := strings.ToLower(v.GetString("branch.provider"))
	if provider != ProviderGitLab && provider != ProviderGitHub {
		return nil, &models.ConfigError{
			Reason: fmt.Sprintf("VCS_PROVIDER must be %q or %q, got %q", ProviderGitLab, ProviderGitHub, provider),
		}
	}

	pollInterval, err := positiveInt(v.GetString("sync.poll_interval"), "POLL_INTERVAL")
	if err != nil {
		return nil, err
	}
	maxSlug, err := positiveInt(v.GetString("branch.max_slug_length"), "BRANCH_MAX_SLUG_LENGTH")
	if err != nil {
		return nil, err
	}
	maxBranch, err := positiveInt(v.GetString("branch.max_length"), "BRANCH_MAX_LENGTH")
	if err != nil {
		return nil, err
	}

	overrides, err := parsePrefixOverrides(v.GetString("branch.prefix_overrides"))
	if err != nil {
		return nil, err
	}

	sourceProject := v.GetString("jira.source_project")
	labelPrefix := v.GetString("sync.label_prefix")
	if labelPrefix == "" {
		labelPrefix = strings.ToLower(sourceProject) + "-sync-"
	}

	// Create config structure
	config := &Config{
		Jira: JiraConfig{
			BaseURL:       strings.TrimRight(v.GetString("jira.base_url"), "/"),
			Email:         v.GetString("jira.email"),
			Token:         v.GetString("jira.api_token"),
			ProjectKey:    v.GetString("jira.project_key"),
			SourceProject: sourceProject,
			LinkTypeID:    v.GetString("jira.link_type_id"),
			TaskTypeID:    v.GetString("jira.task_type_id"),
			TodoStatusID:  v.GetString("jira.todo_status_id"),
		},
		Sync: SyncConfig{
			Detection:    detection,
			LabelPrefix:  labelPrefix,
			AssigneeID:   v.GetString("sync.assignee_id"),
			ParentKey:    v.GetString("sync.parent_key"),
			FixVersion:   v.GetString("sync.fix_version"),
			PollInterval: pollInterval,
		},
		Branch: BranchConfig{
			Provider:        provider,
			BaseRef:         v.GetString("branch.base_ref"),
			MaxSlugLength:   maxSlug,
			MaxBranchLength: maxBranch,
			PrefixOverrides: overrides,
		},
		GitLab: GitLabConfig{
			URL:       strings.TrimRight(v.GetString("gitlab.url"), "/"),
			Token:     v.GetString("gitlab.token"),
			ProjectID: v.GetString("gitlab.project_id"),
		},
		GitHub: GitHubConfig{
			Token:      v.GetString("github.token"),
			Domain:     v.GetString("github.domain"),
			Repository: v.GetString("github.repository"),
		},
		LogDir: v.GetString("log.dir"),
	}

	return config, nil
}

// positiveInt parses an environment value that must be a positive integer.
func positiveInt(raw, envName string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, &models.ConfigError{
			Reason: fmt.Sprintf("%s must be a positive integer, got %q", envName, raw),
		}
	}
	return n, nil
}

// parsePrefixOverrides parses a "type=prefix,type=prefix" list. Type names
// are lowercased so lookups stay case-insensitive.
func parsePrefixOverrides(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	overrides := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if !found || key == "" || value == "" {
			return nil, &models.ConfigError{
				Reason: fmt.Sprintf("invalid BRANCH_PREFIX_OVERRIDES entry %q", pair),
			}
		}
		overrides[key] = value
	}
	return overrides, nil
}

// ValidateJiraConfig validates JIRA-specific configuration.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	// JIRA validation
	if config.Jira.BaseURL == "" {
		missingVars = append(missingVars, "JIRA_BASE_URL")
	}
	if config.Jira.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_API_TOKEN")
	}

	if len(missingVars) > 0 {
		return &models.ConfigError{Missing: missingVars}
	}

	return nil
}

// ValidateBranchConfig validates the configuration of the selected branch
// provider.
func ValidateBranchConfig(config *Config) error {
	var missingVars []string

	switch config.Branch.Provider {
	case ProviderGitLab:
		if config.GitLab.URL == "" {
			missingVars = append(missingVars, "GITLAB_URL")
		}
		if config.GitLab.Token == "" {
			missingVars = append(missingVars, "GITLAB_TOKEN")
		}
		if config.GitLab.ProjectID == "" {
			missingVars = append(missingVars, "GITLAB_PROJECT_ID")
		}
	case ProviderGitHub:
		if config.GitHub.Token == "" {
			missingVars = append(missingVars, "GITHUB_TOKEN")
		}
		if config.GitHub.Repository == "" {
			missingVars = append(missingVars, "GITHUB_REPOSITORY")
		}
	}

	if len(missingVars) > 0 {
		return &models.ConfigError{Missing: missingVars}
	}

	return nil
}
