package cmd

import (
	"fmt"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/github"
	"github.com/hasuim/graft/internal/gitlab"
	"github.com/hasuim/graft/internal/naming"
	"github.com/hasuim/graft/internal/sync"
)

// newHost builds the branch host selected by VCS_PROVIDER.
func newHost(cfg *config.Config) (sync.Host, error) {
	switch cfg.Branch.Provider {
	case config.ProviderGitLab:
		return gitlab.NewClient(cfg)
	case config.ProviderGitHub:
		return github.NewClient(cfg)
	default:
		return nil, fmt.Errorf("unknown branch provider: %s", cfg.Branch.Provider)
	}
}

// namingConfig extracts the branch naming rules from the configuration.
func namingConfig(cfg *config.Config) naming.Config {
	return naming.Config{
		MaxSlugLength:   cfg.Branch.MaxSlugLength,
		MaxBranchLength: cfg.Branch.MaxBranchLength,
		PrefixOverrides: cfg.Branch.PrefixOverrides,
	}
}
