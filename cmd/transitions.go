package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/internal/jira"
)

var transitionsCmd = &cobra.Command{
	Use:     "transitions KEY",
	Short:   "List the transitions available on an issue",
	Example: "  graft transitions SSCVE-4625",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		jiraClient, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		key := strings.ToUpper(args[0])
		transitions, err := jiraClient.GetTransitions(cmd.Context(), key)
		if err != nil {
			return err
		}

		fmt.Println(renderTransitions(key, transitions))
		return nil
	},
}
