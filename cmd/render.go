package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hasuim/graft/internal/sync"
	"github.com/hasuim/graft/pkg/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(8)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderBranch formats the result banner for a minted branch.
func renderBranch(branch models.Branch) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("branch") + " " + valueStyle.Render(branch.Name))
	if branch.IssueKey != "" {
		b.WriteString("\n" + labelStyle.Render("issue") + " " + branch.IssueKey)
	}
	if branch.Ref != "" {
		b.WriteString("\n" + labelStyle.Render("ref") + " " + branch.Ref)
	}
	if branch.WebURL != "" {
		b.WriteString("\n" + labelStyle.Render("url") + " " + branch.WebURL)
	}
	return b.String()
}

// renderIssue formats the result banner for a created issue.
func renderIssue(issue models.Issue, url string) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("issue") + " " + valueStyle.Render(issue.Key))
	if issue.Summary != "" {
		b.WriteString("\n" + labelStyle.Render("summary") + " " + issue.Summary)
	}
	if issue.Status != "" {
		b.WriteString("\n" + labelStyle.Render("status") + " " + issue.Status)
	}
	if url != "" {
		b.WriteString("\n" + labelStyle.Render("url") + " " + url)
	}
	return b.String()
}

// renderSummary formats per-phase counters on a single line.
func renderSummary(title string, summary sync.Summary) string {
	parts := []string{
		okStyle.Render(fmt.Sprintf("created %d", summary.Created)),
		skipStyle.Render(fmt.Sprintf("skipped %d", summary.Skipped)),
		failStyle.Render(fmt.Sprintf("failed %d", summary.Failed)),
	}
	if summary.LinkPending > 0 {
		parts = append(parts, failStyle.Render(fmt.Sprintf("link pending %d", summary.LinkPending)))
	}
	return headerStyle.Render(title) + "  " + strings.Join(parts, "  ")
}

// renderTransitions formats the transitions available on an issue.
func renderTransitions(key string, transitions []models.Transition) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("transitions for "+key) + "\n")
	if len(transitions) == 0 {
		b.WriteString(labelStyle.Render("none"))
		return b.String()
	}
	for _, t := range transitions {
		b.WriteString(fmt.Sprintf("  %s %s", valueStyle.Render(t.Name), labelStyle.Render("-> "+t.ToStatus)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
