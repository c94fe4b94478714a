package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/hasuim/graft/internal/config"
	"github.com/hasuim/graft/pkg/models"
)

// Detector decides whether a source issue already has a mirror in the
// target project. Implementations are read only.
type Detector interface {
	// FindExisting returns the mirror's key, or "" when no mirror exists.
	FindExisting(ctx context.Context, sourceKey string) (string, error)
}

// LinkDetector recognizes mirrors through typed issue links on the source.
type LinkDetector struct {
	Tracker       Tracker
	LinkTypeID    string
	TargetProject string
}

// FindExisting scans the source issue's links for one of the configured
// type pointing outward into the target project.
func (d *LinkDetector) FindExisting(ctx context.Context, sourceKey string) (string, error) {
	links, err := d.Tracker.IssueLinks(ctx, sourceKey)
	if err != nil {
		return "", err
	}

	prefix := d.TargetProject + "-"
	for _, link := range links {
		if link.TypeID != d.LinkTypeID {
			continue
		}
		if strings.HasPrefix(link.OutwardKey, prefix) {
			return link.OutwardKey, nil
		}
	}
	return "", nil
}

// LabelDetector recognizes mirrors through a marker label stamped on the
// mirror at creation time.
type LabelDetector struct {
	Tracker       Tracker
	TargetProject string
	LabelPrefix   string
}

// MarkerLabel returns the label that marks a mirror of sourceKey.
func (d *LabelDetector) MarkerLabel(sourceKey string) string {
	return d.LabelPrefix + sourceKey
}

// FindExisting searches the target project for an issue carrying the
// source's marker label.
func (d *LabelDetector) FindExisting(ctx context.Context, sourceKey string) (string, error) {
	jql := fmt.Sprintf("project = %s AND labels = %q", d.TargetProject, d.MarkerLabel(sourceKey))
	issues, err := d.Tracker.SearchIssues(ctx, jql, 1)
	if err != nil {
		return "", err
	}
	if len(issues) == 0 {
		return "", nil
	}
	return issues[0].Key, nil
}

// NewDetector builds the detector selected by the configuration.
func NewDetector(cfg *config.Config, tracker Tracker) (Detector, error) {
	switch cfg.Sync.Detection {
	case config.DetectionLink:
		return &LinkDetector{
			Tracker:       tracker,
			LinkTypeID:    cfg.Jira.LinkTypeID,
			TargetProject: cfg.Jira.ProjectKey,
		}, nil
	case config.DetectionLabel:
		return &LabelDetector{
			Tracker:       tracker,
			TargetProject: cfg.Jira.ProjectKey,
			LabelPrefix:   cfg.Sync.LabelPrefix,
		}, nil
	default:
		return nil, &models.ConfigError{
			Reason: fmt.Sprintf("unknown detection strategy %q", cfg.Sync.Detection),
		}
	}
}
