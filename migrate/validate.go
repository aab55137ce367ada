package migrate

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// Report lists the source labels and milestones that are absent on the target,
// in source order.
type Report struct {
	MissingLabels     []string
	MissingMilestones []string
}

// Complete reports whether nothing is missing.
func (r *Report) Complete() bool {
	return len(r.MissingLabels) == 0 && len(r.MissingMilestones) == 0
}

// Validate compares labels and milestones of both repositories without changing either.
func (m *Migrator) Validate(ctx context.Context, src, tgt scm.RepoRef) (*Report, error) {
	sourceLabels, err := m.FetchLabels(ctx, m.source, src)
	if err != nil {
		return nil, err
	}

	targetLabels, err := m.FetchLabels(ctx, m.target, tgt)
	if err != nil {
		return nil, err
	}

	sourceMilestones, err := m.FetchMilestones(ctx, m.source, src)
	if err != nil {
		return nil, err
	}

	targetMilestones, err := m.FetchMilestones(ctx, m.target, tgt)
	if err != nil {
		return nil, err
	}

	labelNames := func(labels []*scm.Label) []string {
		names := make([]string, 0, len(labels))
		for _, label := range labels {
			names = append(names, label.Name)
		}
		return names
	}

	milestoneTitles := func(milestones []*scm.Milestone) []string {
		titles := make([]string, 0, len(milestones))
		for _, milestone := range milestones {
			titles = append(titles, milestone.Title)
		}
		return titles
	}

	return &Report{
		MissingLabels:     missing(labelNames(sourceLabels), labelNames(targetLabels)),
		MissingMilestones: missing(milestoneTitles(sourceMilestones), milestoneTitles(targetMilestones)),
	}, nil
}

// missing returns the entries of source not present in target, keeping source order.
func missing(source, target []string) []string {
	absent := mapset.NewThreadUnsafeSet(source...).Difference(mapset.NewThreadUnsafeSet(target...))

	output := make([]string, 0, absent.Cardinality())
	for _, name := range source {
		if absent.Contains(name) {
			output = append(output, name)
			absent.Remove(name)
		}
	}

	return output
}

// logReport records validation findings without affecting the pair status.
func (m *Migrator) logReport(src, tgt scm.RepoRef, report *Report) {
	logger := m.logger.With(zap.Stringer("source", src), zap.Stringer("target", tgt))

	if report.Complete() {
		logger.Info("Validation passed: all labels and milestones present")
		return
	}

	for _, name := range report.MissingLabels {
		logger.Warn("Label not found in target repository", zap.String("label", name))
	}

	for _, title := range report.MissingMilestones {
		logger.Warn("Milestone not found in target repository", zap.String("milestone", title))
	}
}
