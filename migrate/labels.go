package migrate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// FetchLabels lists all labels of a repository on the given side.
func (m *Migrator) FetchLabels(ctx context.Context, provider scm.Provider, repo scm.RepoRef) ([]*scm.Label, error) {
	labels, err := provider.ListLabels(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch labels from %s: %w", repo, err)
	}

	m.logger.Debug("Fetched labels", zap.Stringer("repo", repo), zap.Int("count", len(labels)))

	return labels, nil
}

// FetchMilestones lists all milestones, open and closed, of a repository on the given side.
func (m *Migrator) FetchMilestones(ctx context.Context, provider scm.Provider, repo scm.RepoRef) ([]*scm.Milestone, error) {
	milestones, err := provider.ListMilestones(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch milestones from %s: %w", repo, err)
	}

	m.logger.Debug("Fetched milestones", zap.Stringer("repo", repo), zap.Int("count", len(milestones)))

	return milestones, nil
}

// CreateLabel creates one label on the target. A label that already exists is
// logged and skipped.
func (m *Migrator) CreateLabel(ctx context.Context, repo scm.RepoRef, label *scm.Label) error {
	err := m.target.CreateLabel(ctx, repo, label)

	switch {
	case errors.Is(err, scm.ErrAlreadyExists):
		m.logger.Info("Label already exists", zap.String("label", label.Name), zap.Stringer("repo", repo))
		return nil
	case err != nil:
		return fmt.Errorf("failed to create label %q in %s: %w", label.Name, repo, err)
	}

	m.logger.Info("Created label", zap.String("label", label.Name), zap.Stringer("repo", repo))

	return nil
}

// CreateMilestone creates one milestone on the target. A milestone that already
// exists is logged and skipped.
func (m *Migrator) CreateMilestone(ctx context.Context, repo scm.RepoRef, milestone *scm.Milestone) error {
	err := m.target.CreateMilestone(ctx, repo, milestone)

	switch {
	case errors.Is(err, scm.ErrAlreadyExists):
		m.logger.Info("Milestone already exists", zap.String("milestone", milestone.Title), zap.Stringer("repo", repo))
		return nil
	case err != nil:
		return fmt.Errorf("failed to create milestone %q in %s: %w", milestone.Title, repo, err)
	}

	m.logger.Info("Created milestone", zap.String("milestone", milestone.Title), zap.Stringer("repo", repo))

	return nil
}

// MigrateLabelsAndMilestones copies every label, then every milestone, in fetch
// order. The first error stops the transfer and fails the result.
func (m *Migrator) MigrateLabelsAndMilestones(ctx context.Context, src, tgt scm.RepoRef) Result {
	if err := m.migrateLabelsAndMilestones(ctx, src, tgt); err != nil {
		m.logger.Error("Failed to migrate labels and milestones",
			zap.Stringer("source", src), zap.Stringer("target", tgt), zap.Error(err), responseField(err))
		return failed(err.Error())
	}

	return succeeded("Success")
}

func (m *Migrator) migrateLabelsAndMilestones(ctx context.Context, src, tgt scm.RepoRef) error {
	labels, err := m.FetchLabels(ctx, m.source, src)
	if err != nil {
		return err
	}

	for _, label := range labels {
		if err := m.CreateLabel(ctx, tgt, label); err != nil {
			return err
		}
	}

	milestones, err := m.FetchMilestones(ctx, m.source, src)
	if err != nil {
		return err
	}

	for _, milestone := range milestones {
		if err := m.CreateMilestone(ctx, tgt, milestone); err != nil {
			return err
		}
	}

	return nil
}
