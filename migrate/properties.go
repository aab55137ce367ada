package migrate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

const noPropertiesMessage = "no custom properties to apply"

// FetchProperties returns the custom property values of the source repository.
// Any failure is logged and yields an empty set.
func (m *Migrator) FetchProperties(ctx context.Context, repo scm.RepoRef) []*scm.PropertyValue {
	props, err := m.source.GetCustomProperties(ctx, repo)
	if err != nil {
		m.logger.Error("Failed to fetch custom properties",
			zap.Stringer("repo", repo), zap.Int("status", scm.StatusCode(err)), zap.Error(err), responseField(err))
		return nil
	}

	m.logger.Debug("Fetched custom properties", zap.Stringer("repo", repo), zap.Int("count", len(props)))

	return props
}

// ApplyProperties writes the given property values to the target repository.
// An empty set is a successful no-op.
func (m *Migrator) ApplyProperties(ctx context.Context, repo scm.RepoRef, props []*scm.PropertyValue) Result {
	if len(props) == 0 {
		m.logger.Info("No custom properties to apply", zap.Stringer("repo", repo))
		return succeeded(noPropertiesMessage)
	}

	if err := m.target.SetCustomProperties(ctx, repo, props); err != nil {
		m.logger.Error("Failed to apply custom properties",
			zap.Stringer("repo", repo), zap.Int("status", scm.StatusCode(err)), zap.Error(err), responseField(err))
		return failed(err.Error())
	}

	m.logger.Info("Applied custom properties", zap.Stringer("repo", repo), zap.Int("count", len(props)))

	return succeeded("Success")
}

// TransferProperties copies custom property values from source to target.
func (m *Migrator) TransferProperties(ctx context.Context, src, tgt scm.RepoRef) Result {
	return m.ApplyProperties(ctx, tgt, m.FetchProperties(ctx, src))
}

// responseField attaches the error response body to a log entry, as structured
// JSON when it parses.
func responseField(err error) zap.Field {
	var statusErr *scm.StatusError
	if !errors.As(err, &statusErr) {
		return zap.Skip()
	}

	if body := statusErr.JSONBody(); body != nil {
		return zap.Reflect("response", body)
	}

	if len(statusErr.Body) > 0 {
		return zap.ByteString("response", statusErr.Body)
	}

	return zap.Skip()
}
