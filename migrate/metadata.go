package migrate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

const metadataNotFoundMessage = "metadata file not found"

// MigrateCustomMetadata copies the custom metadata file from source to target.
// A missing source file is a warning, not a failure. Unless overwriting is
// enabled, an existing target file fails the transfer.
func (m *Migrator) MigrateCustomMetadata(ctx context.Context, src, tgt scm.RepoRef) Result {
	path := m.opts.MetadataPath
	logger := m.logger.With(zap.String("path", path), zap.Stringer("source", src), zap.Stringer("target", tgt))

	file, err := m.source.GetFile(ctx, src, path)
	if errors.Is(err, scm.ErrNotFound) {
		logger.Warn("Metadata file not found in source repository")
		return succeeded(metadataNotFoundMessage)
	} else if err != nil {
		logger.Error("Failed to read metadata file", zap.Error(err), responseField(err))
		return failed(fmt.Sprintf("failed to read %s from %s: %v", path, src, err))
	}

	update := &scm.FileUpdate{
		Path:    path,
		Branch:  m.opts.MetadataBranch,
		Message: m.opts.MetadataMessage,
		Content: file.Content,
	}

	if m.opts.OverwriteMetadata {
		existing, err := m.target.GetFile(ctx, tgt, path)
		switch {
		case err == nil:
			update.SHA = existing.SHA
			logger.Debug("Overwriting existing metadata file", zap.String("sha", existing.SHA))
		case !errors.Is(err, scm.ErrNotFound):
			logger.Error("Failed to read existing metadata file", zap.Error(err), responseField(err))
			return failed(fmt.Sprintf("failed to read %s from %s: %v", path, tgt, err))
		}
	}

	if err := m.target.PutFile(ctx, tgt, update); err != nil {
		logger.Error("Failed to upload metadata file", zap.Int("status", scm.StatusCode(err)), zap.Error(err), responseField(err))

		if errors.Is(err, scm.ErrAlreadyExists) && !m.opts.OverwriteMetadata {
			return failed(fmt.Sprintf("%s already exists in %s (enable metadata overwrite to replace it): %v", path, tgt, err))
		}

		return failed(fmt.Sprintf("failed to upload %s to %s: %v", path, tgt, err))
	}

	logger.Info("Custom metadata migrated", zap.String("branch", update.Branch))

	return succeeded("Success")
}
