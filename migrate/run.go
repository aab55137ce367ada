package migrate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/catalog"
	"github.com/ryclarke/gh-metadata-migrator/output"
	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// now is replaced in tests.
var now = time.Now

// MigratePair runs every enabled step for a single pair and returns its log record.
// Malformed identifiers fail the pair without any remote call.
func (m *Migrator) MigratePair(ctx context.Context, pair catalog.Pair) output.Record {
	record := output.Record{Source: pair.Source, Target: pair.Target}

	result := m.migratePair(ctx, pair)

	record.Timestamp = now()
	record.Status = string(result.Status)
	if !result.OK() {
		record.Error = result.Message
	}

	return record
}

func (m *Migrator) migratePair(ctx context.Context, pair catalog.Pair) Result {
	src, err := scm.ParseRepoRef(pair.Source)
	if err != nil {
		m.logger.Error("Invalid source repository", zap.Int("line", pair.Line), zap.Error(err))
		return failed(err.Error())
	}

	tgt, err := scm.ParseRepoRef(pair.Target)
	if err != nil {
		m.logger.Error("Invalid target repository", zap.Int("line", pair.Line), zap.Error(err))
		return failed(err.Error())
	}

	results := make([]Result, 0, len(m.steps))

	for _, step := range m.steps {
		var result Result

		switch step {
		case StepLabels:
			result = m.MigrateLabelsAndMilestones(ctx, src, tgt)
		case StepProperties:
			result = m.TransferProperties(ctx, src, tgt)
		case StepMetadata:
			result = m.MigrateCustomMetadata(ctx, src, tgt)
		}

		results = append(results, result)
	}

	if m.opts.ValidateAfter {
		if report, err := m.Validate(ctx, src, tgt); err != nil {
			m.logger.Warn("Post-migration validation failed", zap.Stringer("source", src), zap.Stringer("target", tgt), zap.Error(err))
		} else {
			m.logReport(src, tgt, report)
		}
	}

	return combine(m.steps, results)
}

// Run migrates every pair in order, appending one record per pair to sink.
// A failed pair never stops the run; cancellation of ctx stops it between pairs.
func (m *Migrator) Run(ctx context.Context, pairs []catalog.Pair, sink output.Sink) error {
	m.logger.Info("Total repo pairs to process", zap.Int("count", len(pairs)), zap.Strings("steps", m.steps))

	failures := 0

	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("migration interrupted after %d of %d pairs: %w", i, len(pairs), err)
		}

		m.logger.Info("Migrating", zap.Int("index", i+1), zap.String("source", pair.Source), zap.String("target", pair.Target))

		record := m.MigratePair(ctx, pair)
		if record.Status != output.StatusSuccess {
			failures++
		}

		if err := sink.Append(record); err != nil {
			return fmt.Errorf("failed to record result for %s: %w", pair, err)
		}
	}

	m.logger.Info("Migration complete", zap.Int("pairs", len(pairs)), zap.Int("failed", failures))

	return nil
}
