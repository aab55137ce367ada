package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/migrate"
	"github.com/ryclarke/gh-metadata-migrator/output"
	"github.com/ryclarke/gh-metadata-migrator/scm"
	"github.com/ryclarke/gh-metadata-migrator/utils"
)

func addValidateCmd() *cobra.Command {
	// validateCmd compares both sides of each pair without writing to either
	validateCmd := &cobra.Command{
		Use:   "validate -i <file>",
		Short: "Report labels and milestones missing from each target repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := utils.Logger(ctx)

			if err := bindConnectionFlags(cmd); err != nil {
				return err
			}

			pairs, err := loadPairs(cmd)
			if err != nil {
				return err
			}

			source, target, err := migrate.NewProviders(ctx, logger)
			if err != nil {
				return err
			}

			migrator, err := migrate.New(source, target, logger, migrate.Options{Steps: []string{migrate.StepLabels}})
			if err != nil {
				return err
			}

			printer := output.NewPrinter(ctx, cmd.OutOrStdout())
			incomplete := 0

			for i, pair := range pairs {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("validation interrupted after %d of %d pairs: %w", i, len(pairs), err)
				}

				src, err := scm.ParseRepoRef(pair.Source)
				if err != nil {
					printer.Failure(pair.Source, pair.Target, err)
					incomplete++
					continue
				}

				tgt, err := scm.ParseRepoRef(pair.Target)
				if err != nil {
					printer.Failure(pair.Source, pair.Target, err)
					incomplete++
					continue
				}

				report, err := migrator.Validate(ctx, src, tgt)
				if err != nil {
					printer.Failure(pair.Source, pair.Target, err)
					incomplete++
					continue
				}

				if !report.Complete() {
					incomplete++
				}

				printer.Report(pair.Source, pair.Target, report.MissingLabels, report.MissingMilestones)
			}

			logger.Info("Validation complete", zap.Int("pairs", len(pairs)), zap.Int("incomplete", incomplete))

			return nil
		},
	}

	addInputFlag(validateCmd)
	addConnectionFlags(validateCmd)

	return validateCmd
}
