package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/catalog"
	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/migrate"
	"github.com/ryclarke/gh-metadata-migrator/output"
	"github.com/ryclarke/gh-metadata-migrator/utils"
)

const (
	outputDirFlag         = "output-dir"
	stepsFlag             = "steps"
	overwriteMetadataFlag = "overwrite-metadata"
	validateFlag          = "validate"
)

func addMigrateCmd() *cobra.Command {
	// migrateCmd represents the migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate -i <file>",
		Short: "Migrate labels, milestones, custom properties and metadata for each pair",
		Long: `Migrate labels, milestones, custom properties and metadata for each pair

Each line of the input file names a source and a target repository separated by
"` + config.PairDelimiter + `". The enabled steps run in order for every pair, and one row per pair
is written to migration_log_<timestamp>.csv in the output directory. A failed pair
never stops the remaining pairs.

Both tokens are read from the environment variables named by --source-token-env and
--target-token-env before anything else happens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := bindConnectionFlags(cmd); err != nil {
				return err
			}

			if err := utils.BindFlags(cmd, map[string]string{
				outputDirFlag:         config.OutputDir,
				stepsFlag:             config.Steps,
				overwriteMetadataFlag: config.MetadataOverwrite,
				validateFlag:          config.ValidateAfter,
			}); err != nil {
				return err
			}

			opts := migrate.OptionsFromConfig(ctx)
			if _, err := migrate.ParseSteps(opts.Steps); err != nil {
				return err
			}

			// Missing tokens are fatal before any file or connection is created
			if _, _, err := migrate.ResolveTokens(ctx); err != nil {
				return err
			}

			pairs, err := loadPairs(cmd)
			if err != nil {
				return err
			}

			runTime := time.Now()
			dir := config.Viper(ctx).GetString(config.OutputDir)

			// The run log file is only created once the first entry is written
			logger, closeLogger, err := newLogger(cmd, output.RunLogPath(dir, runTime))
			if err != nil {
				return err
			}
			defer closeLogger()

			source, target, err := migrate.NewProviders(ctx, logger)
			if err != nil {
				return err
			}

			migrator, err := migrate.New(source, target, logger, opts)
			if err != nil {
				return err
			}

			migrationLog, err := output.NewMigrationLog(dir, runTime)
			if err != nil {
				return err
			}
			defer migrationLog.Close()

			warnDuplicateTargets(logger, pairs)

			printer := output.NewPrinter(ctx, cmd.OutOrStdout())
			defer printer.Footer(migrationLog.Path())

			console := output.BestEffort(printer, func(record output.Record, err error) {
				logger.Warn("Failed to print pair result",
					zap.String("source", record.Source), zap.String("target", record.Target), zap.Error(err))
			})

			if err := migrator.Run(ctx, pairs, output.Multi(migrationLog, console)); err != nil {
				return fmt.Errorf("migration stopped: %w", err)
			}

			return nil
		},
	}

	addInputFlag(migrateCmd)
	addConnectionFlags(migrateCmd)

	migrateCmd.Flags().String(outputDirFlag, "", "directory receiving the migration logs (default \"logs\")")
	migrateCmd.Flags().StringSlice(stepsFlag, nil, fmt.Sprintf("steps to run, in order (default %v)", migrate.AvailableSteps))
	migrateCmd.Flags().Bool(overwriteMetadataFlag, false, "replace an existing metadata file in the target repository")
	migrateCmd.Flags().Bool(validateFlag, false, "check labels and milestones of each pair after migrating it")

	return migrateCmd
}

func warnDuplicateTargets(logger *zap.Logger, pairs []catalog.Pair) {
	for _, target := range catalog.DuplicateTargets(pairs) {
		logger.Warn("Target repository named by more than one pair", zap.String("target", target))
	}
}
