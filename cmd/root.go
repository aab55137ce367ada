package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/output"
	"github.com/ryclarke/gh-metadata-migrator/utils"

	// Register the SCM providers
	_ "github.com/ryclarke/gh-metadata-migrator/scm/github"
)

const (
	configFlag      = "config"
	logLevelFlag    = "log-level"
	logFormatFlag   = "log-format"
	outputStyleFlag = "output-style"
)

// RootCmd configures the top-level root command along with all subcommands and flags
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gh-metadata-migrator",
		Short: "Migrate repository metadata between GitHub instances",
		Long: `Migrate repository metadata between GitHub instances

For each source::target pair in the input file, labels, milestones, custom property
values and the custom metadata file are copied from the source repository to the
target repository. Every pair is recorded in a CSV migration log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// The config file named by --config is only known after flag parsing
			if cmd.Flags().Changed(configFlag) {
				ctx = config.Init(ctx)
				cmd.SetContext(ctx)
			}

			if err := utils.BindFlags(cmd, map[string]string{
				logLevelFlag:    config.LogLevel,
				logFormatFlag:   config.LogFormat,
				outputStyleFlag: config.OutputStyle,
			}); err != nil {
				return err
			}

			if err := utils.ValidateEnumConfig(ctx, config.LogLevel, utils.AvailableLogLevels); err != nil {
				return err
			}
			if err := utils.ValidateEnumConfig(ctx, config.LogFormat, utils.AvailableLogFormats); err != nil {
				return err
			}
			if err := utils.ValidateEnumConfig(ctx, config.OutputStyle, output.AvailableStyles); err != nil {
				return err
			}

			logger, _, err := newLogger(cmd, "")
			if err != nil {
				return err
			}

			cmd.SetContext(utils.WithLogger(ctx, logger))

			return nil
		},
		Version: config.Version,
	}

	// Add all subcommands to the root
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the current gh-metadata-migrator version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "gh-metadata-migrator %s\n", config.Version)
			},
		},
		addMigrateCmd(),
		addValidateCmd(),
		addPairsCmd(),
	)

	rootCmd.PersistentFlags().StringVar(&config.CfgFile, configFlag, "", "config file (default is gh-metadata-migrator.yaml)")
	rootCmd.PersistentFlags().String(logLevelFlag, "", fmt.Sprintf("log level: \"%v\" (default \"info\")", strings.Join(utils.AvailableLogLevels, "\", \"")))
	rootCmd.PersistentFlags().String(logFormatFlag, "", fmt.Sprintf("log format: \"%v\" (default \"console\")", strings.Join(utils.AvailableLogFormats, "\", \"")))
	rootCmd.PersistentFlags().StringP(outputStyleFlag, "o", "", fmt.Sprintf("output style: \"%v\" (default \"styled\")", strings.Join(output.AvailableStyles, "\", \"")))

	return rootCmd
}

// newLogger builds a logger from the configured level and format. Console output
// follows the command's error writer; runLogPath, if set, receives a JSON copy.
func newLogger(cmd *cobra.Command, runLogPath string) (*zap.Logger, func() error, error) {
	viper := config.Viper(cmd.Context())

	factory := utils.NewLoggerFactory()
	if w := cmd.ErrOrStderr(); w != os.Stderr {
		factory = factory.WithConsole(w, false)
	}

	return factory.CreateLogger(
		utils.LogLevel(viper.GetString(config.LogLevel)),
		utils.LogFormat(viper.GetString(config.LogFormat)),
		runLogPath,
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd().ExecuteContext(config.Init(ctx)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
