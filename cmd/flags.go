package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ryclarke/gh-metadata-migrator/catalog"
	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/utils"
)

const (
	inputFileFlag      = "input-file"
	sourceTokenEnvFlag = "source-token-env"
	targetTokenEnvFlag = "target-token-env"
	sourceBaseURLFlag  = "source-base-url"
	targetBaseURLFlag  = "target-base-url"
	verifySourceFlag   = "verify-source"
	noVerifySourceFlag = "no-verify-source"
	verifyTargetFlag   = "verify-target"
	noVerifyTargetFlag = "no-verify-target"
	caBundleFlag       = "ca-bundle"
	timeoutFlag        = "timeout"
	maxRetriesFlag     = "max-retries"
)

// addInputFlag adds the -i/--input-file flag shared by every command that reads pairs.
func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(inputFileFlag, "i", "", fmt.Sprintf("file listing one source%starget pair per line", config.PairDelimiter))
}

// connectionFlags describes how to reach both endpoints.
func connectionFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("connection", pflag.ContinueOnError)

	flags.String(sourceTokenEnvFlag, "", "environment variable holding the source token (default \"GH_SOURCE_TOKEN\")")
	flags.String(targetTokenEnvFlag, "", "environment variable holding the target token (default \"GH_TARGET_TOKEN\")")
	flags.String(sourceBaseURLFlag, "", "source API base URL (default \""+config.GitHubAPIURL+"\")")
	flags.String(targetBaseURLFlag, "", "target API base URL (default \""+config.GitHubAPIURL+"\")")
	flags.String(caBundleFlag, "", "PEM file of additional trusted CA certificates (or CERT_PATH)")
	flags.Duration(timeoutFlag, 0, "timeout of a single HTTP attempt (default 30s)")
	flags.Int(maxRetriesFlag, 0, "retries of a failed HTTP attempt (default 3)")

	return flags
}

// addConnectionFlags adds the connection flags and the TLS verification flag pairs.
func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().AddFlagSet(connectionFlags())

	utils.BuildBoolFlags(cmd, verifySourceFlag, "", noVerifySourceFlag, "", "verify the TLS certificate of the source endpoint")
	utils.BuildBoolFlags(cmd, verifyTargetFlag, "", noVerifyTargetFlag, "", "verify the TLS certificate of the target endpoint")
}

// bindConnectionFlags binds the input and connection flags to the configuration.
func bindConnectionFlags(cmd *cobra.Command) error {
	if err := utils.BindFlags(cmd, map[string]string{
		inputFileFlag:      config.InputFile,
		sourceTokenEnvFlag: config.SourceTokenEnv,
		targetTokenEnvFlag: config.TargetTokenEnv,
		sourceBaseURLFlag:  config.SourceBaseURL,
		targetBaseURLFlag:  config.TargetBaseURL,
		caBundleFlag:       config.CABundle,
		timeoutFlag:        config.HTTPTimeout,
		maxRetriesFlag:     config.HTTPMaxRetries,
	}); err != nil {
		return err
	}

	if err := utils.BindBoolFlags(cmd, config.SourceVerifyTLS, verifySourceFlag, noVerifySourceFlag); err != nil {
		return err
	}

	return utils.BindBoolFlags(cmd, config.TargetVerifyTLS, verifyTargetFlag, noVerifyTargetFlag)
}

// loadPairs reads the configured input file.
func loadPairs(cmd *cobra.Command) ([]catalog.Pair, error) {
	if err := utils.ValidateRequiredConfig(cmd.Context(), config.InputFile); err != nil {
		return nil, err
	}

	path := strings.TrimSpace(config.Viper(cmd.Context()).GetString(config.InputFile))

	return catalog.LoadPairs(cmd.Context(), path)
}
