package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	CfgFile string

	// Version is dynamically set at build time using the -X linker flag.
	// Default value is used for testing and development builds.
	Version = "dev"
)

const (
	configName = "gh-metadata-migrator"

	Provider = "provider"

	SourceTokenEnv  = "source.token-env"
	SourceBaseURL   = "source.base-url"
	SourceVerifyTLS = "source.verify-tls"
	TargetTokenEnv  = "target.token-env"
	TargetBaseURL   = "target.base-url"
	TargetVerifyTLS = "target.verify-tls"
	CABundle        = "ca-bundle"

	InputFile   = "input-file"
	OutputDir   = "output-dir"
	OutputStyle = "output-style"

	Steps         = "migrate.steps"
	ValidateAfter = "migrate.validate"

	MetadataPath      = "metadata.path"
	MetadataBranch    = "metadata.branch"
	MetadataMessage   = "metadata.message"
	MetadataOverwrite = "metadata.overwrite"

	HTTPTimeout      = "http.timeout"
	HTTPMaxRetries   = "http.max-retries"
	HTTPRetryWaitMin = "http.retry-wait-min"
	HTTPRetryWaitMax = "http.retry-wait-max"
	RateLimitMaxWait = "http.rate-limit-max-wait"

	LogLevel  = "log.level"
	LogFormat = "log.format"

	// PairDelimiter separates the source and target identifiers on a line of the input file.
	PairDelimiter = "::"

	// GitHubAPIURL is the public GitHub REST endpoint, used when no base URL is configured.
	GitHubAPIURL = "https://api.github.com"

	// certPathEnv is honored for the CA bundle in addition to CA_BUNDLE.
	certPathEnv = "CERT_PATH"
)

// Init loads the .env file, reads in the config file and ENV variables if set,
// and returns a context carrying the resulting Viper instance.
func Init(ctx context.Context) context.Context {
	// A missing .env file is the common case and is not an error.
	_ = godotenv.Load()

	v := New()

	if CfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(CfgFile)
	} else {
		v.SetConfigName(configName)

		// Search in the working directory
		v.AddConfigPath(".")

		// Search in the user's config directory
		if usrConfig, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(usrConfig)
		}

		// On Darwin, os.UserConfigDir() returns ~/Library/Application Support.  As this is to be used from
		// the command line, it's more likely that the user will want to use XDG_CONFIG_HOME instead.
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(xdgConfigHome)
		} else if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config"))
		}

		// Search in the executable's directory
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	// If a config file is found, read it in.
	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %v\n\n", v.ConfigFileUsed())
	}

	return SetViper(ctx, v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(Provider, "github")

	v.SetDefault(SourceTokenEnv, "GH_SOURCE_TOKEN")
	v.SetDefault(TargetTokenEnv, "GH_TARGET_TOKEN")
	v.SetDefault(SourceBaseURL, GitHubAPIURL)
	v.SetDefault(TargetBaseURL, GitHubAPIURL)
	v.SetDefault(SourceVerifyTLS, true)
	v.SetDefault(TargetVerifyTLS, true)

	v.SetDefault(OutputDir, "logs")
	v.SetDefault(OutputStyle, "styled")

	v.SetDefault(Steps, []string{"labels", "properties", "metadata"})
	v.SetDefault(ValidateAfter, false)

	v.SetDefault(MetadataPath, ".github/custom-metadata.json")
	v.SetDefault(MetadataBranch, "main")
	v.SetDefault(MetadataMessage, "Add custom metadata file")
	v.SetDefault(MetadataOverwrite, false)

	v.SetDefault(HTTPTimeout, 30*time.Second)
	v.SetDefault(HTTPMaxRetries, 3)
	v.SetDefault(HTTPRetryWaitMin, time.Second)
	v.SetDefault(HTTPRetryWaitMax, 30*time.Second)
	v.SetDefault(RateLimitMaxWait, time.Minute)

	v.SetDefault(LogLevel, "info")
	v.SetDefault(LogFormat, "console")

	// CERT_PATH is accepted as an alias for CA_BUNDLE
	_ = v.BindEnv(CABundle, strings.ToUpper(strings.ReplaceAll(CABundle, "-", "_")), certPathEnv)
}

// Token resolves the value of the environment variable named by the given config key.
func Token(ctx context.Context, key string) (string, error) {
	name := Viper(ctx).GetString(key)
	if name == "" {
		return "", fmt.Errorf("no environment variable configured for %s", key)
	}

	token := strings.TrimSpace(os.Getenv(name))
	if token == "" {
		return "", fmt.Errorf("token not found in environment variable %s", name)
	}

	return token, nil
}
