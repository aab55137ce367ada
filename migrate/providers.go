package migrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// Endpoint describes the configuration keys of one side of a migration.
type Endpoint struct {
	Name      string
	TokenEnv  string
	BaseURL   string
	VerifyTLS string
}

var (
	// SourceEndpoint is read from the source.* configuration keys.
	SourceEndpoint = Endpoint{Name: "source", TokenEnv: config.SourceTokenEnv, BaseURL: config.SourceBaseURL, VerifyTLS: config.SourceVerifyTLS}
	// TargetEndpoint is read from the target.* configuration keys.
	TargetEndpoint = Endpoint{Name: "target", TokenEnv: config.TargetTokenEnv, BaseURL: config.TargetBaseURL, VerifyTLS: config.TargetVerifyTLS}
)

// ResolveTokens reads both tokens from the environment variables named in the
// configuration. It fails if either is missing, before any network activity.
func ResolveTokens(ctx context.Context) (source, target string, err error) {
	if source, err = config.Token(ctx, SourceEndpoint.TokenEnv); err != nil {
		return "", "", fmt.Errorf("source token: %w", err)
	}

	if target, err = config.Token(ctx, TargetEndpoint.TokenEnv); err != nil {
		return "", "", fmt.Errorf("target token: %w", err)
	}

	return source, target, nil
}

// ProviderOptions builds the connection options for one endpoint from the configuration.
func ProviderOptions(ctx context.Context, endpoint Endpoint, token string, logger *zap.Logger) scm.Options {
	viper := config.Viper(ctx)

	return scm.Options{
		BaseURL:          viper.GetString(endpoint.BaseURL),
		Token:            token,
		VerifyTLS:        viper.GetBool(endpoint.VerifyTLS),
		CABundle:         viper.GetString(config.CABundle),
		Timeout:          viper.GetDuration(config.HTTPTimeout),
		MaxRetries:       viper.GetInt(config.HTTPMaxRetries),
		RetryWaitMin:     viper.GetDuration(config.HTTPRetryWaitMin),
		RetryWaitMax:     viper.GetDuration(config.HTTPRetryWaitMax),
		RateLimitMaxWait: viper.GetDuration(config.RateLimitMaxWait),
		Logger:           logger.With(zap.String("endpoint", endpoint.Name)),
	}
}

// NewProviders resolves both tokens and constructs independent source and
// target providers of the configured kind.
func NewProviders(ctx context.Context, logger *zap.Logger) (source, target scm.Provider, err error) {
	sourceToken, targetToken, err := ResolveTokens(ctx)
	if err != nil {
		return nil, nil, err
	}

	name := config.Viper(ctx).GetString(config.Provider)

	if source, err = scm.Get(ctx, name, ProviderOptions(ctx, SourceEndpoint, sourceToken, logger)); err != nil {
		return nil, nil, fmt.Errorf("failed to create source client: %w", err)
	}

	if target, err = scm.Get(ctx, name, ProviderOptions(ctx, TargetEndpoint, targetToken, logger)); err != nil {
		return nil, nil, fmt.Errorf("failed to create target client: %w", err)
	}

	return source, target, nil
}
