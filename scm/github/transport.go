package github

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// newHTTPClient builds the HTTP client used by go-github: a pooled transport
// with the endpoint's TLS settings, wrapped in a retrying client that bounds
// every attempt by opts.Timeout and retries connection errors, 429 and 5xx.
func newHTTPClient(opts scm.Options, logger *zap.Logger) (*http.Client, error) {
	tlsConfig, err := newTLSConfig(opts)
	if err != nil {
		return nil, err
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.TLSClientConfig = tlsConfig

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}
	retryClient.RetryMax = max(opts.MaxRetries, 0)
	if opts.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = opts.RetryWaitMax
	}
	retryClient.Logger = leveledLogger{logger.Sugar()}

	// hand the final response to go-github so that it can decode the error body
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return retryClient.StandardClient(), nil
}

func newTLSConfig(opts scm.Options) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !opts.VerifyTLS, //nolint:gosec // explicitly requested per endpoint
	}

	if opts.CABundle == "" {
		return tlsConfig, nil
	}

	bundle, err := os.ReadFile(opts.CABundle)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle: %w", err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}

	if !pool.AppendCertsFromPEM(bundle) {
		return nil, fmt.Errorf("no certificates found in CA bundle %s", opts.CABundle)
	}

	tlsConfig.RootCAs = pool

	return tlsConfig, nil
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger. Per-attempt chatter is
// demoted to debug; retries and give-ups surface at warn and error.
type leveledLogger struct {
	logger *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
