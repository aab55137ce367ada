package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com/"

// pageSize is the maximum page size accepted by the list endpoints.
const pageSize = 100

var _ scm.Provider = new(Github)

func init() {
	// Register the GitHub provider factory
	scm.Register("github", New)
}

// Github implements scm.Provider against the GitHub (or GitHub Enterprise Server) REST API.
type Github struct {
	client           *github.Client
	logger           *zap.Logger
	rateLimitMaxWait time.Duration
}

// New creates a GitHub provider for one endpoint. Each provider owns its HTTP
// client, so source and target may differ in base URL, token and TLS settings.
func New(_ context.Context, opts scm.Options) (scm.Provider, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient, err := newHTTPClient(opts, logger)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(httpClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}

	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return &Github{
		client:           client,
		logger:           logger.With(zap.String("endpoint", baseURL.String())),
		rateLimitMaxWait: opts.RateLimitMaxWait,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}

	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}

	if (baseURL.Scheme != "http" && baseURL.Scheme != "https") || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: expected an absolute http(s) URL", raw)
	}

	return baseURL, nil
}

// call invokes fn, waiting out a rate limit once and retrying before giving up.
// Non-success responses are converted to *scm.StatusError.
func (g *Github) call(ctx context.Context, op string, fn func() (*github.Response, error)) error {
	resp, err := fn()
	if err == nil {
		return nil
	}

	if retry, rateErr := g.handleRateLimitError(ctx, err); rateErr != nil {
		return fmt.Errorf("%w: %w", rateErr, toStatusError(op, resp, err))
	} else if !retry {
		return toStatusError(op, resp, err)
	}

	// retry the request after waiting for the rate limit to reset
	if resp, err = fn(); err != nil {
		return toStatusError(op+" after retry", resp, err)
	}

	return nil
}

// toStatusError converts a go-github error into an *scm.StatusError when the
// server answered, preserving the structured error body.
func toStatusError(op string, resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	statusErr := &scm.StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    err.Error(),
		Err:        err,
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		statusErr.Message = errResp.Message
		if body, marshalErr := json.Marshal(errResp); marshalErr == nil {
			statusErr.Body = body
		}
	}

	return statusErr
}
