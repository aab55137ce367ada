package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"
)

// handleRateLimitError waits for a primary or secondary rate limit to lift.
// It reports whether the request should be retried; a non-nil error means the
// wait was abandoned (limit resets too far in the future or ctx was cancelled).
func (g *Github) handleRateLimitError(ctx context.Context, err error) (bool, error) {
	var wait time.Duration

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError

	switch {
	case errors.As(err, &rateErr):
		wait = time.Until(rateErr.Rate.Reset.Time)
	case errors.As(err, &abuseErr):
		wait = abuseErr.GetRetryAfter()
	default:
		return false, nil
	}

	wait = max(wait, 0)
	if wait > g.rateLimitMaxWait {
		return false, fmt.Errorf("rate limit resets in %s, longer than the allowed wait of %s", wait.Round(time.Second), g.rateLimitMaxWait)
	}

	g.logger.Warn("Rate limited, waiting before retry", zap.Duration("wait", wait))

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
		return true, nil
	}
}
