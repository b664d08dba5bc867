// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/inspire-ris/internal/logging"
)

// Doer executes HTTP requests. *http.Client satisfies it; tests substitute
// their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 6 * time.Second

// maxRetryAfter caps a server-supplied Retry-After so a bogus header cannot
// stall a run indefinitely.
const maxRetryAfter = 5 * time.Minute

const defaultMaxRetries = 5

// DoWithRetry executes an HTTP request and waits out HTTP 429 (Too Many
// Requests) responses. The wait honours a Retry-After header given in
// seconds; otherwise it starts at RetryBaseDelay and doubles each attempt.
//
// Only 429 is retried: transport errors and every other status go straight
// back to the caller. When maxRetries is 0 the default (5) is used. If the
// context is cancelled during a wait the function returns ctx.Err(). After
// exhausting retries the last 429 response is returned so the caller can
// inspect it.
func DoWithRetry(ctx context.Context, client Doer, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if attempt >= maxRetries {
			return resp, nil
		}

		wait := retryAfter(resp.Header.Get("Retry-After"))
		if wait == 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logging.Debug(ctx, "rate limited, waiting",
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// retryAfter parses a Retry-After header expressed in seconds. HTTP-date
// values and garbage yield zero.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d
}
