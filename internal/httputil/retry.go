// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryWait is the fixed pause before retrying an HTTP 429 response.
// Scopus documents a 60-second throttling window. Tests override this to
// avoid real sleeps.
var RetryWait = 60 * time.Second

const defaultMaxRetries = 1

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) after a fixed RetryWait pause. This is a one-shot courtesy
// retry, not a general backoff policy.
//
// When maxRetries is 0 the default (1) is used. On each 429 the response
// body is drained and closed before waiting. If the context is cancelled
// during the wait the function returns ctx.Err(). After exhausting retries
// the last 429 response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
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

		// Exhausted retries — return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(RetryWait):
		}
	}
}
