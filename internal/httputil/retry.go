// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the retrying HTTP helper used to fetch remote
// documents.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the first backoff step. Tests override this to avoid
// real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryDelay caps both the exponential backoff and any Retry-After hint.
var MaxRetryDelay = time.Minute

const defaultMaxRetries = 4

// Retryable reports whether a response status is worth retrying: rate
// limiting and temporary server unavailability.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes req and retries Retryable responses with exponential
// backoff starting at RetryBaseDelay. A Retry-After header given in seconds
// replaces the computed delay. Both are capped at MaxRetryDelay.
//
// When maxRetries is 0 the default (4) is used. Retried bodies are drained
// and closed. If ctx ends during a wait the function returns ctx.Err().
// After exhausting retries the last response is returned for the caller to
// inspect.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	wait := RetryBaseDelay << attempt
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	if wait > MaxRetryDelay || wait < 0 {
		wait = MaxRetryDelay
	}
	return wait
}
