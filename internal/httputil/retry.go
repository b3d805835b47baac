// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP client shared by the Entrez calls.
package httputil

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// RetryMaxDelay caps a single backoff wait.
var RetryMaxDelay = 60 * time.Second

// Defaults applied when HTTPConfig leaves a field zero.
const (
	DefaultMaxRetries = 5
	DefaultTimeout    = 30 * time.Second
	DefaultUserAgent  = "get-papers-list/0.1"
)

// NewClient returns a resty client that retries on HTTP 429 (Too Many
// Requests) with jittered exponential backoff starting at RetryBaseDelay
// and capped at RetryMaxDelay.
//
// When cfg.MaxRetries is 0 the default (5) is used. After exhausting
// retries the last 429 response is returned so the caller can inspect it.
// Transport errors and other status codes are not retried. A cancelled
// request context ends the wait early with ctx.Err().
func NewClient(cfg types.HTTPConfig) *resty.Client {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", ua).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(RetryBaseDelay).
		SetRetryMaxWaitTime(RetryMaxDelay).
		AddRetryCondition(isRateLimited)
}

// isRateLimited reports whether a response asks the client to back off.
func isRateLimited(resp *resty.Response, _ error) bool {
	return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
}
