// Package common provides shared types used across the client packages.
package common

import (
	"net/http"
	"time"
)

// Middleware wraps an http.RoundTripper to add behavior to every outgoing
// HTTP request.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to the http.RoundTripper interface.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r).
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// RateLimiter paces outgoing requests.
type RateLimiter interface {
	// Take blocks until a request for key may proceed under a budget of limit
	// requests per window, and returns how long it waited.
	Take(key string, limit int, window time.Duration) time.Duration
}

// RateLimitConfig defines client-side rate limiting.
type RateLimitConfig struct {
	// BucketName provides a namespace for the limit.
	// Clients sharing a BucketName and limiter share the same budget.
	BucketName string

	// Limit is the maximum number of requests allowed within the Window.
	Limit int

	// Window is the time span of the limit (e.g., 1*time.Second).
	Window time.Duration

	// KeyExtractor optionally derives a per-request key, for instance to pace
	// each route separately. When nil every request shares the bucket.
	KeyExtractor func(r *http.Request) (key string, err error)
}

// CallOverrides contains settings that can be overridden per operation.
// A zero value in any field means no override is set.
type CallOverrides struct {
	// Timeout bounds the whole call, transport retries included.
	Timeout time.Duration

	// MaxBatchSize caps the number of items a batch call may carry.
	MaxBatchSize int
}

// HasTimeout returns true if a timeout override is set (non-zero).
func (o *CallOverrides) HasTimeout() bool {
	return o.Timeout > 0
}

// HasMaxBatchSize returns true if a batch size override is set (non-zero).
func (o *CallOverrides) HasMaxBatchSize() bool {
	return o.MaxBatchSize > 0
}

// Merge returns o with every unset field taken from fallback.
func (o CallOverrides) Merge(fallback CallOverrides) CallOverrides {
	if !o.HasTimeout() {
		o.Timeout = fallback.Timeout
	}
	if !o.HasMaxBatchSize() {
		o.MaxBatchSize = fallback.MaxBatchSize
	}
	return o
}
