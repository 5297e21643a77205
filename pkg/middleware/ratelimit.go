package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/common"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// UberRateLimiter implements common.RateLimiter using Uber's ratelimit library (leaky bucket).
type UberRateLimiter struct {
	limiters sync.Map // map[string]ratelimit.Limiter
	mu       sync.Mutex
}

// NewUberRateLimiter creates a new rate limiter using Uber's ratelimit library.
func NewUberRateLimiter() *UberRateLimiter {
	return &UberRateLimiter{}
}

// getLimiter gets or creates the limiter for key. The rate is part of the
// cache key so one key can be paced at different rates.
func (u *UberRateLimiter) getLimiter(key string, limit int, window time.Duration) ratelimit.Limiter {
	compositeKey := fmt.Sprintf("%s-%d-%s", key, limit, window)

	if limiter, ok := u.limiters.Load(compositeKey); ok {
		return limiter.(ratelimit.Limiter)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Double-check after acquiring lock
	if limiter, ok := u.limiters.Load(compositeKey); ok {
		return limiter.(ratelimit.Limiter)
	}

	limiter := ratelimit.New(limit, ratelimit.Per(window), ratelimit.WithoutSlack)
	u.limiters.Store(compositeKey, limiter)
	return limiter
}

// Ensure UberRateLimiter implements the common.RateLimiter interface.
var _ common.RateLimiter = (*UberRateLimiter)(nil)

// Take blocks until the leaky bucket for key releases the next slot.
func (u *UberRateLimiter) Take(key string, limit int, window time.Duration) time.Duration {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	start := time.Now()
	u.getLimiter(key, limit, window).Take()
	return time.Since(start)
}

// RateLimit paces outgoing requests according to config. Unlike a server-side
// limiter it never rejects: requests wait for their slot.
func RateLimit(config *common.RateLimitConfig, limiter common.RateLimiter, logger *zap.Logger) Middleware {
	if config == nil || config.Limit <= 0 {
		return func(next http.RoundTripper) http.RoundTripper { return next }
	}
	if limiter == nil {
		limiter = NewUberRateLimiter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return common.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			key := config.BucketName
			if config.KeyExtractor != nil {
				k, err := config.KeyExtractor(r)
				if err != nil {
					return nil, fmt.Errorf("rate limit key: %w", err)
				}
				key = config.BucketName + ":" + k
			}

			waited := limiter.Take(key, config.Limit, config.Window)
			if waited > time.Millisecond {
				logger.Debug("Rate limited request",
					zap.String("bucket", config.BucketName),
					zap.String("key", key),
					zap.Int("limit", config.Limit),
					zap.Duration("window", config.Window),
					zap.Duration("waited", waited),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
			}
			if err := r.Context().Err(); err != nil {
				return nil, err
			}
			return next.RoundTrip(r)
		})
	}
}
