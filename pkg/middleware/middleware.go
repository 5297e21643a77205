// Package middleware provides http.RoundTripper middleware for the client's
// HTTP transport: request tracing, logging, static headers and client-side
// rate limiting.
package middleware

import (
	"net/http"
	"time"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/common"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/scontext"
	"go.uber.org/zap"
)

// Middleware is an alias for the common.Middleware type.
type Middleware = common.Middleware

// Chain chains multiple middlewares together into a single middleware.
// The first middleware in the list is the outermost wrapper: it sees the
// request first and the response last.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Logging logs every round trip.
// The log level is determined by the outcome:
// - transport failures and 500+ status codes are logged at Error level
// - 400-499 status codes are logged at Warn level
// - round trips taking longer than 1 second are logged at Warn level
// - all other round trips are logged at Debug level
func Logging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return common.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			duration := time.Since(start)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", duration),
			}
			if traceID, ok := scontext.GetTraceIDFromRequest(r); ok {
				fields = append(fields, zap.String("trace_id", traceID))
			}
			if op, ok := scontext.GetOperationFromRequest(r); ok {
				fields = append(fields, zap.String("operation", op))
			}

			if err != nil {
				logger.Error("Round trip failed", append(fields, zap.Error(err))...)
				return resp, err
			}

			fields = append(fields, zap.Int("status", resp.StatusCode))
			switch {
			case resp.StatusCode >= 500:
				logger.Error("Server error", fields...)
			case resp.StatusCode >= 400:
				logger.Warn("Client error", fields...)
			case duration > 1*time.Second:
				logger.Warn("Slow request", fields...)
			default:
				logger.Debug("Request", fields...)
			}
			return resp, nil
		})
	}
}

// Headers sets fixed headers on every request. Headers already present on the
// request are left alone.
func Headers(headers map[string]string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return common.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())
			for k, v := range headers {
				if r.Header.Get(k) == "" {
					r.Header.Set(k, v)
				}
			}
			return next.RoundTrip(r)
		})
	}
}
