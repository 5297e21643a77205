package client

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/common"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/middleware"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/transport"
)

// Environment variables read by LoadConfigFromEnv.
const (
	EnvAPIKey    = "SENDWITHUS_API_KEY"
	EnvBaseURL   = "SENDWITHUS_BASE_URL"
	EnvTimeout   = "SENDWITHUS_TIMEOUT"
	EnvRateLimit = "SENDWITHUS_RATE_LIMIT"
)

// Config defines the configuration of a Client.
// Only APIKey is required; every other field has a working default.
type Config struct {
	APIKey            string                     // API key, sent as the basic auth user name (required)
	BaseURL           string                     // Service endpoint; defaults to transport.DefaultBaseURL
	Timeout           time.Duration              // Timeout of a single HTTP exchange; defaults to transport.DefaultTimeout
	RateLimit         *common.RateLimitConfig    // Client-side pacing (optional, nil disables it)
	RateLimiter       common.RateLimiter         // Limiter backing RateLimit; defaults to a leaky bucket per key
	Retry             *transport.RetryConfig     // Transport retries (optional, nil disables them)
	Logger            *zap.Logger                // Logger for client and transport; defaults to a no-op logger
	LogRoundTrips     bool                       // Also log every HTTP attempt, retries included, through middleware.Logging
	Serializer        codec.Serializer           // JSON engine for bodies; defaults to codec.Default
	Metrics           transport.MetricsCollector // Call metrics (optional), e.g. a *metrics.ClientCollector
	HTTPClient        *http.Client               // Base HTTP client (optional); copied, never modified
	TraceIDBufferSize int                        // Buffer size of the trace ID generator (0 uses the shared generator)
	DisableTracing    bool                       // Do not stamp calls with an X-Request-ID header
	Headers           map[string]string          // Extra headers sent on every call
	Middlewares       []common.Middleware        // Additional RoundTripper middlewares, applied innermost
	Defaults          common.CallOverrides       // Settings applied to every call unless overridden per call
}

// Option modifies a Config before the Client is built.
type Option func(*Config)

// WithBaseURL sets the service endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) { c.BaseURL = baseURL }
}

// WithTimeout sets the timeout of a single HTTP exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithSerializer sets the JSON engine.
func WithSerializer(s codec.Serializer) Option {
	return func(c *Config) { c.Serializer = s }
}

// WithRateLimit paces calls to limit per window.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(c *Config) {
		c.RateLimit = &common.RateLimitConfig{BucketName: "sendwithus", Limit: limit, Window: window}
	}
}

// WithRetry enables transport retries.
func WithRetry(retry *transport.RetryConfig) Option {
	return func(c *Config) { c.Retry = retry }
}

// WithMetrics records call metrics into collector.
func WithMetrics(collector transport.MetricsCollector) Option {
	return func(c *Config) { c.Metrics = collector }
}

// WithHTTPClient sets the base HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) { c.HTTPClient = client }
}

// WithHeader adds a header sent on every call.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

// WithRoundTripLogging logs every HTTP attempt in addition to the one line per
// call written by the transport.
func WithRoundTripLogging() Option {
	return func(c *Config) { c.LogRoundTrips = true }
}

// WithMiddleware appends a RoundTripper middleware.
func WithMiddleware(m common.Middleware) Option {
	return func(c *Config) { c.Middlewares = append(c.Middlewares, m) }
}

// WithDefaults sets the settings applied to every call.
func WithDefaults(defaults common.CallOverrides) Option {
	return func(c *Config) { c.Defaults = defaults }
}

// LoadConfigFromEnv builds a Config from the environment, loading a .env file
// from the working directory first when one exists. A .env file that cannot be
// parsed is reported along with the other errors. SENDWITHUS_TIMEOUT is a
// Go duration string and SENDWITHUS_RATE_LIMIT a number of calls per second.
func LoadConfigFromEnv() (*Config, error) {
	var errs []string
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, "invalid .env file: "+err.Error())
	}

	cfg := &Config{
		APIKey:  strings.TrimSpace(os.Getenv(EnvAPIKey)),
		BaseURL: strings.TrimSpace(os.Getenv(EnvBaseURL)),
	}
	if cfg.APIKey == "" {
		errs = append(errs, EnvAPIKey+" is required")
	}

	if val := strings.TrimSpace(os.Getenv(EnvTimeout)); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil || d <= 0 {
			errs = append(errs, EnvTimeout+" must be a positive duration")
		} else {
			cfg.Timeout = d
		}
	}

	if val := strings.TrimSpace(os.Getenv(EnvRateLimit)); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			errs = append(errs, EnvRateLimit+" must be a non-negative integer")
		} else if n > 0 {
			WithRateLimit(n, time.Second)(cfg)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// idGenerator returns the trace ID generator of the config, or nil when
// tracing is disabled. owned reports a generator started for this config only.
func (c *Config) idGenerator() (gen *middleware.IDGenerator, owned bool) {
	switch {
	case c.DisableTracing:
		return nil, false
	case c.TraceIDBufferSize > 0:
		return middleware.NewIDGenerator(c.TraceIDBufferSize), true
	default:
		return middleware.GetDefaultGenerator(), false
	}
}

// transportOptions translates the config into HTTPTransport options. The
// middleware order is trace, round trip logging when enabled, rate limiting,
// headers, then the caller's middlewares.
func (c *Config) transportOptions(logger *zap.Logger, gen *middleware.IDGenerator) []transport.Option {
	opts := []transport.Option{
		transport.WithLogger(logger),
		transport.WithHTTPClient(c.HTTPClient),
		transport.WithBaseURL(c.BaseURL),
		transport.WithTimeout(c.Timeout),
		transport.WithRetryConfig(c.Retry),
		transport.WithMetricsCollector(c.Metrics),
	}

	var chain []common.Middleware
	if gen != nil {
		chain = append(chain, middleware.Trace(gen))
	}
	if c.LogRoundTrips {
		chain = append(chain, middleware.Logging(logger))
	}
	if c.RateLimit != nil && c.RateLimit.Limit > 0 {
		chain = append(chain, middleware.RateLimit(c.RateLimit, c.RateLimiter, logger))
	}
	if len(c.Headers) > 0 {
		chain = append(chain, middleware.Headers(c.Headers))
	}
	chain = append(chain, c.Middlewares...)
	return append(opts, transport.WithMiddleware(middleware.Chain(chain...)))
}
