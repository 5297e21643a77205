package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/common"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/scontext"
)

const (
	// DefaultBaseURL is the production endpoint of the service.
	DefaultBaseURL = "https://api.sendwithus.com"

	// ClientHeader identifies the client library to the service.
	ClientHeader = "X-SWU-API-CLIENT"

	// ClientVersion is sent in ClientHeader.
	ClientVersion = "go-1.0.0"

	// DefaultTimeout bounds a single exchange when no timeout is configured.
	DefaultTimeout = 30 * time.Second
)

// Option represents a function that can modify the HTTPTransport
type Option func(*HTTPTransport)

// RetryConfig configures the retry behavior
type RetryConfig struct {
	MaxRetries           int
	InitialInterval      time.Duration
	MaxInterval          time.Duration
	Multiplier           float64
	MaxElapsedTime       time.Duration
	RetryableStatusCodes []int
}

// DefaultRetryConfig provides sensible defaults for retries. Retries are off
// unless a RetryConfig is set with WithRetryConfig.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:           3,
		InitialInterval:      100 * time.Millisecond,
		MaxInterval:          10 * time.Second,
		Multiplier:           2.0,
		MaxElapsedTime:       30 * time.Second,
		RetryableStatusCodes: []int{408, 429, 500, 502, 503, 504},
	}
}

// HTTPTransport is the Transport backed by net/http. It authenticates with
// HTTP basic auth, using the API key as user name and an empty password.
type HTTPTransport struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	defaultHeaders map[string]string
	retryConfig    *RetryConfig
	middlewares    []common.Middleware
	metrics        MetricsCollector
	logger         *zap.Logger
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates an HTTPTransport with the given options.
func NewHTTPTransport(apiKey string, options ...Option) *HTTPTransport {
	t := &HTTPTransport{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			ClientHeader:   ClientVersion,
		},
		metrics: NoopMetricsCollector{},
		logger:  zap.NewNop(),
	}

	for _, option := range options {
		option(t)
	}

	// Apply middlewares in reverse order so the first one is outermost
	if len(t.middlewares) > 0 {
		rt := t.httpClient.Transport
		if rt == nil {
			rt = http.DefaultTransport
		}
		for i := len(t.middlewares) - 1; i >= 0; i-- {
			rt = t.middlewares[i](rt)
		}
		t.httpClient.Transport = rt
	}

	return t
}

// WithBaseURL sets the base URL for all requests
func WithBaseURL(baseURL string) Option {
	return func(t *HTTPTransport) {
		if baseURL != "" {
			t.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithHTTPClient uses a copy of client for all exchanges.
func WithHTTPClient(client *http.Client) Option {
	return func(t *HTTPTransport) {
		if client != nil {
			c := *client
			t.httpClient = &c
		}
	}
}

// WithTimeout sets the timeout of a single exchange
func WithTimeout(timeout time.Duration) Option {
	return func(t *HTTPTransport) {
		if timeout > 0 {
			t.httpClient.Timeout = timeout
		}
	}
}

// WithDefaultHeader adds a default header to all requests
func WithDefaultHeader(key, value string) Option {
	return func(t *HTTPTransport) {
		t.defaultHeaders[key] = value
	}
}

// WithRetryConfig enables retries with the given configuration
func WithRetryConfig(config *RetryConfig) Option {
	return func(t *HTTPTransport) {
		t.retryConfig = config
	}
}

// WithMiddleware adds a RoundTripper middleware
func WithMiddleware(middleware common.Middleware) Option {
	return func(t *HTTPTransport) {
		t.middlewares = append(t.middlewares, middleware)
	}
}

// WithMetricsCollector sets the metrics collector
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(t *HTTPTransport) {
		if collector != nil {
			t.metrics = collector
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *HTTPTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// BaseURL returns the base URL requests are sent to.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// Do performs one exchange, retrying retryable statuses and network errors
// when a RetryConfig is set.
func (t *HTTPTransport) Do(ctx context.Context, method, path string, body []byte) (*Result, error) {
	start := time.Now()

	operation := path
	if op, ok := scontext.GetOperation(ctx); ok {
		operation = op
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := t.baseURL + path

	t.metrics.RecordRequestStart(method, operation)
	if n, ok := scontext.GetBatchSize(ctx); ok {
		t.metrics.RecordBatchSize(operation, n)
	}

	var result *Result
	attempt := func() error {
		result = nil
		req, err := t.newRequest(ctx, method, fullURL, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := t.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		result = &Result{StatusCode: resp.StatusCode, Body: normalizeBody(resp.StatusCode, raw)}
		if t.retryable(resp.StatusCode) {
			return fmt.Errorf("retryable status code: %d", resp.StatusCode)
		}
		return nil
	}

	var err error
	if t.retryConfig != nil && t.retryConfig.MaxRetries > 0 {
		expBackoff := backoff.NewExponentialBackOff()
		expBackoff.InitialInterval = t.retryConfig.InitialInterval
		expBackoff.MaxInterval = t.retryConfig.MaxInterval
		expBackoff.Multiplier = t.retryConfig.Multiplier
		expBackoff.MaxElapsedTime = t.retryConfig.MaxElapsedTime

		policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(t.retryConfig.MaxRetries)), ctx)
		err = backoff.Retry(attempt, policy)
	} else {
		err = attempt()
	}

	duration := time.Since(start)
	statusCode := 0
	if result != nil {
		statusCode = result.StatusCode
	}
	t.metrics.RecordRequestDuration(method, operation, statusCode, duration)
	t.metrics.RecordRequestCount(method, operation, statusCode)

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("operation", operation),
		zap.Duration("duration", duration),
	}
	if traceID, ok := scontext.GetTraceID(ctx); ok {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	// A result means the service answered; its status decides the rest.
	if result == nil {
		t.metrics.RecordRequestError(method, operation)
		t.logger.Error("HTTP request failed", append(fields, zap.Error(err))...)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	fields = append(fields, zap.Int("status", statusCode))
	switch {
	case statusCode >= 500:
		t.metrics.RecordRequestError(method, operation)
		t.logger.Error("HTTP server error", fields...)
	case statusCode >= 400:
		t.metrics.RecordRequestError(method, operation)
		t.logger.Warn("HTTP error response", fields...)
	default:
		t.logger.Debug("HTTP request successful", fields...)
	}
	return result, nil
}

func (t *HTTPTransport) newRequest(ctx context.Context, method, fullURL string, body []byte) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range t.defaultHeaders {
		req.Header.Set(key, value)
	}
	req.SetBasicAuth(t.apiKey, "")
	return req, nil
}

func (t *HTTPTransport) retryable(statusCode int) bool {
	if t.retryConfig == nil {
		return false
	}
	for _, code := range t.retryConfig.RetryableStatusCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// normalizeBody turns the raw body into a JSON value. An empty body becomes
// nil. Plain text sent with a failure status becomes a JSON string so the
// response decoders can surface it as the error message. Invalid JSON sent with
// a success status is passed through and fails at decode time.
func normalizeBody(statusCode int, raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) || response.IsSuccess(statusCode) {
		return trimmed
	}
	quoted, err := json.Marshal(string(trimmed))
	if err != nil {
		return nil
	}
	return quoted
}
