// Package transport performs the HTTP exchange with the service. The rest of
// the client only sees the Transport interface: a method, a path and a JSON
// body go in, a status code and a JSON body come out.
package transport

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/transport_mock.go -package=mocks . Transport

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrTransport is matched by every TransportError.
var ErrTransport = errors.New("transport failure")

// Result is the raw outcome of one exchange.
type Result struct {
	StatusCode int
	// Body is the JSON body, or nil when the service sent none.
	Body json.RawMessage
}

// Transport sends one request to the service.
type Transport interface {
	// Do sends body to path with method and returns the service's answer.
	// A non-2xx status is a Result, not an error; errors are reserved for
	// exchanges that produced no status at all.
	Do(ctx context.Context, method, path string, body []byte) (*Result, error)
}

// TransportError reports an exchange that failed before a status was received:
// connection errors, timeouts, cancellation.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Method + " " + e.Path + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MetricsCollector defines an interface for collecting call metrics.
// The operation argument names the call ("send", "batch") when known and
// falls back to the request path.
type MetricsCollector interface {
	RecordRequestStart(method, operation string)
	RecordRequestDuration(method, operation string, statusCode int, duration time.Duration)
	RecordRequestCount(method, operation string, statusCode int)
	RecordRequestError(method, operation string)
	RecordBatchSize(operation string, items int)
}

// NoopMetricsCollector is a metrics collector that does nothing
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRequestStart(method, operation string) {}

func (NoopMetricsCollector) RecordRequestDuration(method, operation string, statusCode int, duration time.Duration) {
}

func (NoopMetricsCollector) RecordRequestCount(method, operation string, statusCode int) {}

func (NoopMetricsCollector) RecordRequestError(method, operation string) {}

func (NoopMetricsCollector) RecordBatchSize(operation string, items int) {}
