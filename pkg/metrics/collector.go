package metrics

import (
	"strconv"
	"time"
)

// CollectorConfig selects which client metrics are recorded.
type CollectorConfig struct {
	// EnableLatency records call latency per operation.
	EnableLatency bool

	// EnableCount counts calls per operation and status code.
	EnableCount bool

	// EnableErrors counts failed calls (transport failures and 4xx/5xx statuses).
	EnableErrors bool

	// EnableInFlight tracks the number of calls currently in progress.
	EnableInFlight bool

	// EnableBatchSize records the item count of batch calls.
	EnableBatchSize bool

	// LatencyBuckets overrides the latency histogram buckets, in seconds.
	LatencyBuckets []float64
}

// DefaultCollectorConfig enables every metric.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		EnableLatency:   true,
		EnableCount:     true,
		EnableErrors:    true,
		EnableInFlight:  true,
		EnableBatchSize: true,
	}
}

// ClientCollector records the client's call metrics into a MetricsRegistry.
// The operation label is the call's operation name (e.g. "send", "batch"),
// never the raw path, so label cardinality stays bounded.
type ClientCollector struct {
	registry MetricsRegistry
	config   CollectorConfig
	inFlight Gauge
}

// NewClientCollector creates a ClientCollector.
func NewClientCollector(registry MetricsRegistry, config CollectorConfig) *ClientCollector {
	c := &ClientCollector{registry: registry, config: config}
	if config.EnableInFlight {
		c.inFlight = registry.NewGauge().
			Name("client_requests_in_flight").
			Description("Number of calls currently in progress").
			Build()
	}
	return c
}

// RecordRequestStart marks a call as in progress.
func (c *ClientCollector) RecordRequestStart(method, operation string) {
	if c.inFlight != nil {
		c.inFlight.Inc()
	}
}

// RecordRequestDuration observes the latency of a finished call.
func (c *ClientCollector) RecordRequestDuration(method, operation string, statusCode int, duration time.Duration) {
	if c.inFlight != nil {
		c.inFlight.Dec()
	}
	if !c.config.EnableLatency {
		return
	}
	b := c.registry.NewHistogram().
		Name("client_request_latency_seconds").
		Description("Call latency in seconds").
		Tag("operation", operation).
		Tag("method", method)
	if len(c.config.LatencyBuckets) > 0 {
		b = b.Buckets(c.config.LatencyBuckets)
	}
	b.Build().Observe(duration.Seconds())
}

// RecordRequestCount counts a finished call.
func (c *ClientCollector) RecordRequestCount(method, operation string, statusCode int) {
	if !c.config.EnableCount {
		return
	}
	c.registry.NewCounter().
		Name("client_requests_total").
		Description("Total number of calls").
		Tag("operation", operation).
		Tag("method", method).
		Tag("status_code", strconv.Itoa(statusCode)).
		Build().
		Inc()
}

// RecordRequestError counts a failed call.
func (c *ClientCollector) RecordRequestError(method, operation string) {
	if !c.config.EnableErrors {
		return
	}
	c.registry.NewCounter().
		Name("client_request_errors_total").
		Description("Total number of failed calls").
		Tag("operation", operation).
		Tag("method", method).
		Build().
		Inc()
}

// RecordBatchSize observes the item count of a batch call.
func (c *ClientCollector) RecordBatchSize(operation string, items int) {
	if !c.config.EnableBatchSize {
		return
	}
	c.registry.NewHistogram().
		Name("client_batch_items").
		Description("Number of items per batch call").
		Tag("operation", operation).
		Buckets([]float64{1, 2, 5, 10, 25, 50, 100}).
		Build().
		Observe(float64(items))
}
