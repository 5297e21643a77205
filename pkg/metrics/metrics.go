// Package metrics provides an interface-based metrics system for the client.
// It defines the interfaces the client records through, so users plug in their
// own backend (see the prometheus subpackage) while the client only depends on
// the methods exposed here.
package metrics

// MetricType represents the type of a metric.
type MetricType string

const (
	// CounterType represents a counter metric.
	CounterType MetricType = "counter"

	// GaugeType represents a gauge metric.
	GaugeType MetricType = "gauge"

	// HistogramType represents a histogram metric.
	HistogramType MetricType = "histogram"
)

// Tags represents a map of key-value pairs for metric tags.
type Tags map[string]string

// Metric is the base interface for all metrics.
type Metric interface {
	// Name returns the metric name.
	Name() string

	// Description returns the metric description.
	Description() string

	// Type returns the metric type.
	Type() MetricType

	// Tags returns the metric tags.
	Tags() Tags
}

// Counter is a metric that represents a monotonically increasing value.
type Counter interface {
	Metric

	// Inc increments the counter by 1.
	Inc()

	// Add adds the given value to the counter.
	Add(value float64)
}

// Gauge is a metric that represents a value that can go up and down.
type Gauge interface {
	Metric

	// Set sets the gauge to the given value.
	Set(value float64)

	// Inc increments the gauge by 1.
	Inc()

	// Dec decrements the gauge by 1.
	Dec()
}

// Histogram is a metric that samples observations and counts them in configurable buckets.
type Histogram interface {
	Metric

	// Observe adds a single observation to the histogram.
	Observe(value float64)
}

// CounterBuilder is a builder for creating counters.
type CounterBuilder interface {
	Name(name string) CounterBuilder
	Description(desc string) CounterBuilder
	Tag(key, value string) CounterBuilder
	Build() Counter
}

// GaugeBuilder is a builder for creating gauges.
type GaugeBuilder interface {
	Name(name string) GaugeBuilder
	Description(desc string) GaugeBuilder
	Tag(key, value string) GaugeBuilder
	Build() Gauge
}

// HistogramBuilder is a builder for creating histograms.
type HistogramBuilder interface {
	Name(name string) HistogramBuilder
	Description(desc string) HistogramBuilder
	Tag(key, value string) HistogramBuilder

	// Buckets sets the bucket boundaries.
	Buckets(buckets []float64) HistogramBuilder

	Build() Histogram
}

// MetricsRegistry creates metrics. Building a metric whose name and tags
// match an existing one returns the existing metric.
type MetricsRegistry interface {
	NewCounter() CounterBuilder
	NewGauge() GaugeBuilder
	NewHistogram() HistogramBuilder
}
