// Package prometheus adapts a Prometheus registerer to the client's
// metrics.MetricsRegistry interface.
package prometheus

import (
	"errors"
	"maps"

	"github.com/prometheus/client_golang/prometheus"

	swu_metrics "github.com/Mimeo/SendWithUs.Client-sub000/pkg/metrics"
)

// Registry adapts a prometheus.Registerer to metrics.MetricsRegistry.
// Tags become Prometheus const labels.
type Registry struct {
	registry  prometheus.Registerer
	namespace string
	subsystem string
	tags      swu_metrics.Tags
}

var _ swu_metrics.MetricsRegistry = (*Registry)(nil)

// NewRegistry creates a new adapter. Every metric name is prefixed with
// namespace and subsystem.
func NewRegistry(registry prometheus.Registerer, namespace, subsystem string) *Registry {
	if registry == nil {
		panic("prometheus registry cannot be nil")
	}
	return &Registry{
		registry:  registry,
		namespace: namespace,
		subsystem: subsystem,
		tags:      make(swu_metrics.Tags),
	}
}

// WithTags returns a Registry whose metrics all carry tags in addition to
// their own. Builder tags win over registry tags.
func (r *Registry) WithTags(tags swu_metrics.Tags) *Registry {
	merged := make(swu_metrics.Tags, len(r.tags)+len(tags))
	maps.Copy(merged, r.tags)
	maps.Copy(merged, tags)
	return &Registry{registry: r.registry, namespace: r.namespace, subsystem: r.subsystem, tags: merged}
}

// constLabels merges the registry tags under the builder labels.
func (r *Registry) constLabels(builder prometheus.Labels) prometheus.Labels {
	labels := make(prometheus.Labels, len(r.tags)+len(builder))
	maps.Copy(labels, r.tags)
	maps.Copy(labels, builder)
	return labels
}

// register registers c, or returns the collector already registered under the
// same descriptor. Any other registration error is a programming error.
func register[C prometheus.Collector](r prometheus.Registerer, c C) C {
	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// metricInfo implements metrics.Metric for every adapter type.
type metricInfo struct {
	name        string
	description string
	typ         swu_metrics.MetricType
	tags        swu_metrics.Tags
}

func newMetricInfo(name, help string, typ swu_metrics.MetricType, labels prometheus.Labels) metricInfo {
	tags := make(swu_metrics.Tags, len(labels))
	maps.Copy(tags, labels)
	return metricInfo{name: name, description: help, typ: typ, tags: tags}
}

func (m metricInfo) Name() string                 { return m.name }
func (m metricInfo) Description() string          { return m.description }
func (m metricInfo) Type() swu_metrics.MetricType { return m.typ }
func (m metricInfo) Tags() swu_metrics.Tags       { return m.tags }

// --- Counter ---

// NewCounter starts building a counter.
func (r *Registry) NewCounter() swu_metrics.CounterBuilder {
	return &CounterBuilder{registry: r, opts: prometheus.CounterOpts{Namespace: r.namespace, Subsystem: r.subsystem}}
}

// CounterBuilder adapts Prometheus counter creation.
type CounterBuilder struct {
	registry *Registry
	opts     prometheus.CounterOpts
	labels   prometheus.Labels
}

func (b *CounterBuilder) Name(name string) swu_metrics.CounterBuilder {
	b.opts.Name = name
	return b
}

func (b *CounterBuilder) Description(desc string) swu_metrics.CounterBuilder {
	b.opts.Help = desc
	return b
}

func (b *CounterBuilder) Tag(key, value string) swu_metrics.CounterBuilder {
	if b.labels == nil {
		b.labels = make(prometheus.Labels)
	}
	b.labels[key] = value
	return b
}

// Build creates and registers the counter.
func (b *CounterBuilder) Build() swu_metrics.Counter {
	b.opts.ConstLabels = b.registry.constLabels(b.labels)
	c := register[prometheus.Counter](b.registry.registry, prometheus.NewCounter(b.opts))
	return &Counter{metricInfo: newMetricInfo(b.opts.Name, b.opts.Help, swu_metrics.CounterType, b.opts.ConstLabels), metric: c}
}

// Counter adapts prometheus.Counter to metrics.Counter.
type Counter struct {
	metricInfo
	metric prometheus.Counter
}

func (c *Counter) Inc()              { c.metric.Inc() }
func (c *Counter) Add(value float64) { c.metric.Add(value) }

// --- Gauge ---

// NewGauge starts building a gauge.
func (r *Registry) NewGauge() swu_metrics.GaugeBuilder {
	return &GaugeBuilder{registry: r, opts: prometheus.GaugeOpts{Namespace: r.namespace, Subsystem: r.subsystem}}
}

// GaugeBuilder adapts Prometheus gauge creation.
type GaugeBuilder struct {
	registry *Registry
	opts     prometheus.GaugeOpts
	labels   prometheus.Labels
}

func (b *GaugeBuilder) Name(name string) swu_metrics.GaugeBuilder {
	b.opts.Name = name
	return b
}

func (b *GaugeBuilder) Description(desc string) swu_metrics.GaugeBuilder {
	b.opts.Help = desc
	return b
}

func (b *GaugeBuilder) Tag(key, value string) swu_metrics.GaugeBuilder {
	if b.labels == nil {
		b.labels = make(prometheus.Labels)
	}
	b.labels[key] = value
	return b
}

// Build creates and registers the gauge.
func (b *GaugeBuilder) Build() swu_metrics.Gauge {
	b.opts.ConstLabels = b.registry.constLabels(b.labels)
	g := register[prometheus.Gauge](b.registry.registry, prometheus.NewGauge(b.opts))
	return &Gauge{metricInfo: newMetricInfo(b.opts.Name, b.opts.Help, swu_metrics.GaugeType, b.opts.ConstLabels), metric: g}
}

// Gauge adapts prometheus.Gauge to metrics.Gauge.
type Gauge struct {
	metricInfo
	metric prometheus.Gauge
}

func (g *Gauge) Set(value float64) { g.metric.Set(value) }
func (g *Gauge) Inc()              { g.metric.Inc() }
func (g *Gauge) Dec()              { g.metric.Dec() }

// --- Histogram ---

// NewHistogram starts building a histogram.
func (r *Registry) NewHistogram() swu_metrics.HistogramBuilder {
	return &HistogramBuilder{registry: r, opts: prometheus.HistogramOpts{Namespace: r.namespace, Subsystem: r.subsystem}}
}

// HistogramBuilder adapts Prometheus histogram creation.
type HistogramBuilder struct {
	registry *Registry
	opts     prometheus.HistogramOpts
	labels   prometheus.Labels
}

func (b *HistogramBuilder) Name(name string) swu_metrics.HistogramBuilder {
	b.opts.Name = name
	return b
}

func (b *HistogramBuilder) Description(desc string) swu_metrics.HistogramBuilder {
	b.opts.Help = desc
	return b
}

func (b *HistogramBuilder) Tag(key, value string) swu_metrics.HistogramBuilder {
	if b.labels == nil {
		b.labels = make(prometheus.Labels)
	}
	b.labels[key] = value
	return b
}

// Buckets sets the bucket boundaries. prometheus.DefBuckets is used when unset.
func (b *HistogramBuilder) Buckets(buckets []float64) swu_metrics.HistogramBuilder {
	b.opts.Buckets = buckets
	return b
}

// Build creates and registers the histogram.
func (b *HistogramBuilder) Build() swu_metrics.Histogram {
	b.opts.ConstLabels = b.registry.constLabels(b.labels)
	h := register[prometheus.Histogram](b.registry.registry, prometheus.NewHistogram(b.opts))
	return &Histogram{metricInfo: newMetricInfo(b.opts.Name, b.opts.Help, swu_metrics.HistogramType, b.opts.ConstLabels), metric: h}
}

// Histogram adapts prometheus.Histogram to metrics.Histogram.
type Histogram struct {
	metricInfo
	metric prometheus.Histogram
}

func (h *Histogram) Observe(value float64) { h.metric.Observe(value) }
