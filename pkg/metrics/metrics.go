// Package metrics provides metrics collection for disclosure evaluations.
// It defines a Collector interface, the standard evaluation metrics, and
// nop / in-memory / Prometheus implementations.
package metrics

import (
	"net/http"
	"sync"
	"time"
)

// =============================================================================
// Collector Interface
// =============================================================================

// Collector is the interface for recording metrics. Implement it to plug
// in a custom backend; components accept a Collector and default to nop.
type Collector interface {
	// Counter operations
	CounterInc(name string, labels ...string)
	CounterAdd(name string, value float64, labels ...string)

	// Gauge operations
	GaugeSet(name string, value float64, labels ...string)

	// Histogram operations
	HistogramObserve(name string, value float64, labels ...string)

	// Handler returns an HTTP handler for the metrics endpoint
	Handler() http.Handler
}

// MetricType represents the type of metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// MetricDefinition defines a metric with its metadata.
type MetricDefinition struct {
	Name    string
	Type    MetricType
	Help    string
	Labels  []string
	Buckets []float64 // For histograms
}

// =============================================================================
// Standard Evaluation Metrics
// =============================================================================

var (
	EvaluationsTotal = MetricDefinition{
		Name:   "greenlens_evaluations_total",
		Type:   MetricTypeCounter,
		Help:   "Total number of disclosure evaluations run",
		Labels: []string{"grade"},
	}
	EvaluationDuration = MetricDefinition{
		Name:    "greenlens_evaluation_duration_seconds",
		Type:    MetricTypeHistogram,
		Help:    "Duration of full evaluations in seconds",
		Labels:  []string{},
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
	}
	ValidatorDuration = MetricDefinition{
		Name:    "greenlens_validator_duration_seconds",
		Type:    MetricTypeHistogram,
		Help:    "Duration of individual validators and adapters in seconds",
		Labels:  []string{"validator"},
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60},
	}
	ValidatorScore = MetricDefinition{
		Name:   "greenlens_validator_score",
		Type:   MetricTypeGauge,
		Help:   "Last observed score per validator, 0 to 1",
		Labels: []string{"validator"},
	}
	FindingsTotal = MetricDefinition{
		Name:   "greenlens_findings_total",
		Type:   MetricTypeCounter,
		Help:   "Total number of findings produced",
		Labels: []string{"validator", "severity"},
	}
	AdapterSkipsTotal = MetricDefinition{
		Name:   "greenlens_adapter_skips_total",
		Type:   MetricTypeCounter,
		Help:   "Total number of adapter runs skipped for missing data",
		Labels: []string{"adapter"},
	}
	NewsSearchesTotal = MetricDefinition{
		Name:   "greenlens_news_searches_total",
		Type:   MetricTypeCounter,
		Help:   "Total number of news search calls per source",
		Labels: []string{"source", "status"},
	}
	ContradictionsTotal = MetricDefinition{
		Name:   "greenlens_contradictions_total",
		Type:   MetricTypeCounter,
		Help:   "Total number of contradictions detected",
		Labels: []string{"type"},
	}
	CacheHitsTotal = MetricDefinition{
		Name:   "greenlens_cache_hits_total",
		Type:   MetricTypeCounter,
		Help:   "Total number of cache hits",
		Labels: []string{"kind"},
	}
	CacheMissesTotal = MetricDefinition{
		Name:   "greenlens_cache_misses_total",
		Type:   MetricTypeCounter,
		Help:   "Total number of cache misses",
		Labels: []string{"kind"},
	}
)

// =============================================================================
// NopCollector
// =============================================================================

// NopCollector discards all metrics.
type NopCollector struct{}

func (c *NopCollector) CounterInc(name string, labels ...string)                      {}
func (c *NopCollector) CounterAdd(name string, value float64, labels ...string)       {}
func (c *NopCollector) GaugeSet(name string, value float64, labels ...string)         {}
func (c *NopCollector) HistogramObserve(name string, value float64, labels ...string) {}
func (c *NopCollector) Handler() http.Handler                                         { return http.NotFoundHandler() }

// =============================================================================
// InMemoryCollector
// =============================================================================

// InMemoryCollector stores metrics in memory for testing.
type InMemoryCollector struct {
	mu         sync.RWMutex
	counters   map[string]float64
	gauges     map[string]float64
	histograms map[string][]float64
}

// NewInMemoryCollector creates an in-memory metrics collector.
func NewInMemoryCollector() *InMemoryCollector {
	return &InMemoryCollector{
		counters:   make(map[string]float64),
		gauges:     make(map[string]float64),
		histograms: make(map[string][]float64),
	}
}

func (c *InMemoryCollector) key(name string, labels []string) string {
	key := name
	for i := 0; i+1 < len(labels); i += 2 {
		key += "," + labels[i] + "=" + labels[i+1]
	}
	return key
}

func (c *InMemoryCollector) CounterInc(name string, labels ...string) {
	c.CounterAdd(name, 1, labels...)
}

func (c *InMemoryCollector) CounterAdd(name string, value float64, labels ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[c.key(name, labels)] += value
}

func (c *InMemoryCollector) GaugeSet(name string, value float64, labels ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gauges[c.key(name, labels)] = value
}

func (c *InMemoryCollector) HistogramObserve(name string, value float64, labels ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.key(name, labels)
	c.histograms[key] = append(c.histograms[key], value)
}

func (c *InMemoryCollector) Handler() http.Handler {
	return http.NotFoundHandler()
}

// GetCounter returns the value of a counter.
func (c *InMemoryCollector) GetCounter(name string, labels ...string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counters[c.key(name, labels)]
}

// GetGauge returns the value of a gauge.
func (c *InMemoryCollector) GetGauge(name string, labels ...string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gauges[c.key(name, labels)]
}

// GetHistogram returns all observations of a histogram.
func (c *InMemoryCollector) GetHistogram(name string, labels ...string) []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.histograms[c.key(name, labels)]
}

// =============================================================================
// Timer
// =============================================================================

// Timer records an operation duration into a histogram.
type Timer struct {
	start     time.Time
	collector Collector
	name      string
	labels    []string
}

// NewTimer starts a timer recording to the given histogram.
func NewTimer(collector Collector, name string, labels ...string) *Timer {
	return &Timer{
		start:     time.Now(),
		collector: collector,
		name:      name,
		labels:    labels,
	}
}

// ObserveDuration records the duration since the timer was created.
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	t.collector.HistogramObserve(t.name, d.Seconds(), t.labels...)
	return d
}

// =============================================================================
// Interface compliance
// =============================================================================

var (
	_ Collector = (*NopCollector)(nil)
	_ Collector = (*InMemoryCollector)(nil)
)
