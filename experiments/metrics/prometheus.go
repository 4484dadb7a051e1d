package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics exports completed search metrics.
type PrometheusMetrics struct {
	decisions  *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	iterations *prometheus.HistogramVec
	depth      *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the search metrics with reg. A nil reg uses
// the default registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "splendor",
				Subsystem: "search",
				Name:      "decisions_total",
				Help:      "Total decisions made by strategy",
			},
			[]string{"strategy"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "splendor",
				Subsystem: "search",
				Name:      "fallbacks_total",
				Help:      "Decisions that returned a fallback action, by strategy",
			},
			[]string{"strategy"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "splendor",
				Subsystem: "search",
				Name:      "duration_seconds",
				Help:      "Wall-clock time spent per decision",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 0.9, 1, 2},
			},
			[]string{"strategy"},
		),
		iterations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "splendor",
				Subsystem: "search",
				Name:      "iterations",
				Help:      "Search iterations per decision",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"strategy"},
		),
		depth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "splendor",
				Subsystem: "search",
				Name:      "depth",
				Help:      "Deepest completed iterative-deepening pass of the last decision",
			},
			[]string{"strategy"},
		),
	}
}

func (p *PrometheusMetrics) Observe(m SearchMetric) {
	strategy := m.Strategy
	if strategy == "" {
		strategy = "unknown"
	}
	p.decisions.WithLabelValues(strategy).Inc()
	if m.Fallback {
		p.fallbacks.WithLabelValues(strategy).Inc()
	}
	p.duration.WithLabelValues(strategy).Observe(m.Duration.Seconds())
	p.iterations.WithLabelValues(strategy).Observe(float64(m.Iterations))
	p.depth.WithLabelValues(strategy).Set(float64(m.Depth))
}

// Collector wraps c so that every completed decision is also exported.
func (p *PrometheusMetrics) Collector(c Collector) Collector {
	return &exportingCollector{Collector: c, metrics: p}
}

type exportingCollector struct {
	Collector
	metrics *PrometheusMetrics
}

func (c *exportingCollector) Complete() SearchMetric {
	m := c.Collector.Complete()
	c.metrics.Observe(m)
	return m
}
