// Package metrics exposes Prometheus instrumentation for the ledger and
// recommendation paths.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the application's Prometheus metrics behind a
// dedicated registry.
type Collector struct {
	registry           *prometheus.Registry
	transfersProcessed prometheus.Counter
	transfersFailed    prometheus.Counter
	suitabilityScores  prometheus.Histogram
	fallbackServed     prometheus.Counter
	symbolsSkipped     prometheus.Counter
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		transfersProcessed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transfers_processed_total",
			Help: "Total number of committed money transfers",
		}),
		transfersFailed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transfers_failed_total",
			Help: "Total number of rejected or rolled-back transfers",
		}),
		suitabilityScores: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "suggestion_suitability_score",
			Help:    "Distribution of suitability scores for enriched suggestions",
			Buckets: []float64{0, 20, 40, 60, 80, 100},
		}),
		fallbackServed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "suggestion_fallback_total",
			Help: "Times the static fallback suggestion list was served",
		}),
		symbolsSkipped: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "suggestion_symbols_skipped_total",
			Help: "Symbols dropped from a suggestion batch after fetch failures",
		}),
	}
}

// RecordTransfer counts a transfer attempt.
func (c *Collector) RecordTransfer(success bool) {
	if success {
		c.transfersProcessed.Inc()
	} else {
		c.transfersFailed.Inc()
	}
}

// ObserveScore records a computed suitability score.
func (c *Collector) ObserveScore(score float64) {
	c.suitabilityScores.Observe(score)
}

// RecordFallback counts a fallback suggestion response.
func (c *Collector) RecordFallback() {
	c.fallbackServed.Inc()
}

// RecordSkippedSymbol counts a symbol skipped in a suggestion batch.
func (c *Collector) RecordSkippedSymbol() {
	c.symbolsSkipped.Inc()
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
