package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline instrumentation. Registered on the default registry so
// cmd/extract_api can expose them on /metrics with promhttp; inside Lambda
// they still accumulate per container and cost nothing.
var (
	extractionRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_extractor",
		Name:      "requests_total",
		Help:      "Extraction requests by chain vendor and winning source",
	}, []string{"vendor", "source"})

	strategyAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_extractor",
		Name:      "strategy_attempts_total",
		Help:      "Strategy step attempts by vendor, step, and outcome",
	}, []string{"vendor", "strategy", "outcome"})

	extractionDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "event_extractor",
		Name:      "extraction_duration_seconds",
		Help:      "Time spent producing a draft, by chain vendor",
	}, []string{"vendor"})
)

func init() {
	prometheus.MustRegister(extractionRequestsTotal, strategyAttemptsTotal, extractionDuration)
}

// recordStrategyAttempt counts one strategy step outcome (hit, miss, error).
func recordStrategyAttempt(vendor, strategy, outcome string) {
	strategyAttemptsTotal.WithLabelValues(vendor, strategy, outcome).Inc()
}

// recordExtraction counts a completed request and its duration.
func recordExtraction(vendor, source string, elapsed time.Duration) {
	extractionRequestsTotal.WithLabelValues(vendor, source).Inc()
	extractionDuration.WithLabelValues(vendor).Observe(elapsed.Seconds())
}
