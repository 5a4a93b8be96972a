// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregator_provider_calls_total",
			Help: "Total number of provider calls by outcome",
		},
		[]string{"provider", "status"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "aggregator_provider_call_duration_seconds",
			Help: "Duration of provider calls in seconds",
		},
		[]string{"provider"},
	)

	EntitiesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregator_entities_extracted_total",
			Help: "Total number of entities extracted by type",
		},
		[]string{"type"},
	)

	LowSignalRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aggregator_low_signal_runs_total",
			Help: "Aggregation runs that finished below the low-result threshold",
		},
	)

	CreditsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregator_credits_used_total",
			Help: "Scraping credits consumed by provider",
		},
		[]string{"provider"},
	)

	BudgetSkips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregator_budget_skips_total",
			Help: "Provider calls skipped because they would exceed the budget",
		},
		[]string{"provider"},
	)
)
