package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		},
		[]string{LabelMethod, LabelPattern, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   httpLatencyBuckets,
		},
		[]string{LabelMethod, LabelPattern},
	)
)

// Kitchen metrics
var (
	ShoppingRegenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopping_regenerations_total",
			Help:      "Shopping list generations by trigger (manual or auto).",
		},
		[]string{LabelTrigger},
	)

	FreezerSubstitutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "freezer_substitutions_total",
			Help:      "Planned meals served from freezer stock during generation.",
		},
	)

	QuotaRefusals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_refusals_total",
			Help:      "Mutations refused by the free-tier limits.",
		},
		[]string{LabelKind},
	)

	PersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Failed background saves by collection.",
		},
		[]string{LabelCollection},
	)

	RecipeImports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_imports_total",
			Help:      "Recipe imports by outcome (ok, cached, error).",
		},
		[]string{LabelStatus},
	)

	InventoryScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_scans_total",
			Help:      "Pantry photo scans by outcome (ok, error).",
		},
		[]string{LabelStatus},
	)
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, pattern string, status int, d time.Duration) {
	if pattern == "" {
		pattern = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, pattern).Observe(d.Seconds())
}
