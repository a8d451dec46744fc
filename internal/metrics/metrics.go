// Package metrics exposes the prometheus instrumentation for the
// decision engine. Counters replace the database-backed statistics of a
// classic underwriting dashboard: the reporting layer scrapes /metrics
// instead of querying application history.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EvaluationsTotal counts evaluations by outcome and serving backend
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loan_evaluations_total",
		Help: "Loan evaluations by outcome and evaluation method.",
	}, []string{"outcome", "method"})

	// ValidationsTotal counts validations by verdict and serving backend
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loan_validations_total",
		Help: "Loan validations by verdict and validation method.",
	}, []string{"valid", "method"})

	// BackendFallbacksTotal counts per-call fallbacks while the external
	// backend is nominally ready
	BackendFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rule_backend_fallbacks_total",
		Help: "Per-call fallbacks to the built-in evaluator by operation.",
	}, []string{"operation"})

	// BackendUp reflects the last health probe of the external backend
	BackendUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rule_backend_up",
		Help: "Whether the external rule backend answered its last health probe.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
