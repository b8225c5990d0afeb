package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query pipeline Prometheus metrics.
var (
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_duration_seconds",
			Help:      "List query pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"entity", "mode"},
	)

	QueryResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_results",
			Help:      "Records matching a list query before pagination",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"entity", "mode"},
	)

	QueryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "query_errors_total",
			Help:      "List queries that failed in the storage layer",
		},
		[]string{"entity"},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers the query pipeline collectors. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryDuration, QueryResults, QueryErrorsTotal)
	queryMetricsRegistered = true
}

// QueryRecorder reports query pipeline observations to Prometheus.
type QueryRecorder struct{}

// NewQueryRecorder creates a QueryRecorder over the package collectors.
func NewQueryRecorder() *QueryRecorder { return &QueryRecorder{} }

// ObserveQuery records one successful list query.
func (*QueryRecorder) ObserveQuery(entity, mode string, elapsed time.Duration, total int) {
	QueryDuration.WithLabelValues(entity, mode).Observe(elapsed.Seconds())
	QueryResults.WithLabelValues(entity, mode).Observe(float64(total))
}

// ObserveQueryError records a failed list query.
func (*QueryRecorder) ObserveQueryError(entity string) {
	QueryErrorsTotal.WithLabelValues(entity).Inc()
}
