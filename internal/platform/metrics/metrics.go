package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/club-activity/internal/platform/resilience"
)

// Club fetch outcomes.
const (
	OutcomeFetched = "fetched"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

var (
	// IngestionRunsTotal counts ingestion cycles by final status.
	IngestionRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "club_ingestion_runs_total",
		Help: "Total number of ingestion cycles by status",
	}, []string{"status"})

	IngestionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "club_ingestion_duration_seconds",
		Help:    "Ingestion cycle duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// ClubFetchesTotal counts per-club outcomes inside a cycle.
	ClubFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "club_fetches_total",
		Help: "Total number of club activity fetches by outcome",
	}, []string{"outcome"})

	ActivitiesMergedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_activities_merged_total",
		Help: "Total number of fetched activities merged into the register",
	})

	RegisterSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "club_register_records",
		Help: "Number of records in the consolidated register after the last merge",
	})

	ProviderRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strava_requests_total",
		Help: "Total number of Strava API requests by endpoint and status class",
	}, []string{"endpoint", "status"})

	BreakerTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circuit_breaker_transitions_total",
		Help: "Total number of circuit breaker state transitions",
	}, []string{"name", "to"})

	// BreakerOpen is 1 while the named breaker rejects calls.
	BreakerOpen = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_open",
		Help: "Whether the circuit breaker is open (1) or not (0)",
	}, []string{"name"})
)

func RecordIngestionRun(status string, elapsed time.Duration) {
	IngestionRunsTotal.WithLabelValues(status).Inc()
	IngestionDuration.Observe(elapsed.Seconds())
}

func RecordClubFetch(outcome string) {
	ClubFetchesTotal.WithLabelValues(outcome).Inc()
}

func RecordMerge(fetched, registerSize int) {
	ActivitiesMergedTotal.Add(float64(fetched))
	RegisterSize.Set(float64(registerSize))
}

func RecordProviderRequest(endpoint string, statusCode int) {
	ProviderRequestsTotal.WithLabelValues(endpoint, statusClass(statusCode)).Inc()
}

// ObserveBreaker matches resilience.StateChangeFunc.
func ObserveBreaker(name string, _, to resilience.CircuitState) {
	BreakerTransitionsTotal.WithLabelValues(name, string(to)).Inc()
	open := 0.0
	if to == resilience.CircuitStateOpen {
		open = 1
	}
	BreakerOpen.WithLabelValues(name).Set(open)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func statusClass(code int) string {
	switch {
	case code <= 0:
		return "error"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code == http.StatusTooManyRequests:
		return "429"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
