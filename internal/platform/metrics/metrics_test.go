package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"

	"github.com/riskibarqy/club-activity/internal/platform/resilience"
)

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestRecordIngestionRun(t *testing.T) {
	counter := IngestionRunsTotal.WithLabelValues("completed")
	before := counterValue(t, counter)

	RecordIngestionRun("completed", 3*time.Second)

	if after := counterValue(t, counter); after != before+1 {
		t.Fatalf("expected completed runs to grow by 1, got %v -> %v", before, after)
	}
}

func TestRecordMerge(t *testing.T) {
	before := counterValue(t, ActivitiesMergedTotal)

	RecordMerge(12, 340)

	if after := counterValue(t, ActivitiesMergedTotal); after != before+12 {
		t.Fatalf("expected merged total to grow by 12, got %v -> %v", before, after)
	}
	if size := gaugeValue(t, RegisterSize); size != 340 {
		t.Fatalf("expected register size 340, got %v", size)
	}
}

func TestObserveBreaker(t *testing.T) {
	ObserveBreaker("strava-test", resilience.CircuitStateClosed, resilience.CircuitStateOpen)
	if open := gaugeValue(t, BreakerOpen.WithLabelValues("strava-test")); open != 1 {
		t.Fatalf("expected breaker marked open, got %v", open)
	}

	ObserveBreaker("strava-test", resilience.CircuitStateHalfOpen, resilience.CircuitStateClosed)
	if open := gaugeValue(t, BreakerOpen.WithLabelValues("strava-test")); open != 0 {
		t.Fatalf("expected breaker marked closed, got %v", open)
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{0: "error", 200: "2xx", 304: "3xx", 404: "4xx", 429: "429", 503: "5xx"}
	for code, want := range cases {
		if got := statusClass(code); got != want {
			t.Fatalf("statusClass(%d) = %s, want %s", code, got, want)
		}
	}
}
