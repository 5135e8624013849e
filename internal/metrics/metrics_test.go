package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestObserveResolution_Registered(t *testing.T) {
	ObserveResolution(KindUser, "found", 10*time.Millisecond)
	ObserveResolution(KindProduct, "unreachable", 5*time.Millisecond)

	family := gatherFamily(t, "orders_resolution_outcomes_total")
	if family == nil {
		t.Fatal("orders_resolution_outcomes_total not registered")
	}
	if len(family.GetMetric()) < 2 {
		t.Fatalf("expected at least 2 labeled series, got %d", len(family.GetMetric()))
	}

	if gatherFamily(t, "orders_resolution_duration_seconds") == nil {
		t.Fatal("orders_resolution_duration_seconds not registered")
	}
}

func TestObserveHTTPRequest_Registered(t *testing.T) {
	ObserveHTTPRequest("GET", "/api/orders", 200, 3*time.Millisecond)

	if gatherFamily(t, "orders_http_request_duration_seconds") == nil {
		t.Fatal("orders_http_request_duration_seconds not registered")
	}
}

func TestOrderCounters_Registered(t *testing.T) {
	RecordOrderCreated()
	RecordOrderRejected(ReasonUserNotFound)
	RecordEventPublish("ok")

	if gatherFamily(t, "orders_created_total") == nil {
		t.Fatal("orders_created_total not registered")
	}
	if gatherFamily(t, "orders_rejected_total") == nil {
		t.Fatal("orders_rejected_total not registered")
	}
	if gatherFamily(t, "orders_events_published_total") == nil {
		t.Fatal("orders_events_published_total not registered")
	}
}
