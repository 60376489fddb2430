package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest(http.MethodGet, "/api/products", http.StatusOK, 12*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/products", http.StatusOK, 7*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/products", http.StatusUnprocessableEntity, 3*time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/products", "200"))
	if got != 2 {
		t.Fatalf("expected 2 GET requests counted, got %v", got)
	}
	got = testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/products", "422"))
	if got != 1 {
		t.Fatalf("expected 1 rejected POST counted, got %v", got)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest(http.MethodGet, "/api/products", http.StatusOK, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("", "", http.StatusOK, time.Millisecond)
}
