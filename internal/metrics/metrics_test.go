package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestKnownPath(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/login", "200"))

	ObserveRequest("POST", "/login", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/login", "200"))
	if after != before+1 {
		t.Fatalf("expected /login counter to increment, before=%v after=%v", before, after)
	}
}

func TestObserveRequestUnknownPathCollapses(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "other", "404"))

	ObserveRequest("GET", "/wp-admin/setup.php", 404, time.Millisecond)
	ObserveRequest("GET", "/.env", 404, time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "other", "404"))
	if after != before+2 {
		t.Fatalf("expected unknown paths to collapse into other, before=%v after=%v", before, after)
	}

	if got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/wp-admin/setup.php", "404")); got != 0 {
		t.Fatalf("expected no series for raw unknown path, got %v", got)
	}
}
