package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoginRateLimitExhaustion(t *testing.T) {
	handler := LoginRateLimit(3)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}

	// A different client keeps its own bucket.
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for fresh client, got %d", rec.Code)
	}
}

func TestLimiterStoreCleanupEvictsIdleEntries(t *testing.T) {
	store := newLimiterStore(1)
	defer store.Stop()

	first := store.limiter("203.0.113.7")
	first.Allow() // drain the single-token bucket
	if first.Allow() {
		t.Fatal("expected bucket to be drained")
	}

	store.mu.Lock()
	store.limiters["203.0.113.7"].lastSeen = time.Now().Add(-16 * time.Minute)
	store.mu.Unlock()

	store.cleanup()

	store.mu.Lock()
	_, ok := store.limiters["203.0.113.7"]
	store.mu.Unlock()
	if ok {
		t.Fatal("expected idle entry to be evicted")
	}

	second := store.limiter("203.0.113.7")
	if second == first {
		t.Fatal("expected a fresh limiter after eviction")
	}
	if !second.Allow() {
		t.Fatal("expected fresh limiter to allow a request")
	}
}

func TestLimiterStoreCleanupKeepsActiveEntries(t *testing.T) {
	store := newLimiterStore(1)
	defer store.Stop()

	first := store.limiter("203.0.113.8")

	store.cleanup()

	if store.limiter("203.0.113.8") != first {
		t.Fatal("expected recently seen entry to survive cleanup")
	}
}

func TestLoginRateLimitDisabled(t *testing.T) {
	handler := LoginRateLimit(0)(okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}
