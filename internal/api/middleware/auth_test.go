package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventmanager/server/internal/auth"
)

func protectedRoute(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		claims := UserFromContext(r.Context())
		if claims == nil {
			t.Error("expected claims in context")
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthorizeMissingHeader(t *testing.T) {
	tokens := auth.NewJWTManager("secret", time.Hour, "issuer")
	called := false
	handler := Authorize(tokens)(protectedRoute(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/user/events", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler must not run without a token")
	}
}

func TestAuthorizeMalformedHeader(t *testing.T) {
	tokens := auth.NewJWTManager("secret", time.Hour, "issuer")
	called := false
	handler := Authorize(tokens)(protectedRoute(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/user/events", nil)
	req.Header.Set("Authorization", "just-one-field")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler must not run with a malformed header")
	}
}

func TestAuthorizeInvalidToken(t *testing.T) {
	tokens := auth.NewJWTManager("secret", time.Hour, "issuer")
	called := false
	handler := Authorize(tokens)(protectedRoute(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/user/events", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler must not run with an invalid token")
	}
}

func TestAuthorizeExpiredToken(t *testing.T) {
	expired := auth.NewJWTManager("secret", -time.Minute, "issuer")
	token, err := expired.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tokens := auth.NewJWTManager("secret", time.Hour, "issuer")
	called := false
	handler := Authorize(tokens)(protectedRoute(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/user/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler must not run with an expired token")
	}
}

func TestAuthorizeValidToken(t *testing.T) {
	tokens := auth.NewJWTManager("secret", time.Hour, "issuer")
	token, err := tokens.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	called := false
	handler := Authorize(tokens)(protectedRoute(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/user/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Fatal("handler must run with a valid token")
	}
}
