package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMessageEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, http.StatusCreated, "User registered successfully")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "User registered successfully" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["error"]; ok {
		t.Fatal("error field must be omitted when empty")
	}
}

func TestErrorDetailGatedByEnvironment(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/signup", nil)
	fault := errors.New("connection refused")

	rec := httptest.NewRecorder()
	Error(rec, req, http.StatusInternalServerError, "Error registering user", fault, "development")

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "connection refused" {
		t.Fatalf("expected error detail in development, got %v", body)
	}

	rec = httptest.NewRecorder()
	Error(rec, req, http.StatusInternalServerError, "Error registering user", fault, "production")

	body = map[string]string{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["error"]; ok {
		t.Fatal("error detail must be hidden in production")
	}
	if body["message"] != "Error registering user" {
		t.Fatalf("unexpected message: %v", body)
	}
}
