// Package respond writes the API's JSON envelope. Every error response
// has the shape {"message": ..., "error": ...}; the error field carries
// the underlying fault message and is omitted in production.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type Envelope struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Message: message})
}

func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	envelope := Envelope{Message: message}
	if err != nil && env != "production" {
		envelope.Error = err.Error()
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	JSON(w, status, envelope)
}
