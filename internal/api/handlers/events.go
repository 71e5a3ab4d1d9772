package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventmanager/server/internal/api/middleware"
	"github.com/eventmanager/server/internal/api/respond"
	"github.com/eventmanager/server/internal/domain/events"
	"github.com/eventmanager/server/internal/domain/users"
	"github.com/eventmanager/server/internal/storage"
)

// EventsHandler serves the token-protected event routes.
type EventsHandler struct {
	events *events.Service
	env    string
}

func NewEventsHandler(eventsService *events.Service, env string) *EventsHandler {
	return &EventsHandler{events: eventsService, env: env}
}

type eventPayload struct {
	ID        string            `json:"id"`
	Name      string            `json:"eventName"`
	StartDate string            `json:"eventStartDate"`
	StartTime string            `json:"eventStartTime"`
	EndDate   string            `json:"eventEndDate"`
	EndTime   string            `json:"eventEndTime"`
	Timezone  string            `json:"timezone"`
	Location  *storage.Location `json:"selectedLocation,omitempty"`
	URL       string            `json:"eventUrl"`
}

type saveEventResponse struct {
	Message string       `json:"message"`
	Event   eventPayload `json:"event"`
}

type listEventsResponse struct {
	Events []eventPayload `json:"events"`
}

// Save handles POST /api/saveEvent.
func (h *EventsHandler) Save(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserFromContext(r.Context())
	if claims == nil {
		respond.Message(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input events.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request", err, h.env)
		return
	}

	saved, err := h.events.Save(r.Context(), claims.UserID(), input)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respond.Message(w, http.StatusNotFound, "User not found")
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Error saving event", err, h.env)
		return
	}

	respond.JSON(w, http.StatusOK, saveEventResponse{
		Message: "Event saved successfully",
		Event:   toPayload(saved),
	})
}

// List handles GET /api/user/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserFromContext(r.Context())
	if claims == nil {
		respond.Message(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := h.events.ListForUser(r.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respond.Message(w, http.StatusNotFound, "User not found")
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Error fetching events", err, h.env)
		return
	}

	payload := make([]eventPayload, 0, len(list))
	for _, event := range list {
		payload = append(payload, toPayload(event))
	}
	respond.JSON(w, http.StatusOK, listEventsResponse{Events: payload})
}

func toPayload(event storage.Event) eventPayload {
	return eventPayload{
		ID:        event.ID,
		Name:      event.Name,
		StartDate: event.StartDate,
		StartTime: event.StartTime,
		EndDate:   event.EndDate,
		EndTime:   event.EndTime,
		Timezone:  event.Timezone,
		Location:  event.Location,
		URL:       event.URL,
	}
}
