package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventmanager/server/internal/domain/ids"
	"github.com/eventmanager/server/internal/domain/users"
	"github.com/eventmanager/server/internal/storage"
	"github.com/rs/zerolog"
)

// EventInput is the client-supplied event payload. Field names follow the
// public API contract; all date/time values are opaque strings.
type EventInput struct {
	Name      string            `json:"eventName"`
	StartDate string            `json:"eventStartDate"`
	StartTime string            `json:"eventStartTime"`
	EndDate   string            `json:"eventEndDate"`
	EndTime   string            `json:"eventEndTime"`
	Timezone  string            `json:"timezone"`
	Location  *storage.Location `json:"selectedLocation"`
	URL       string            `json:"eventUrl"`
}

// Service handles per-user event persistence.
type Service struct {
	repo   storage.Repository
	logger zerolog.Logger
}

func NewService(repo storage.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// Save persists an event and appends it to the owner's event sequence.
// Both writes run in one transaction, so a missing user or a failed
// append leaves no orphaned event.
func (s *Service) Save(ctx context.Context, userID string, input EventInput) (storage.Event, error) {
	id, err := ids.NewULID()
	if err != nil {
		return storage.Event{}, fmt.Errorf("mint event id: %w", err)
	}

	var saved storage.Event
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		if _, err := repo.Users().GetByID(ctx, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return users.ErrUserNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}

		created, err := repo.Events().Create(ctx, storage.Event{
			ID:        id,
			Name:      input.Name,
			StartDate: input.StartDate,
			StartTime: input.StartTime,
			EndDate:   input.EndDate,
			EndTime:   input.EndTime,
			Timezone:  input.Timezone,
			Location:  input.Location,
			URL:       input.URL,
		})
		if err != nil {
			return err
		}

		if err := repo.Events().AttachToUser(ctx, userID, created.ID); err != nil {
			return err
		}

		saved = created
		return nil
	})
	if err != nil {
		return storage.Event{}, err
	}

	s.logger.Debug().Str("event_id", saved.ID).Msg("event saved")
	return saved, nil
}

// ListForUser returns the user's events in save order.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]storage.Event, error) {
	if _, err := s.repo.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	events, err := s.repo.Events().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
