package postgres

import (
	"context"
	"fmt"

	"github.com/eventmanager/server/internal/storage"
	"github.com/jackc/pgx/v5"
)

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *EventRepository) Create(ctx context.Context, event storage.Event) (storage.Event, error) {
	var lat, lng *float64
	if event.Location != nil {
		lat = &event.Location.Lat
		lng = &event.Location.Lng
	}

	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (id, event_name, event_start_date, event_start_time,
                    event_end_date, event_end_time, timezone,
                    latitude, longitude, event_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, event_name, event_start_date, event_start_time,
          event_end_date, event_end_time, timezone,
          latitude, longitude, event_url, created_at
`, event.ID, event.Name, event.StartDate, event.StartTime,
		event.EndDate, event.EndTime, event.Timezone, lat, lng, event.URL)

	created, err := scanEvent(row)
	if err != nil {
		return storage.Event{}, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (r *EventRepository) AttachToUser(ctx context.Context, userID, eventID string) error {
	_, err := r.queryer().Exec(ctx, `
INSERT INTO user_events (user_id, event_id) VALUES ($1::uuid, $2)
`, userID, eventID)
	if err != nil {
		return fmt.Errorf("attach event to user: %w", err)
	}
	return nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]storage.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT e.id, e.event_name, e.event_start_date, e.event_start_time,
       e.event_end_date, e.event_end_time, e.timezone,
       e.latitude, e.longitude, e.event_url, e.created_at
  FROM events e
  JOIN user_events ue ON ue.event_id = e.id
 WHERE ue.user_id = $1::uuid
 ORDER BY ue.position
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]storage.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func scanEvent(row pgx.Row) (storage.Event, error) {
	var (
		event    storage.Event
		lat, lng *float64
	)
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.StartDate,
		&event.StartTime,
		&event.EndDate,
		&event.EndTime,
		&event.Timezone,
		&lat,
		&lng,
		&event.URL,
		&event.CreatedAt,
	)
	if err != nil {
		return storage.Event{}, err
	}
	if lat != nil && lng != nil {
		event.Location = &storage.Location{Lat: *lat, Lng: *lng}
	}
	return event, nil
}
