package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("duplicate")
)

// User is a stored credential record. Email is persisted lowercase and is
// unique case-insensitively; username is unique as-is.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserParams contains the fields required to insert a new user.
type CreateUserParams struct {
	Email        string
	Username     string
	PasswordHash string
}

// Location is a latitude/longitude pair attached to an event.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is a stored event record. All date/time fields are opaque strings
// supplied by the client; the server never interprets them.
type Event struct {
	ID        string
	Name      string
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
	Timezone  string
	Location  *Location
	URL       string
	CreatedAt time.Time
}

// Repository groups data access by domain.
type Repository interface {
	Users() UserRepository
	Events() EventRepository

	// WithTx runs fn inside a single transaction. The Repository passed to
	// fn routes all queries through that transaction.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}

type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// FindByEmailOrUsername returns the first user matching either value.
	// Email matching is case-insensitive.
	FindByEmailOrUsername(ctx context.Context, email, username string) (User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event Event) (Event, error)
	// AttachToUser appends the event to the user's owned-event sequence.
	AttachToUser(ctx context.Context, userID, eventID string) error
	// ListByUser returns the user's events in attachment order.
	ListByUser(ctx context.Context, userID string) ([]Event, error)
}
