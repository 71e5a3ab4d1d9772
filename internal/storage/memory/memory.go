// Package memory provides an in-memory storage.Repository used by tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/eventmanager/server/internal/storage"
	"github.com/google/uuid"
)

type Repository struct {
	mu     sync.Mutex
	users  map[string]storage.User
	events map[string]storage.Event
	// refs holds each user's owned event IDs in attachment order.
	refs map[string][]string
}

func NewRepository() *Repository {
	return &Repository{
		users:  make(map[string]storage.User),
		events: make(map[string]storage.Event),
		refs:   make(map[string][]string),
	}
}

func (r *Repository) Users() storage.UserRepository   { return &userRepo{r} }
func (r *Repository) Events() storage.EventRepository { return &eventRepo{r} }

// WithTx runs fn against the same repository. Rollback is not simulated;
// callers are expected to order their writes so a failed step leaves
// nothing behind, which mirrors how the service layer uses transactions.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, storage.Repository) error) error {
	return fn(ctx, r)
}

type userRepo struct{ r *Repository }

func (u *userRepo) Create(ctx context.Context, params storage.CreateUserParams) (storage.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(params.Email))
	for _, existing := range u.r.users {
		if existing.Email == email || existing.Username == params.Username {
			return storage.User{}, storage.ErrDuplicate
		}
	}

	user := storage.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}
	u.r.users[user.ID] = user
	return user, nil
}

func (u *userRepo) GetByID(ctx context.Context, id string) (storage.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()

	user, ok := u.r.users[id]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (u *userRepo) GetByUsername(ctx context.Context, username string) (storage.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()

	for _, user := range u.r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

func (u *userRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (storage.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range u.r.users {
		if user.Email == email || user.Username == username {
			return user, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

type eventRepo struct{ r *Repository }

func (e *eventRepo) Create(ctx context.Context, event storage.Event) (storage.Event, error) {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	event.CreatedAt = time.Now()
	e.r.events[event.ID] = event
	return event, nil
}

func (e *eventRepo) AttachToUser(ctx context.Context, userID, eventID string) error {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	e.r.refs[userID] = append(e.r.refs[userID], eventID)
	return nil
}

func (e *eventRepo) ListByUser(ctx context.Context, userID string) ([]storage.Event, error) {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	events := make([]storage.Event, 0, len(e.r.refs[userID]))
	for _, id := range e.r.refs[userID] {
		if event, ok := e.r.events[id]; ok {
			events = append(events, event)
		}
	}
	return events, nil
}
