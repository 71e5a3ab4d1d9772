package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/eventmanager/server/internal/storage"
)

func TestCreateNormalizesEmail(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	user, err := repo.Users().Create(ctx, storage.CreateUserParams{
		Email:        "  Alice@Example.COM  ",
		Username:     "alice",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected stored email to be trimmed and lowered, got %q", user.Email)
	}

	// Lookup with the canonical form must match what Create stored.
	found, err := repo.Users().FindByEmailOrUsername(ctx, "alice@example.com", "nobody")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected to find created user, got %q", found.ID)
	}

	// A second signup differing only in case and whitespace is a duplicate.
	_, err = repo.Users().Create(ctx, storage.CreateUserParams{
		Email:        "ALICE@example.com",
		Username:     "alice2",
		PasswordHash: "hash",
	})
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
