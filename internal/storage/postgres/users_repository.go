package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventmanager/server/internal/storage"
	"github.com/jackc/pgx/v5"
)

func (r *UserRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *UserRepository) Create(ctx context.Context, params storage.CreateUserParams) (storage.User, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO users (email, username, password_hash)
VALUES (lower($1), $2, $3)
RETURNING id::text, email, username, password_hash, created_at
`, strings.TrimSpace(params.Email), params.Username, params.PasswordHash)

	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.User{}, storage.ErrDuplicate
		}
		return storage.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (storage.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id::text, email, username, password_hash, created_at
  FROM users
 WHERE id = $1::uuid
`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (storage.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id::text, email, username, password_hash, created_at
  FROM users
 WHERE username = $1
`, username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (storage.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id::text, email, username, password_hash, created_at
  FROM users
 WHERE email = lower($1) OR username = $2
 LIMIT 1
`, strings.TrimSpace(email), username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (storage.User, error) {
	var user storage.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	return user, err
}
