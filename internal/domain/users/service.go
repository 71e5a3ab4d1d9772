package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventmanager/server/internal/auth"
	"github.com/eventmanager/server/internal/storage"
	"github.com/rs/zerolog"
)

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// Service handles registration and credential verification.
type Service struct {
	repo       storage.Repository
	bcryptCost int
	logger     zerolog.Logger
}

func NewService(repo storage.Repository, bcryptCost int, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("component", "users").Logger(),
	}
}

// RegisterParams contains the signup input. Validation happens at the
// handler boundary; the service only enforces uniqueness.
type RegisterParams struct {
	Email    string
	Username string
	Password string
}

// Register creates a new user with a hashed password. It fails with
// ErrUserExists when the email or username is already taken, leaving no
// partial record behind.
func (s *Service) Register(ctx context.Context, params RegisterParams) (storage.User, error) {
	existing, err := s.repo.Users().FindByEmailOrUsername(ctx, params.Email, params.Username)
	if err == nil && existing.ID != "" {
		return storage.User{}, ErrUserExists
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return storage.User{}, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := auth.HashPassword(params.Password, s.bcryptCost)
	if err != nil {
		return storage.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Users().Create(ctx, storage.CreateUserParams{
		Email:        params.Email,
		Username:     params.Username,
		PasswordHash: hash,
	})
	if err != nil {
		// A concurrent signup can slip past the lookup; the unique
		// indexes are the backstop.
		if errors.Is(err, storage.ErrDuplicate) {
			return storage.User{}, ErrUserExists
		}
		return storage.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate verifies a username/password pair and returns the stored
// user on success.
func (s *Service) Authenticate(ctx context.Context, username, password string) (storage.User, error) {
	user, err := s.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, ErrUserNotFound
		}
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return storage.User{}, ErrInvalidPassword
	}
	return user, nil
}
