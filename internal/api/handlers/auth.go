package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventmanager/server/internal/api/respond"
	"github.com/eventmanager/server/internal/auth"
	"github.com/eventmanager/server/internal/domain/users"
	"github.com/eventmanager/server/internal/metrics"
	"github.com/go-playground/validator/v10"
)

// AuthHandler serves the unauthenticated signup and login routes.
type AuthHandler struct {
	users    *users.Service
	tokens   *auth.JWTManager
	validate *validator.Validate
	env      string
}

func NewAuthHandler(usersService *users.Service, tokens *auth.JWTManager, env string) *AuthHandler {
	return &AuthHandler{
		users:    usersService,
		tokens:   tokens,
		validate: validator.New(),
		env:      env,
	}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request", err, h.env)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request", err, h.env)
		return
	}

	_, err := h.users.Register(r.Context(), users.RegisterParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			respond.Message(w, http.StatusBadRequest, "User already exists")
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Error registering user", err, h.env)
		return
	}

	respond.Message(w, http.StatusCreated, "User registered successfully")
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request", err, h.env)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request", err, h.env)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			metrics.RecordLogin("not_found")
			respond.Message(w, http.StatusNotFound, "User not found")
		case errors.Is(err, users.ErrInvalidPassword):
			metrics.RecordLogin("bad_password")
			respond.Message(w, http.StatusUnauthorized, "Invalid password")
		default:
			metrics.RecordLogin("error")
			respond.Error(w, r, http.StatusInternalServerError, "Error logging in", err, h.env)
		}
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		metrics.RecordLogin("error")
		respond.Error(w, r, http.StatusInternalServerError, "Error logging in", err, h.env)
		return
	}

	metrics.RecordLogin("success")
	respond.JSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token})
}
