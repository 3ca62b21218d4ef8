package handler

import (
	"log/slog"
	"net/http"

	"github.com/jswan/mercantile/internal/auth"
	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/service"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	users  *service.UserService
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *service.UserService, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.RoleName,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterParams
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.RoleName)
	if err != nil {
		InternalErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.RoleName)
	if err != nil {
		InternalErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}
