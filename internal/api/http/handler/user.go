package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/todo-server/internal/api/http/middleware"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (model.User, string, error)
	Login(ctx context.Context, email, password string) (model.User, string, error)
	RevokeToken(ctx context.Context, user model.User, token model.Token) error
	ChangePassword(ctx context.Context, user model.User, password string) error
	DeleteAccount(ctx context.Context, user model.User) error
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

func newUserResponse(user model.User) userResponse {
	return userResponse{ID: user.ID.String(), Email: user.Email}
}

// User handles account and session endpoints.
type User struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewUser(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register handles POST /users.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.writeSession(w, user, token)
}

// Login handles POST /users/login.
func (h *User) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.writeSession(w, user, token)
}

// Me handles GET /users/me.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, model.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(principal.User))
}

// Logout handles DELETE /users/me/token by revoking the token the request
// was authenticated with.
func (h *User) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, model.ErrUnauthorized)
		return
	}

	err := h.authService.RevokeToken(r.Context(), principal.User, principal.Token)
	if errors.Is(err, model.ErrNotFound) {
		// the user was deleted after the token resolved
		err = model.ErrUnauthorized
	}
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ChangePassword handles PATCH /users/me/password.
func (h *User) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, model.ErrUnauthorized)
		return
	}

	var req passwordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), principal.User, req.Password); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /users/me.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, model.ErrUnauthorized)
		return
	}

	err := h.authService.DeleteAccount(r.Context(), principal.User)
	if errors.Is(err, model.ErrNotFound) {
		err = model.ErrUnauthorized
	}
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *User) writeSession(w http.ResponseWriter, user model.User, token string) {
	w.Header().Set(middleware.AuthHeader, token)
	w.Header().Set("Access-Control-Expose-Headers", middleware.AuthHeader)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}
