package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past this length.
	maxPasswordLength = 72
)

// Auth issues, resolves and revokes session tokens for users.
type Auth struct {
	userStore model.UserStore
	taskStore model.TaskStore
	codec     model.TokenCodec
	hasher    model.PasswordHasher
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	taskStore model.TaskStore,
	codec model.TokenCodec,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		taskStore: taskStore,
		codec:     codec,
		hasher:    hasher,
		logger:    logger,
	}
}

// Register creates a user and opens its first session.
func (a *Auth) Register(ctx context.Context, email, password string) (model.User, string, error) {
	email, err := validateEmail(email)
	if err != nil {
		return model.User{}, "", err
	}
	if err := validatePassword(password); err != nil {
		return model.User{}, "", err
	}

	a.logger.Debug("Auth service: registering user", "email", email)

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	// The first session token is stored with the user in a single insert, so
	// a failed registration leaves nothing behind.
	id := uuid.New()
	value, err := a.codec.Sign(id, model.ScopeAuth)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to sign token: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Tokens:       []model.Token{{Access: model.ScopeAuth, Value: value}},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrDuplicateEmail) {
		a.logger.Info("Auth service: email already taken", "email", email)
		return model.User{}, "", model.ErrDuplicateEmail
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "user_id", user.ID)

	return user, value, nil
}

// Login checks credentials and opens a new session.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, string, error) {
	user, err := a.FindByCredentials(ctx, email, password)
	if err != nil {
		return model.User{}, "", err
	}

	token, err := a.IssueToken(ctx, user, model.ScopeAuth)
	if err != nil {
		return model.User{}, "", err
	}

	return user, token, nil
}

// FindByCredentials returns the user owning email if password matches.
// Unknown emails and wrong passwords both yield model.ErrInvalidCredentials.
func (a *Auth) FindByCredentials(ctx context.Context, email, password string) (model.User, error) {
	email = normalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login rejected", "email", email, "reason", "unknown email")
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: login rejected", "email", email, "reason", "password mismatch")
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken signs a token for user and appends it to the user's active tokens.
func (a *Auth) IssueToken(ctx context.Context, user model.User, access string) (string, error) {
	value, err := a.codec.Sign(user.ID, access)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := a.userStore.AddToken(ctx, user.ID, model.Token{Access: access, Value: value}); err != nil {
		a.logger.Error("Auth service: failed to store token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return value, nil
}

// ResolveToken verifies the token signature and requires the token to still
// be active on its user. Revoked, forged and malformed tokens all yield
// model.ErrUnauthorized.
func (a *Auth) ResolveToken(ctx context.Context, value string) (model.Principal, error) {
	if value == "" {
		return model.Principal{}, model.ErrUnauthorized
	}

	claims, err := a.codec.Verify(value)
	if err != nil {
		a.logger.Debug("Auth service: token rejected", "error", err.Error())
		return model.Principal{}, model.ErrUnauthorized
	}

	token := model.Token{Access: claims.Access, Value: value}
	user, err := a.userStore.GetByToken(ctx, claims.Subject, token)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Debug("Auth service: token is not active", "user_id", claims.Subject)
		return model.Principal{}, model.ErrUnauthorized
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("failed to get user by token: %w", err)
	}

	return model.Principal{User: user, Token: token}, nil
}

// RevokeToken removes token from the user's active tokens. Revoking a token
// that is not active succeeds.
func (a *Auth) RevokeToken(ctx context.Context, user model.User, token model.Token) error {
	if err := a.userStore.RemoveToken(ctx, user.ID, token); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to remove token: %w", err)
	}

	a.logger.Info("Auth service: token revoked", "user_id", user.ID)

	return nil
}

// ChangePassword replaces the user's password digest.
func (a *Auth) ChangePassword(ctx context.Context, user model.User, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password changed", "user_id", user.ID)

	return nil
}

// DeleteAccount removes the user together with every task it owns.
func (a *Auth) DeleteAccount(ctx context.Context, user model.User) error {
	if err := a.taskStore.DeleteByOwner(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	if err := a.userStore.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	a.logger.Info("Auth service: account deleted", "user_id", user.ID)

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", model.NewValidationError("email", "is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", model.NewValidationError("email", "is not a valid email")
	}

	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return model.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return model.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", maxPasswordLength))
	}
	return nil
}
