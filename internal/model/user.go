package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
//
// Token mutations are single field-scoped updates on the user record, so
// concurrent logins and logouts of the same user never overwrite each other.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByToken(ctx context.Context, id uuid.UUID, token Token) (User, error)
	AddToken(ctx context.Context, id uuid.UUID, token Token) error
	RemoveToken(ctx context.Context, id uuid.UUID, token Token) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Tokens       []Token
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasToken reports whether the exact token pair is active for the user.
func (u User) HasToken(token Token) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Principal is the identity attached to a request after its token resolved.
type Principal struct {
	User  User
	Token Token
}
