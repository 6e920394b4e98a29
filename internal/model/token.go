package model

import "github.com/google/uuid"

// ScopeAuth is the access tag of regular session tokens.
const ScopeAuth = "auth"

// Token is a signed session token as kept in a user's token list.
type Token struct {
	Access string `json:"access" bson:"access"`
	Value  string `json:"token" bson:"token"`
}

// Claims is the payload asserted by a session token.
type Claims struct {
	Subject uuid.UUID
	Access  string
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Sign(subject uuid.UUID, access string) (string, error)
	Verify(token string) (Claims, error)
}

// PasswordHasher derives and checks password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
