package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/model"
)

// Claims represents JWT claims of a session token. Only the issue time and a
// random token id are set among the registered claims, so every session gets
// a distinct value and none of them expires.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"_id"`
	Access string `json:"access"`
}

var _ model.TokenCodec = (*JWT)(nil)

// JWT implements TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	parser    *jwt.Parser
}

// NewJWT creates a new JWT token codec with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{
		secretKey: []byte(secretKey),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
		),
	}
}

// Sign creates a token asserting subject and access.
func (j *JWT) Sign(subject uuid.UUID, access string) (string, error) {
	if subject == uuid.Nil {
		return "", errors.New("failed to sign token: empty subject")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: subject.String(),
		Access: access,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the token signature and only then decodes its claims.
// Every failure is reported as model.ErrInvalidToken.
func (j *JWT) Verify(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := j.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Claims{}, model.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return model.Claims{}, fmt.Errorf("%w: malformed subject", model.ErrInvalidToken)
	}
	if claims.Access == "" {
		return model.Claims{}, fmt.Errorf("%w: missing access", model.ErrInvalidToken)
	}

	return model.Claims{Subject: userID, Access: claims.Access}, nil
}
