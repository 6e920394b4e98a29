package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/todo-server/internal/model"
)

const uniqueViolation = "23505"

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, password_hash, tokens, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	tokens, err := encodeTokens(user.Tokens)
	if err != nil {
		return model.User{}, err
	}

	query := `INSERT INTO users (id, email, password_hash, tokens, created_at, updated_at)
			  VALUES ($1, $2, $3, $4::jsonb, $5, $6)
			  RETURNING ` + userColumns

	savedUser, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, tokens, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByToken(ctx context.Context, id uuid.UUID, token model.Token) (model.User, error) {
	needle, err := encodeTokens([]model.Token{token})
	if err != nil {
		return model.User{}, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND tokens @> $2::jsonb`

	user, err := scanUser(r.db.QueryRow(ctx, query, id, needle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by token: %w", err)
	}

	return user, nil
}

// AddToken appends token in a single statement; the row lock serializes
// concurrent appends so none is lost.
func (r *UserRepository) AddToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	element, err := encodeTokens([]model.Token{token})
	if err != nil {
		return err
	}

	query := `UPDATE users SET tokens = tokens || $2::jsonb, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, element)
	if err != nil {
		return fmt.Errorf("failed to add token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// RemoveToken drops every element equal to token, keeping the order of the rest.
func (r *UserRepository) RemoveToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	element, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	query := `UPDATE users SET tokens = COALESCE(
				(SELECT jsonb_agg(e.t ORDER BY e.i)
				 FROM jsonb_array_elements(users.tokens) WITH ORDINALITY AS e(t, i)
				 WHERE e.t <> $2::jsonb),
				'[]'::jsonb),
			  updated_at = NOW()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, element)
	if err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	var tokens []byte

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &tokens, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}

	user.Tokens, err = decodeTokens(tokens)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func encodeTokens(tokens []model.Token) ([]byte, error) {
	if tokens == nil {
		tokens = []model.Token{}
	}
	b, err := json.Marshal(tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}
	return b, nil
}

func decodeTokens(raw []byte) ([]model.Token, error) {
	tokens := []model.Token{}
	if len(raw) == 0 {
		return tokens, nil
	}
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return tokens, nil
}
