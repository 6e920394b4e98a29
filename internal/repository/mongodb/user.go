package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dtroode/todo-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type tokenDocument struct {
	Access string `bson:"access"`
	Token  string `bson:"token"`
}

type userDocument struct {
	ID        string          `bson:"_id"`
	Email     string          `bson:"email"`
	Password  string          `bson:"password"`
	Tokens    []tokenDocument `bson:"tokens"`
	CreatedAt time.Time       `bson:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

type UserRepository struct {
	conn *Connection
}

func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{
		conn: conn,
	}
}

func (r *UserRepository) users() *mongo.Collection {
	return r.conn.collection(usersCollection)
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	doc := toUserDocument(user)

	if _, err := r.users().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return fromUserDocument(doc)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByToken(ctx context.Context, id uuid.UUID, token model.Token) (model.User, error) {
	return r.findOne(ctx, bson.M{
		"_id": id.String(),
		"tokens": bson.M{"$elemMatch": bson.M{
			"access": token.Access,
			"token":  token.Value,
		}},
	})
}

func (r *UserRepository) AddToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	return r.updateOne(ctx, id, bson.M{
		"$push": bson.M{"tokens": tokenDocument{Access: token.Access, Token: token.Value}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) RemoveToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	return r.updateOne(ctx, id, bson.M{
		"$pull": bson.M{"tokens": bson.M{"access": token.Access, "token": token.Value}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{"password": passwordHash, "updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.users().DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var doc userDocument
	err := r.users().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return fromUserDocument(doc)
}

func (r *UserRepository) updateOne(ctx context.Context, id uuid.UUID, update bson.M) error {
	res, err := r.users().UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func toUserDocument(user model.User) userDocument {
	tokens := make([]tokenDocument, 0, len(user.Tokens))
	for _, t := range user.Tokens {
		tokens = append(tokens, tokenDocument{Access: t.Access, Token: t.Value})
	}
	return userDocument{
		ID:        user.ID.String(),
		Email:     user.Email,
		Password:  user.PasswordHash,
		Tokens:    tokens,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func fromUserDocument(doc userDocument) (model.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse user id %q: %w", doc.ID, err)
	}

	tokens := make([]model.Token, 0, len(doc.Tokens))
	for _, t := range doc.Tokens {
		tokens = append(tokens, model.Token{Access: t.Access, Value: t.Token})
	}

	return model.User{
		ID:           id,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		Tokens:       tokens,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
