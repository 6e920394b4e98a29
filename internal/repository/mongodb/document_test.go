package mongodb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/todo-server/internal/model"
)

func TestUserDocument_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	user := model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "$2a$10$hash",
		Tokens: []model.Token{
			{Access: model.ScopeAuth, Value: "a"},
			{Access: model.ScopeAuth, Value: "b"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc := toUserDocument(user)
	assert.Equal(t, user.ID.String(), doc.ID)
	assert.Equal(t, "a", doc.Tokens[0].Token)

	got, err := fromUserDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserDocument_NoTokens(t *testing.T) {
	doc := toUserDocument(model.User{ID: uuid.New()})
	assert.NotNil(t, doc.Tokens)
	assert.Empty(t, doc.Tokens)
}

func TestFromUserDocument_BadID(t *testing.T) {
	_, err := fromUserDocument(userDocument{ID: "not-a-uuid"})
	assert.Error(t, err)
}

func TestTaskDocument_RoundTrip(t *testing.T) {
	stamp := int64(1700000000000)
	task := model.Task{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Text:        "walk the dog",
		Completed:   true,
		CompletedAt: &stamp,
	}

	doc := toTaskDocument(task)
	assert.Equal(t, task.OwnerID.String(), doc.Creator)

	got, err := fromTaskDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestFromTaskDocument_BadOwner(t *testing.T) {
	_, err := fromTaskDocument(taskDocument{ID: uuid.NewString(), Creator: "x"})
	assert.Error(t, err)
}

func TestOwnerFilter(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	f := ownerFilter(id, owner)

	assert.Equal(t, id.String(), f["_id"])
	assert.Equal(t, owner.String(), f["_creator"])
}

func TestConnection_NilClient(t *testing.T) {
	conn := &Connection{}

	assert.Error(t, conn.Ping(t.Context()))
	assert.NoError(t, conn.Close(t.Context()))
}
