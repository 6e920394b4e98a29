package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/todo-server/internal/model"
)

func newUser(email string) model.User {
	return model.User{ID: uuid.New(), Email: email, PasswordHash: "digest", CreatedAt: time.Now(), UpdatedAt: time.Now()}
}

func TestStore_CreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Create(ctx, newUser("a@example.com"))
	require.NoError(t, err)

	_, err = s.Create(ctx, newUser("a@example.com"))
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	got, err := s.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.NotNil(t, got.Tokens)
}

func TestStore_ConcurrentRegistrationKeepsOneUser(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Create(ctx, newUser("race@example.com")); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, s.users, 1)
}

func TestStore_ConcurrentAddToken(t *testing.T) {
	ctx := context.Background()
	s := New()
	u, err := s.Create(ctx, newUser("a@example.com"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.AddToken(ctx, u.ID, model.Token{Access: model.ScopeAuth, Value: fmt.Sprint(i)}))
		}(i)
	}
	wg.Wait()

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tokens, 50)
}

func TestStore_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	u, err := s.Create(ctx, newUser("a@example.com"))
	require.NoError(t, err)

	first := model.Token{Access: model.ScopeAuth, Value: "one"}
	second := model.Token{Access: model.ScopeAuth, Value: "two"}
	otherScope := model.Token{Access: "reset", Value: "one"}

	require.NoError(t, s.AddToken(ctx, u.ID, first))
	require.NoError(t, s.AddToken(ctx, u.ID, second))

	_, err = s.GetByToken(ctx, u.ID, first)
	require.NoError(t, err)
	_, err = s.GetByToken(ctx, u.ID, otherScope)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.RemoveToken(ctx, u.ID, otherScope))
	require.NoError(t, s.RemoveToken(ctx, u.ID, first))
	require.NoError(t, s.RemoveToken(ctx, u.ID, first))

	_, err = s.GetByToken(ctx, u.ID, first)
	require.ErrorIs(t, err, model.ErrNotFound)

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Token{second}, got.Tokens)

	require.ErrorIs(t, s.AddToken(ctx, uuid.New(), first), model.ErrNotFound)
	require.ErrorIs(t, s.RemoveToken(ctx, uuid.New(), first), model.ErrNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	u, err := s.Create(ctx, newUser("a@example.com"))
	require.NoError(t, err)
	require.NoError(t, s.AddToken(ctx, u.ID, model.Token{Access: model.ScopeAuth, Value: "one"}))

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Tokens[0].Value = "mutated"

	again, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "one", again.Tokens[0].Value)
}

func TestStore_UpdatePasswordAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	u, err := s.Create(ctx, newUser("a@example.com"))
	require.NoError(t, err)

	require.NoError(t, s.UpdatePasswordHash(ctx, u.ID, "new-digest"))
	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-digest", got.PasswordHash)

	require.NoError(t, s.Delete(ctx, u.ID))
	_, err = s.GetByEmail(ctx, "a@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, u.ID), model.ErrNotFound)

	_, err = s.Create(ctx, newUser("a@example.com"))
	require.NoError(t, err)
}

func TestTaskStore_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	s := New().Tasks()
	owner, stranger := uuid.New(), uuid.New()

	task, err := s.Create(ctx, model.Task{ID: uuid.New(), OwnerID: owner, Text: "first", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = s.GetByID(ctx, task.ID, stranger)
	require.ErrorIs(t, err, model.ErrNotFound)

	text := "hijacked"
	_, err = s.Update(ctx, task.ID, stranger, model.TaskUpdate{Text: &text})
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Delete(ctx, task.ID, stranger)
	require.ErrorIs(t, err, model.ErrNotFound)

	list, err := s.ListByOwner(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetByID(ctx, task.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Text)
}

func TestTaskStore_UpdateCompletion(t *testing.T) {
	ctx := context.Background()
	s := New().Tasks()
	owner := uuid.New()
	task, err := s.Create(ctx, model.Task{ID: uuid.New(), OwnerID: owner, Text: "t"})
	require.NoError(t, err)

	yes, no, at := true, false, int64(5000)
	got, err := s.Update(ctx, task.ID, owner, model.TaskUpdate{Completed: &yes, CompletedAt: &at})
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, at, *got.CompletedAt)

	got, err = s.Update(ctx, task.ID, owner, model.TaskUpdate{Completed: &no})
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestTaskStore_DeleteByOwner(t *testing.T) {
	ctx := context.Background()
	s := New().Tasks()
	owner, other := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, model.Task{ID: uuid.New(), OwnerID: owner, Text: "t"})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, model.Task{ID: uuid.New(), OwnerID: other, Text: "t"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteByOwner(ctx, owner))

	mine, err := s.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := s.ListByOwner(ctx, other)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
