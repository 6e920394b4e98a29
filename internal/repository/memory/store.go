// Package memory keeps users and tasks in process memory. It backs local runs
// and end-to-end tests; data is lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/model"
)

var (
	_ model.UserStore = (*Store)(nil)
	_ model.TaskStore = (*TaskStore)(nil)
)

// Store holds users. Every method runs under one lock, which makes token
// appends and removals atomic with respect to each other.
type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
	tasks   *TaskStore
}

func New() *Store {
	return &Store{
		users:   make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
		tasks:   &TaskStore{tasks: make(map[uuid.UUID]model.Task)},
	}
}

// Tasks returns the task store sharing this store's lifetime.
func (s *Store) Tasks() *TaskStore {
	return s.tasks
}

func (s *Store) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return model.User{}, model.ErrDuplicateEmail
	}
	if user.Tokens == nil {
		user.Tokens = []model.Token{}
	}

	s.users[user.ID] = cloneUser(user)
	s.byEmail[user.Email] = user.ID

	return cloneUser(user), nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (s *Store) GetByToken(_ context.Context, id uuid.UUID, token model.Token) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok || !user.HasToken(token) {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *Store) AddToken(_ context.Context, id uuid.UUID, token model.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	user.Tokens = append(user.Tokens, token)
	user.UpdatedAt = time.Now()
	s.users[id] = user

	return nil
}

func (s *Store) RemoveToken(_ context.Context, id uuid.UUID, token model.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	user.Tokens = slices.DeleteFunc(user.Tokens, func(t model.Token) bool { return t == token })
	user.UpdatedAt = time.Now()
	s.users[id] = user

	return nil
}

func (s *Store) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	s.users[id] = user

	return nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	delete(s.byEmail, user.Email)
	delete(s.users, id)

	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func cloneUser(u model.User) model.User {
	u.Tokens = slices.Clone(u.Tokens)
	return u
}
