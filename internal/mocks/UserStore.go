package mocks

import (
	context "context"

	model "github.com/dtroode/todo-server/internal/model"
	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// UserStore is a mock type for the UserStore type
type UserStore struct {
	mock.Mock
}

func (_m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := _m.Called(ctx, user)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) GetByToken(ctx context.Context, id uuid.UUID, token model.Token) (model.User, error) {
	ret := _m.Called(ctx, id, token)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) AddToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	ret := _m.Called(ctx, id, token)
	return ret.Error(0)
}

func (_m *UserStore) RemoveToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	ret := _m.Called(ctx, id, token)
	return ret.Error(0)
}

func (_m *UserStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	ret := _m.Called(ctx, id, passwordHash)
	return ret.Error(0)
}

func (_m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *UserStore) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewUserStore creates a new instance of UserStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
