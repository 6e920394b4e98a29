package mocks

import (
	context "context"

	model "github.com/dtroode/todo-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// AuthService is a mock type for the AuthService type
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Register(ctx context.Context, email string, password string) (model.User, string, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.User), ret.String(1), ret.Error(2)
}

func (_m *AuthService) Login(ctx context.Context, email string, password string) (model.User, string, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.User), ret.String(1), ret.Error(2)
}

func (_m *AuthService) RevokeToken(ctx context.Context, user model.User, token model.Token) error {
	ret := _m.Called(ctx, user, token)
	return ret.Error(0)
}

func (_m *AuthService) ChangePassword(ctx context.Context, user model.User, password string) error {
	ret := _m.Called(ctx, user, password)
	return ret.Error(0)
}

func (_m *AuthService) DeleteAccount(ctx context.Context, user model.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

// NewAuthService creates a new instance of AuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
