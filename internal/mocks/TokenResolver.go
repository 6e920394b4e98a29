package mocks

import (
	context "context"

	model "github.com/dtroode/todo-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// TokenResolver is a mock type for the TokenResolver type
type TokenResolver struct {
	mock.Mock
}

func (_m *TokenResolver) ResolveToken(ctx context.Context, token string) (model.Principal, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(model.Principal), ret.Error(1)
}

// NewTokenResolver creates a new instance of TokenResolver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenResolver {
	m := &TokenResolver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
