package mocks

import (
	model "github.com/dtroode/todo-server/internal/model"
	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// TokenCodec is a mock type for the TokenCodec type
type TokenCodec struct {
	mock.Mock
}

func (_m *TokenCodec) Sign(subject uuid.UUID, access string) (string, error) {
	ret := _m.Called(subject, access)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenCodec) Verify(token string) (model.Claims, error) {
	ret := _m.Called(token)
	return ret.Get(0).(model.Claims), ret.Error(1)
}

// NewTokenCodec creates a new instance of TokenCodec. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenCodec(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenCodec {
	m := &TokenCodec{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
