package mocks

import (
	context "context"

	model "github.com/dtroode/todo-server/internal/model"
	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// TaskStore is a mock type for the TaskStore type
type TaskStore struct {
	mock.Mock
}

func (_m *TaskStore) Create(ctx context.Context, task model.Task) (model.Task, error) {
	ret := _m.Called(ctx, task)
	return ret.Get(0).(model.Task), ret.Error(1)
}

func (_m *TaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	ret := _m.Called(ctx, ownerID)
	var r0 []model.Task
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Task)
	}
	return r0, ret.Error(1)
}

func (_m *TaskStore) GetByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (model.Task, error) {
	ret := _m.Called(ctx, id, ownerID)
	return ret.Get(0).(model.Task), ret.Error(1)
}

func (_m *TaskStore) Update(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	ret := _m.Called(ctx, id, ownerID, update)
	return ret.Get(0).(model.Task), ret.Error(1)
}

func (_m *TaskStore) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (model.Task, error) {
	ret := _m.Called(ctx, id, ownerID)
	return ret.Get(0).(model.Task), ret.Error(1)
}

func (_m *TaskStore) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	ret := _m.Called(ctx, ownerID)
	return ret.Error(0)
}

// NewTaskStore creates a new instance of TaskStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTaskStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *TaskStore {
	m := &TaskStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
