package mocks

import (
	context "context"

	model "github.com/dtroode/todo-server/internal/model"
	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// TaskService is a mock type for the TaskService type
type TaskService struct {
	mock.Mock
}

func (_m *TaskService) Create(ctx context.Context, ownerID uuid.UUID, text string) (model.Task, error) {
	ret := _m.Called(ctx, ownerID, text)
	return ret.Get(0).(model.Task), ret.Error(1)
}

func (_m *TaskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	ret := _m.Called(ctx, ownerID)
	var r0 []model.Task
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Task)
	}
	return r0, ret.Error(1)
}

func (_m *TaskService) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (model.Task, error) {
	ret := _m.Called(ctx, ownerID, id)
	return ret.Get(0).(model.Task), ret.Error(1)
}

func (_m *TaskService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, patch model.TaskPatch) (model.Task, error) {
	ret := _m.Called(ctx, ownerID, id, patch)
	return ret.Get(0).(model.Task), ret.Error(1)
}

func (_m *TaskService) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (model.Task, error) {
	ret := _m.Called(ctx, ownerID, id)
	return ret.Get(0).(model.Task), ret.Error(1)
}

// NewTaskService creates a new instance of TaskService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTaskService(t interface {
	mock.TestingT
	Cleanup(func())
}) *TaskService {
	m := &TaskService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
