package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// Task gives a principal access to the tasks it owns. Tasks of other users
// are reported as model.ErrNotFound.
type Task struct {
	taskStore model.TaskStore
	logger    *logger.Logger
	now       func() time.Time
}

func NewTask(taskStore model.TaskStore, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Task) Create(ctx context.Context, ownerID uuid.UUID, text string) (model.Task, error) {
	text, err := validateText(text)
	if err != nil {
		return model.Task{}, err
	}

	now := s.now()
	task, err := s.taskStore.Create(ctx, model.Task{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error("Task service: failed to create task",
			"owner_id", ownerID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *Task) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return tasks, nil
}

func (s *Task) Get(ctx context.Context, ownerID, id uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Update applies patch. Completing a task stamps its completion time in unix
// milliseconds, reopening it clears the stamp.
func (s *Task) Update(ctx context.Context, ownerID, id uuid.UUID, patch model.TaskPatch) (model.Task, error) {
	var update model.TaskUpdate

	if patch.Text != nil {
		text, err := validateText(*patch.Text)
		if err != nil {
			return model.Task{}, err
		}
		update.Text = &text
	}

	if patch.Completed != nil {
		completed := *patch.Completed
		update.Completed = &completed
		if completed {
			completedAt := s.now().UnixMilli()
			update.CompletedAt = &completedAt
		}
	}

	task, err := s.taskStore.Update(ctx, id, ownerID, update)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *Task) Delete(ctx context.Context, ownerID, id uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.Delete(ctx, id, ownerID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug("Task service: task deleted", "owner_id", ownerID, "task_id", id)

	return task, nil
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", model.NewValidationError("text", "is required")
	}
	return text, nil
}
