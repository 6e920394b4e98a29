package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/model"
)

// TaskStore holds tasks in memory.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]model.Task
}

func (s *TaskStore) Create(_ context.Context, task model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task
	return task, nil
}

func (s *TaskStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Task{}
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (s *TaskStore) GetByID(_ context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return model.Task{}, model.ErrNotFound
	}
	return t, nil
}

func (s *TaskStore) Update(_ context.Context, id, ownerID uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return model.Task{}, model.ErrNotFound
	}
	if update.Text != nil {
		t.Text = *update.Text
	}
	if update.Completed != nil {
		t.Completed = *update.Completed
		t.CompletedAt = update.CompletedAt
	}
	t.UpdatedAt = time.Now()
	s.tasks[id] = t

	return t, nil
}

func (s *TaskStore) Delete(_ context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return model.Task{}, model.ErrNotFound
	}
	delete(s.tasks, id)

	return t, nil
}

func (s *TaskStore) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.tasks {
		if t.OwnerID == ownerID {
			delete(s.tasks, id)
		}
	}
	return nil
}
