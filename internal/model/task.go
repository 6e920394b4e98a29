package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
// Every lookup and mutation is scoped to the owner passed in.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (Task, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, update TaskUpdate) (Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (Task, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// Task represents a stored todo item.
type Task struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Text        string
	Completed   bool
	CompletedAt *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate lists the fields to change on a task. Nil fields are left as is.
// CompletedAt is applied together with Completed.
type TaskUpdate struct {
	Text        *string
	Completed   *bool
	CompletedAt *int64
}

// TaskPatch is a client supplied partial task update.
type TaskPatch struct {
	Text      *string
	Completed *bool
}
