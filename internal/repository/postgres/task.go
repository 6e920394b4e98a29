package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/todo-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, owner_id, text, completed, completed_at, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO todos (id, owner_id, text, completed, completed_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.OwnerID, task.Text, task.Completed, task.CompletedAt, task.CreatedAt, task.UpdatedAt,
	))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM todos WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM todos WHERE id = $1 AND owner_id = $2`

	task, err := scanTask(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, id, ownerID uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	query := `UPDATE todos SET
				text = COALESCE($3::text, text),
				completed = COALESCE($4::boolean, completed),
				completed_at = CASE WHEN $4::boolean IS NULL THEN completed_at ELSE $5::bigint END,
				updated_at = NOW()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRow(ctx, query, id, ownerID, update.Text, update.Completed, update.CompletedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	query := `DELETE FROM todos WHERE id = $1 AND owner_id = $2 RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM todos WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("failed to delete tasks by owner: %w", err)
	}
	return nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var task model.Task
	err := row.Scan(&task.ID, &task.OwnerID, &task.Text, &task.Completed, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt)
	return task, err
}
