package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/todo-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type taskDocument struct {
	ID          string    `bson:"_id"`
	Creator     string    `bson:"_creator"`
	Text        string    `bson:"text"`
	Completed   bool      `bson:"completed"`
	CompletedAt *int64    `bson:"completedAt"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type TaskRepository struct {
	conn *Connection
}

func NewTaskRepository(conn *Connection) *TaskRepository {
	return &TaskRepository{conn: conn}
}

func (r *TaskRepository) todos() *mongo.Collection {
	return r.conn.collection(todosCollection)
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	doc := toTaskDocument(task)
	if _, err := r.todos().InsertOne(ctx, doc); err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return fromTaskDocument(doc)
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := r.todos().Find(ctx, bson.M{"_creator": ownerID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := fromTaskDocument(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	var doc taskDocument
	err := r.todos().FindOne(ctx, ownerFilter(id, ownerID)).Decode(&doc)
	if err != nil {
		return model.Task{}, mapNotFound(err, "failed to get task by id")
	}
	return fromTaskDocument(doc)
}

func (r *TaskRepository) Update(ctx context.Context, id, ownerID uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Text != nil {
		set["text"] = *update.Text
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
		set["completedAt"] = update.CompletedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err := r.todos().FindOneAndUpdate(ctx, ownerFilter(id, ownerID), bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return model.Task{}, mapNotFound(err, "failed to update task")
	}
	return fromTaskDocument(doc)
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	var doc taskDocument
	err := r.todos().FindOneAndDelete(ctx, ownerFilter(id, ownerID)).Decode(&doc)
	if err != nil {
		return model.Task{}, mapNotFound(err, "failed to delete task")
	}
	return fromTaskDocument(doc)
}

func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.todos().DeleteMany(ctx, bson.M{"_creator": ownerID.String()}); err != nil {
		return fmt.Errorf("failed to delete tasks by owner: %w", err)
	}
	return nil
}

func ownerFilter(id, ownerID uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "_creator": ownerID.String()}
}

func mapNotFound(err error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func toTaskDocument(task model.Task) taskDocument {
	return taskDocument{
		ID:          task.ID.String(),
		Creator:     task.OwnerID.String(),
		Text:        task.Text,
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func fromTaskDocument(doc taskDocument) (model.Task, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to parse task id %q: %w", doc.ID, err)
	}
	ownerID, err := uuid.Parse(doc.Creator)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to parse task owner %q: %w", doc.Creator, err)
	}
	return model.Task{
		ID:          id,
		OwnerID:     ownerID,
		Text:        doc.Text,
		Completed:   doc.Completed,
		CompletedAt: doc.CompletedAt,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
