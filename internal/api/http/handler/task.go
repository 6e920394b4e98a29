package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// TaskService defines owner-scoped task operations.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, text string) (model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (model.Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (model.Task, error)
}

type createTaskRequest struct {
	Text string `json:"text"`
}

type updateTaskRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type taskResponse struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	Creator     string `json:"_creator"`
}

type taskEnvelope struct {
	Todo taskResponse `json:"todo"`
}

type taskListEnvelope struct {
	Todos []taskResponse `json:"todos"`
}

func newTaskResponse(task model.Task) taskResponse {
	return taskResponse{
		ID:          task.ID.String(),
		Text:        task.Text,
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		Creator:     task.OwnerID.String(),
	}
}

// Task handles the /todos endpoints. Every handler runs behind
// authentication and acts only on the principal's tasks.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Create handles POST /todos. The owner always comes from the principal.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(r)
	if !ok {
		handleError(w, h.logger, model.ErrUnauthorized)
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), ownerID, req.Text)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newTaskResponse(task))
}

// List handles GET /todos.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(r)
	if !ok {
		handleError(w, h.logger, model.ErrUnauthorized)
		return
	}

	tasks, err := h.taskService.List(r.Context(), ownerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp := taskListEnvelope{Todos: make([]taskResponse, 0, len(tasks))}
	for _, task := range tasks {
		resp.Todos = append(resp.Todos, newTaskResponse(task))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /todos/:id.
func (h *Task) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := h.target(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), ownerID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, taskEnvelope{Todo: newTaskResponse(task)})
}

// Update handles PATCH /todos/:id.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	task, err := h.taskService.Update(r.Context(), ownerID, id, model.TaskPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, taskEnvelope{Todo: newTaskResponse(task)})
}

// Delete handles DELETE /todos/:id and responds with the removed task.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := h.target(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Delete(r.Context(), ownerID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, taskEnvelope{Todo: newTaskResponse(task)})
}

func (h *Task) ownerID(r *http.Request) (uuid.UUID, bool) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	return principal.User.ID, true
}

// target resolves the owner and the task id from the path. A malformed id
// is reported as not found.
func (h *Task) target(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := h.ownerID(r)
	if !ok {
		handleError(w, h.logger, model.ErrUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(httprouter.ParamsFromContext(r.Context()).ByName("id"))
	if err != nil {
		handleError(w, h.logger, model.ErrNotFound)
		return uuid.Nil, uuid.Nil, false
	}

	return ownerID, id, true
}
