package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/dtroode/todo-server/internal/api/http/handler"
	"github.com/dtroode/todo-server/internal/api/http/middleware"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/service"
)

// Router wires the HTTP handlers and middleware of the todo API.
type Router struct {
	authService    *service.Auth
	taskService    *service.Task
	contextManager model.ContextManager
	logger         *logger.Logger
}

func New(
	authService *service.Auth,
	taskService *service.Task,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the request handler. Everything except registration and
// login sits behind token authentication.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	router := httprouter.New()
	r.registerUserRoutes(router, authenticate)
	r.registerTaskRoutes(router, authenticate)

	return logging.Handle(router)
}

func (r *Router) registerUserRoutes(router *httprouter.Router, authenticate *middleware.Authenticate) {
	h := handler.NewUser(r.authService, r.contextManager, r.logger)

	router.HandlerFunc(http.MethodPost, "/users", h.Register)
	router.HandlerFunc(http.MethodPost, "/users/login", h.Login)
	router.Handler(http.MethodGet, "/users/me", authenticate.Handle(http.HandlerFunc(h.Me)))
	router.Handler(http.MethodDelete, "/users/me", authenticate.Handle(http.HandlerFunc(h.Delete)))
	router.Handler(http.MethodDelete, "/users/me/token", authenticate.Handle(http.HandlerFunc(h.Logout)))
	router.Handler(http.MethodPatch, "/users/me/password", authenticate.Handle(http.HandlerFunc(h.ChangePassword)))
}

func (r *Router) registerTaskRoutes(router *httprouter.Router, authenticate *middleware.Authenticate) {
	h := handler.NewTask(r.taskService, r.contextManager, r.logger)

	router.Handler(http.MethodPost, "/todos", authenticate.Handle(http.HandlerFunc(h.Create)))
	router.Handler(http.MethodGet, "/todos", authenticate.Handle(http.HandlerFunc(h.List)))
	router.Handler(http.MethodGet, "/todos/:id", authenticate.Handle(http.HandlerFunc(h.Get)))
	router.Handler(http.MethodPatch, "/todos/:id", authenticate.Handle(http.HandlerFunc(h.Update)))
	router.Handler(http.MethodDelete, "/todos/:id", authenticate.Handle(http.HandlerFunc(h.Delete)))
}
