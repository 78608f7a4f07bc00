package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskvault/backend/api/handler"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Task       *apiHandler.TaskHandler
	Permission *apiHandler.PermissionHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public routes
	r.POST("/register", handlers.Auth.Register)
	r.POST("/token", handlers.Auth.Token)

	// Protected routes
	r.GET("/tasks", authMiddleware(handlers.Task.ListTasks))
	r.POST("/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PATCH("/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.POST("/tasks/{id}/permissions/create", authMiddleware(handlers.Permission.CreateGrant))
	r.PATCH("/tasks/{id}/permissions/update/{gid}", authMiddleware(handlers.Permission.UpdateGrant))
	r.DELETE("/tasks/{id}/permissions/delete/{gid}", authMiddleware(handlers.Permission.DeleteGrant))

	return r
}
