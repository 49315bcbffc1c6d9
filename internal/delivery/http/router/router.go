// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"todoapp/internal/delivery/http/middleware"
	"todoapp/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	TodoHandler     *handler.TodoHandler
	CategoryHandler *handler.CategoryHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	todoHandler     *handler.TodoHandler
	categoryHandler *handler.CategoryHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		todoHandler:     params.TodoHandler,
		categoryHandler: params.CategoryHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The Session middleware is installed on the whole server; groups here only add the guard.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.RequireAuth)
	}

	e.GET("/me", r.authHandler.Me, r.authMiddleware.RequireAuth)

	todosGroup := e.Group("/todos")
	todosGroup.Use(r.authMiddleware.RequireAuth)
	{
		todosGroup.GET("", r.todoHandler.List)
		todosGroup.GET("/stats", r.todoHandler.Stats)
		todosGroup.POST("", r.todoHandler.Create)
		todosGroup.PUT("/:id", r.todoHandler.Update)
		todosGroup.PATCH("/:id/toggle", r.todoHandler.ToggleComplete)
		todosGroup.DELETE("/:id", r.todoHandler.Delete)
	}

	categoriesGroup := e.Group("/categories")
	categoriesGroup.Use(r.authMiddleware.RequireAuth)
	{
		categoriesGroup.GET("", r.categoryHandler.List)
		categoriesGroup.POST("", r.categoryHandler.Create)
		categoriesGroup.PUT("/:id", r.categoryHandler.Update)
		categoriesGroup.DELETE("/:id", r.categoryHandler.Delete)
	}
}
