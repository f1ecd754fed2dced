// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"roster/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account routes, paths kept compatible with the previous service
	userGroup := e.Group("/api/user")
	{
		userGroup.POST("/register", r.accountHandler.Register)
		userGroup.POST("/login", r.accountHandler.Login)
		userGroup.GET("/profile", r.accountHandler.Profile)
		userGroup.GET("/getUsers", r.accountHandler.ListAccounts)
		userGroup.PUT("/update/:userId", r.accountHandler.UpdateAccount)
		userGroup.POST("/changePassword/:userId", r.accountHandler.ChangePassword)
		userGroup.DELETE("/delete/:userId", r.accountHandler.DeleteAccount)
	}
}
