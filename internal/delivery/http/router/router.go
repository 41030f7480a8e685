// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strings"

	"postboard/config"
	"postboard/internal/delivery/http/middleware"
	"postboard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	PostHandler    *handler.PostHandler
	MediaHandler   *handler.MediaHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	uploadPrefix   string
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	postHandler    *handler.PostHandler
	mediaHandler   *handler.MediaHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		uploadPrefix:   params.Config.Uploads.PublicPrefix,
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		postHandler:    params.PostHandler,
		mediaHandler:   params.MediaHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public pages and session endpoints
	e.GET("/", r.authHandler.RegisterPage)
	e.GET("/register", r.authHandler.RegisterPage)
	e.GET("/login", r.authHandler.LoginPage)
	e.POST("/register", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)
	e.GET("/logout", r.authHandler.Logout)

	// Stored media
	e.GET(strings.TrimSuffix(r.uploadPrefix, "/")+"/:name", r.mediaHandler.Serve)

	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.Profile)
		profileGroup.POST("/avatar", r.profileHandler.UploadAvatar)
	}

	postGroup := e.Group("/post")
	postGroup.Use(r.authMiddleware.Authenticate)
	{
		postGroup.POST("", r.postHandler.Create)
		postGroup.POST("/:id/like", r.postHandler.Like)
		postGroup.GET("/:id/edit", r.postHandler.EditPage)
		postGroup.POST("/:id/edit", r.postHandler.Edit)
		postGroup.POST("/:id/delete", r.postHandler.Delete)
	}
}
