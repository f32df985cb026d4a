// Package router contains route registration for the HTTP delivery.
package router

import (
	"storerate/config"
	"storerate/internal/delivery/api/middleware"
	"storerate/internal/delivery/api/router/handler"
	"storerate/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/profile", r.authHandler.Profile, r.authMiddleware.Authenticate)
		authGroup.PUT("/changepassword", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}

	// Store routes. Listings are public; a valid token enriches them with
	// the caller's own rating. Mutations are admin-only.
	storeGroup := e.Group("/stores")
	{
		storeGroup.GET("", r.storeHandler.List, r.authMiddleware.AuthenticateOptional)
		storeGroup.GET("/unrated", r.storeHandler.Unrated, r.authMiddleware.Authenticate)
		storeGroup.GET("/owner", r.storeHandler.OwnerStores,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleStoreOwner))
		storeGroup.GET("/:id", r.storeHandler.Get, r.authMiddleware.AuthenticateOptional)

		adminOnly := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleAdmin),
		}
		storeGroup.POST("", r.storeHandler.Create, adminOnly...)
		storeGroup.PUT("/:id", r.storeHandler.Update, adminOnly...)
		storeGroup.DELETE("/:id", r.storeHandler.Delete, adminOnly...)
	}

	// Rating routes
	ratingGroup := e.Group("/rating")
	{
		ratingGroup.GET("/:storeId", r.ratingHandler.ListForStore)
		ratingGroup.GET("/:storeId/user", r.ratingHandler.GetOwn, r.authMiddleware.Authenticate)

		userOnly := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleUser),
		}
		ratingGroup.POST("/:storeId", r.ratingHandler.Submit, userOnly...)
		ratingGroup.PUT("/:storeId", r.ratingHandler.Update, userOnly...)
		ratingGroup.DELETE("/:id", r.ratingHandler.Delete, userOnly...)
	}

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)
		adminGroup.GET("/users", r.adminHandler.Users)
		adminGroup.GET("/users/:userid", r.adminHandler.UserDetails)
		adminGroup.GET("/stores", r.adminHandler.Stores)
	}
}
