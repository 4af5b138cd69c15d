// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"souq/internal/delivery/http/middleware"
	"souq/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler    *handler.AccountHandler
	ProfileHandler    *handler.ProfileHandler
	CategoryHandler   *handler.CategoryHandler
	RequestHandler    *handler.RequestHandler
	AdminHandler      *handler.AdminHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler    *handler.AccountHandler
	profileHandler    *handler.ProfileHandler
	categoryHandler   *handler.CategoryHandler
	requestHandler    *handler.RequestHandler
	adminHandler      *handler.AdminHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:    params.AccountHandler,
		profileHandler:    params.ProfileHandler,
		categoryHandler:   params.CategoryHandler,
		requestHandler:    params.RequestHandler,
		adminHandler:      params.AdminHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The session middleware is applied globally in the server setup, so every
// route below already sees a session id and, when present, the logged-in user.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Phone verification and account routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/start-login", r.accountHandler.StartLogin)
		authGroup.POST("/submit-code", r.accountHandler.SubmitCode)
		authGroup.POST("/complete-registration", r.accountHandler.CompleteRegistration)
		authGroup.POST("/resend-code", r.accountHandler.ResendCode)
		authGroup.POST("/logout", r.accountHandler.Logout)
		authGroup.GET("/me", r.accountHandler.Me)
	}

	// Public taxonomy routes
	e.GET("/categories", r.categoryHandler.ListCategories)
	e.GET("/categories/tree", r.categoryHandler.GetCategoryTree)
	e.GET("/categories/:id/subcategories1", r.categoryHandler.ListSubCategories1)
	e.GET("/subcategories1/:id/subcategories2", r.categoryHandler.ListSubCategories2)

	// Public request feed
	e.GET("/requests", r.requestHandler.ListApproved)
	e.GET("/requests/:id", r.requestHandler.GetRequest)

	// Request routes that require a logged-in user
	requestGroup := e.Group("/requests")
	requestGroup.Use(r.sessionMiddleware.RequireLogin)
	{
		requestGroup.POST("", r.requestHandler.CreateRequest)
		requestGroup.GET("/mine", r.requestHandler.ListMine)
		requestGroup.DELETE("/:id", r.requestHandler.DeleteRequest)
	}

	// Profile routes that require a logged-in user
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.sessionMiddleware.RequireLogin)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
		profileGroup.POST("/image", r.profileHandler.UploadProfileImage)
		profileGroup.POST("/store-categories", r.profileHandler.AddStoreCategory)
		profileGroup.DELETE("/store-categories/:id", r.profileHandler.RemoveStoreCategory)
	}

	// Admin routes for request review and taxonomy management
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.sessionMiddleware.RequireAdmin)
	{
		adminGroup.GET("/requests", r.adminHandler.ListRequests)
		adminGroup.PUT("/requests/:id/review", r.adminHandler.ReviewRequest)
		adminGroup.DELETE("/requests/:id", r.adminHandler.DeleteRequest)

		adminGroup.POST("/categories", r.adminHandler.CreateCategory)
		adminGroup.PUT("/categories/:id", r.adminHandler.UpdateCategory)
		adminGroup.POST("/subcategories1", r.adminHandler.CreateSubCategory1)
		adminGroup.POST("/subcategories2", r.adminHandler.CreateSubCategory2)
	}
}
