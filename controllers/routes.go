package controllers

import (
	"github.com/RushabhMehta2005/stores-api/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery())

	if h.Metrics != nil {
		router.Use(h.Metrics.Middleware())
		router.GET("/metrics", h.Metrics.Handler())
	}

	router.GET("/healthz", h.Health)

	// Public routes - Authentication
	credentialRoutes := router.Group("/")
	if h.Limiter != nil {
		credentialRoutes.Use(h.Limiter.Middleware())
	}
	credentialRoutes.POST("/auth", h.Login)
	credentialRoutes.POST("/register", h.Register)

	// Protected routes - Authentication
	router.POST("/refresh", h.Guard.RequireAuth, h.Refresh)
	router.DELETE("/user", h.Guard.RequireAuth, h.DeleteAccount)

	// Items
	router.GET("/item/:name", h.Guard.RequireAuth, h.GetItem)
	router.POST("/item/:name", h.CreateItem)
	router.PUT("/item/:name", h.UpsertItem)
	router.DELETE("/item/:name", h.DeleteItem)
	router.GET("/items", h.ListItems)

	// Stores
	router.GET("/store/:name", h.GetStore)
	router.POST("/store/:name", h.CreateStore)
	router.DELETE("/store/:name", h.DeleteStore)
	router.GET("/stores", h.ListStores)

	return router
}
