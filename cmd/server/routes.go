package main

import (
	"github.com/gin-gonic/gin"
	"github.com/scriptvault/backend/internal/middleware"
	"github.com/scriptvault/backend/pkg/logger"
	"github.com/scriptvault/backend/pkg/response"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID(), logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Brute-force throttle for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.tokenService), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.PUT("/auth/profile", svc.authHandler.UpdateProfile)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)

			// Scripts; the project-scoped listing must be registered
			// before the /:id routes
			protected.GET("/scripts", svc.scriptHandler.List)
			protected.POST("/scripts", svc.scriptHandler.Create)
			protected.GET("/scripts/project/:projectId", svc.scriptHandler.ListByProject)
			protected.GET("/scripts/:id", svc.scriptHandler.GetByID)
			protected.PUT("/scripts/:id", svc.scriptHandler.Update)
			protected.DELETE("/scripts/:id", svc.scriptHandler.Delete)

			// Audit trail
			protected.GET("/system-logs", svc.systemLogHandler.List)
		}
	}

	// 404 handler with the standard envelope
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route "+c.Request.URL.Path+" not found")
	})
}
