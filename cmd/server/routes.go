package main

import (
	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/logger"
	"github.com/nazarshv/teamtrack/backend/pkg/metrics"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())
	r.Use(metrics.Middleware())

	db := models.GetDB()

	// Rate limiter for the public auth routes
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "teamtrack"})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", metrics.Handler())

	// Public auth routes
	public := r.Group("", authLimiter.Middleware())
	{
		public.POST("/register", svc.authHandler.Register)
		public.POST("/login", svc.authHandler.Login)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthRequired(db))
	{
		// Auth
		protected.GET("/auth/me", svc.authHandler.Me)
		protected.POST("/auth/refresh", svc.authHandler.Refresh)

		// Projects
		protected.GET("/projects", svc.projectHandler.List)
		protected.POST("/projects", svc.projectHandler.Create)
		protected.PUT("/projects/:id", svc.projectHandler.Update)
		protected.POST("/projects/:id/join", svc.projectHandler.Join)
		protected.GET("/projects/:id/members", svc.projectHandler.Members)
		protected.GET("/projects/:id/activity", svc.projectHandler.Activity)
		protected.GET("/projects/:id/statistics", svc.projectHandler.Statistics)

		// Tasks
		protected.GET("/projects/:id/tasks", svc.taskHandler.List)
		protected.POST("/projects/:id/tasks", svc.taskHandler.Create)
		protected.PUT("/projects/:id/tasks/:task_id", svc.taskHandler.Update)

		// Calendar
		protected.GET("/projects/:id/calendar", svc.calendarHandler.List)
		protected.POST("/projects/:id/calendar", svc.calendarHandler.Create)

		// Ratings
		protected.GET("/projects/:id/ratings", svc.ratingHandler.List)
		protected.POST("/projects/:id/ratings", svc.ratingHandler.Add)

		// Comments
		protected.GET("/projects/:id/comments", svc.commentHandler.List)
		protected.POST("/projects/:id/comments", svc.commentHandler.Add)

		// Files
		protected.GET("/projects/:id/files", svc.fileHandler.List)
		protected.POST("/projects/:id/files", svc.fileHandler.Upload)
		protected.GET("/files/:file_id/download", svc.fileHandler.Download)

		// Notifications
		protected.GET("/notifications", svc.notificationHandler.List)
		protected.GET("/notifications/unread-count", svc.notificationHandler.UnreadCount)
		protected.POST("/notifications/mark-read", svc.notificationHandler.MarkRead)

		// User statistics (self or privileged, checked in the service)
		protected.GET("/users/:user_id/statistics", svc.userHandler.Statistics)
	}

	// Admin only routes
	admin := r.Group("")
	admin.Use(middleware.AuthRequired(db), middleware.AdminRequired())
	{
		admin.GET("/users", svc.userHandler.List)
		admin.DELETE("/users/:user_id", svc.userHandler.Delete)
		admin.DELETE("/projects/:id", svc.projectHandler.Delete)
	}
}
