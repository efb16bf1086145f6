package main

import (
	"github.com/nazarshv/teamtrack/backend/internal/config"
	"github.com/nazarshv/teamtrack/backend/internal/handlers"
	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/internal/utils"
	"github.com/nazarshv/teamtrack/backend/pkg/logger"
	"github.com/nazarshv/teamtrack/backend/pkg/metrics"
)

// appServices holds the initialized services and handlers wired into routes.
type appServices struct {
	cfg                 *config.Config
	notificationService *services.NotificationService
	activityService     *services.ActivityService
	authHandler         *handlers.AuthHandler
	projectHandler      *handlers.ProjectHandler
	taskHandler         *handlers.TaskHandler
	calendarHandler     *handlers.CalendarHandler
	notificationHandler *handlers.NotificationHandler
	ratingHandler       *handlers.RatingHandler
	commentHandler      *handlers.CommentHandler
	fileHandler         *handlers.FileHandler
	userHandler         *handlers.UserHandler
}

// bootstrap initializes the database, schedulers and handler graph.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)
	metrics.Register()

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	notificationService := services.NewNotificationService(db)
	activityService := services.NewActivityService(db)
	activityService.StartRetentionSweeper(cfg.Activity.RetentionDays)

	authService := services.NewAuthService(db, &cfg.JWT)
	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:                 cfg,
		notificationService: notificationService,
		activityService:     activityService,
		authHandler:         handlers.NewAuthHandler(db, &cfg.JWT),
		projectHandler:      handlers.NewProjectHandler(db, notificationService, activityService),
		taskHandler:         handlers.NewTaskHandler(db, notificationService, activityService),
		calendarHandler:     handlers.NewCalendarHandler(db, notificationService, activityService),
		notificationHandler: handlers.NewNotificationHandler(notificationService),
		ratingHandler:       handlers.NewRatingHandler(db),
		commentHandler:      handlers.NewCommentHandler(db),
		fileHandler:         handlers.NewFileHandler(db, cfg.Upload.Dir, notificationService, activityService),
		userHandler:         handlers.NewUserHandler(db),
	}
}

// shutdown stops background schedulers.
func (s *appServices) shutdown() {
	s.activityService.StopRetentionSweeper()
	logger.Info().Msg("All schedulers stopped")
}
