package main

import (
	"github.com/scriptvault/backend/internal/config"
	"github.com/scriptvault/backend/internal/handlers"
	"github.com/scriptvault/backend/internal/models"
	"github.com/scriptvault/backend/internal/services"
	"github.com/scriptvault/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	tokenService     *services.TokenService
	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	scriptHandler    *handlers.ScriptHandler
	systemLogHandler *handlers.SystemLogHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Audit trail writes to system_logs
	services.InitSystemLogger(db)
	services.StartLogCleanupScheduler(db, cfg.Log.RetentionDays)

	tokenService := services.NewTokenService(&cfg.JWT)

	return &appServices{
		tokenService:     tokenService,
		authHandler:      handlers.NewAuthHandler(db, tokenService),
		projectHandler:   handlers.NewProjectHandler(db),
		scriptHandler:    handlers.NewScriptHandler(db),
		systemLogHandler: handlers.NewSystemLogHandler(db),
		healthHandler:    handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	services.StopLogCleanupScheduler()
	logger.Info().Msg("Schedulers stopped")
}
