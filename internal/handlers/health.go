package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scriptvault/backend/internal/models"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of the service and its database.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	c.JSON(200, gin.H{
		"success":   true,
		"status":    overall,
		"service":   "scriptvault",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"components": gin.H{
			"database": dbStatus,
		},
	})
}
