// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) bool

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    HealthChecker
	redisHealthChecker HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// redisHealthChecker may be nil when Redis is disabled.
func NewHealthController(dbHealthChecker, redisHealthChecker HealthChecker) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	reqCtx := c.Request.Context()

	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker(reqCtx) {
		dbStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.redisHealthChecker != nil {
		response.Redis = "disconnected"
		if h.redisHealthChecker(reqCtx) {
			response.Redis = "connected"
		}
	}

	c.JSON(http.StatusOK, response)
}
