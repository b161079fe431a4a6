package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/vidrelay/internal/domain"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	environment string
	now         func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		now:         time.Now,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Timestamp   string            `json:"timestamp"`
	Environment string            `json:"environment"`
	Platforms   []domain.Platform `json:"platforms"`
}

// Health handles GET /api/health. It never calls an upstream.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Success:     true,
		Message:     "VidRelay API is running",
		Timestamp:   h.now().UTC().Format(time.RFC3339Nano),
		Environment: h.environment,
		Platforms:   domain.SupportedPlatforms(),
	})
}
