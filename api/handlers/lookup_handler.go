package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/vidrelay/internal/app"
	"github.com/yourusername/vidrelay/internal/domain"
	"go.uber.org/zap"
)

// LookupHandler exposes the lookup journal
type LookupHandler struct {
	lookups *app.LookupService
	logger  *zap.Logger
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(lookups *app.LookupService, logger *zap.Logger) *LookupHandler {
	return &LookupHandler{
		lookups: lookups,
		logger:  logger,
	}
}

// ListLookups handles GET /api/lookups?limit=
func (h *LookupHandler) ListLookups(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, h.logger, domain.NewValidationError("limit must be a positive integer."))
			return
		}
		limit = n
	}

	lookups, err := h.lookups.Recent(limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, lookups)
}

// GetStats handles GET /api/lookups/stats
func (h *LookupHandler) GetStats(c *gin.Context) {
	stats, err := h.lookups.Stats()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
