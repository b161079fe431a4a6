package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/vidrelay/internal/app"
	"github.com/yourusername/vidrelay/internal/domain"
	"go.uber.org/zap"
)

// MetadataHandler handles metadata lookups
type MetadataHandler struct {
	metadata *app.MetadataService
	lookups  *app.LookupService
	logger   *zap.Logger
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(metadata *app.MetadataService, lookups *app.LookupService, logger *zap.Logger) *MetadataHandler {
	return &MetadataHandler{
		metadata: metadata,
		lookups:  lookups,
		logger:   logger,
	}
}

// GetMetadata handles GET /api/metadata?url=
func (h *MetadataHandler) GetMetadata(c *gin.Context) {
	start := time.Now()
	rawURL := c.Query("url")

	target, metadata, err := h.metadata.GetMetadata(c.Request.Context(), rawURL)

	var platform domain.Platform
	if target != nil {
		platform = target.Platform
	}

	status := http.StatusOK
	if err != nil {
		status = respondError(c, h.logger, err,
			zap.String("url", rawURL),
			zap.String("platform", string(platform)))
	} else {
		respondData(c, status, metadata)
	}

	h.lookups.Record(domain.NewLookup(rawURL, platform, domain.EndpointMetadata, status, time.Since(start), err))
}
