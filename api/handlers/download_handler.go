package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/vidrelay/api/middleware"
	"github.com/yourusername/vidrelay/internal/app"
	"github.com/yourusername/vidrelay/internal/domain"
	"github.com/yourusername/vidrelay/internal/infrastructure"
	"go.uber.org/zap"
)

// DownloadHandler handles download requests. The API key is checked by
// middleware before it runs.
type DownloadHandler struct {
	metadata  *app.MetadataService
	downloads *app.DownloadService
	lookups   *app.LookupService
	logger    *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(metadata *app.MetadataService, downloads *app.DownloadService, lookups *app.LookupService, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		metadata:  metadata,
		downloads: downloads,
		lookups:   lookups,
		logger:    logger,
	}
}

// Download handles GET /api/download?url=&format=
func (h *DownloadHandler) Download(c *gin.Context) {
	start := time.Now()
	rawURL := c.Query("url")
	format := c.Query("format")

	var platform domain.Platform
	status, err := h.serve(c, rawURL, format, &platform)
	if err != nil {
		status = respondError(c, h.logger, err,
			zap.String("url", rawURL),
			zap.String("platform", string(platform)),
			zap.String("format", format))
	}

	h.lookups.Record(domain.NewLookup(rawURL, platform, domain.EndpointDownload, status, time.Since(start), err))
}

func (h *DownloadHandler) serve(c *gin.Context, rawURL, format string, platform *domain.Platform) (int, error) {
	ctx := c.Request.Context()

	target, err := h.metadata.Resolve(rawURL)
	if err != nil {
		return 0, err
	}
	*platform = target.Platform

	plan, err := h.downloads.Plan(ctx, target, format)
	if err != nil {
		return 0, err
	}

	if plan.IsRedirect() {
		c.Redirect(http.StatusFound, plan.RedirectURL)
		return http.StatusFound, nil
	}

	stream, err := h.downloads.Open(ctx, plan)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	c.Header("Content-Disposition", plan.ContentDisposition())
	c.Header("Content-Type", plan.Option.ContentType())
	if stream.ContentLength > 0 {
		c.Header("Content-Length", strconv.FormatInt(stream.ContentLength, 10))
	}
	c.Status(http.StatusOK)

	written, err := io.Copy(c.Writer, stream.Body)
	if err != nil && !c.Writer.Written() {
		// Nothing reached the client yet, so it still gets a JSON error.
		header := c.Writer.Header()
		header.Del("Content-Disposition")
		header.Del("Content-Type")
		header.Del("Content-Length")
		return 0, infrastructure.WrapError(target.Platform, err)
	}
	if err != nil {
		// Headers are gone; the client just sees a truncated body.
		h.logger.Warn("Media stream interrupted",
			zap.String("url", target.URL),
			zap.String("platform", string(target.Platform)),
			zap.Int64("bytes", written),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		return http.StatusOK, nil
	}

	h.logger.Info("Media streamed",
		zap.String("url", target.URL),
		zap.String("option", plan.Option.ID),
		zap.String("filename", plan.Filename),
		zap.Int64("bytes", written),
		zap.String("request_id", middleware.GetRequestID(c)))
	return http.StatusOK, nil
}
