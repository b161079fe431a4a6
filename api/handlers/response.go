package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yourusername/vidrelay/api/middleware"
	"github.com/yourusername/vidrelay/internal/domain"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// DataResponse is the body of a successful data-returning API call
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, DataResponse{Success: true, Data: data})
}

// respondError logs err with the request context and writes its client-safe
// message with the status derived from its kind. Nothing is written once the
// response has started.
func respondError(c *gin.Context, log *zap.Logger, err error, fields ...zap.Field) int {
	status := domain.StatusFor(err)
	fields = append(fields,
		zap.Int("status", status),
		zap.String("kind", string(domain.KindOf(err))),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)

	if c.Writer.Written() {
		log.Error("Request failed after response started", fields...)
		return c.Writer.Status()
	}

	if status >= 500 {
		log.Error("Request failed", fields...)
	} else {
		log.Warn("Request rejected", fields...)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: domain.PublicMessage(err)})
	return status
}
