package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in both directions
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID honours an incoming X-Request-ID or generates one, and echoes it on the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID assigned by RequestID, or "" outside it
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
