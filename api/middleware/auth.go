package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/vidrelay/internal/domain"
	"go.uber.org/zap"
)

// APIKey rejects requests whose key query parameter does not match apiKey.
// An empty apiKey disables the check.
func APIKey(apiKey string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		supplied := c.Query("key")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
			log.Warn("Rejected request with invalid API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("url", c.Query("url")),
				zap.String("client_ip", c.ClientIP()),
				zap.String("request_id", GetRequestID(c)),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   domain.ErrInvalidAPIKey.Error(),
			})
			return
		}
		c.Next()
	}
}
