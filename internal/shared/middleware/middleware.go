package middleware

import (
	"time"

	"github.com/ihor-shnaider2/cinema-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request ID to every request, reusing the caller's
// X-Request-ID when present so IDs survive proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// RequestLogger logs every request with its duration and request ID.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		reqLogger := l
		if requestID, ok := c.Get("request_id"); ok {
			if id, ok := requestID.(string); ok {
				reqLogger = l.WithRequestID(id)
			}
		}
		reqLogger.LogHTTPRequest(c, duration)
	}
}
