package middleware

import (
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"
	requestIDKey    = "requestID"
	maxRequestIDLen = 128
)

// RequestID propagates the caller's X-Request-Id or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger logs all incoming requests with details
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"requestId", GetRequestID(c),
		}
		if userID := GetUserID(c); userID != "" {
			fields = append(fields, "userId", userID)
		}

		switch {
		case status >= 500:
			logger.L().Errorw("Request failed", append(fields, "errors", c.Errors.String())...)
		case status >= 400:
			logger.L().Warnw("Request rejected", fields...)
		default:
			logger.L().Infow("Request handled", fields...)
		}
	}
}
