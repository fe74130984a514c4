// Package middleware contains HTTP middleware for the Gin router.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header used for request tracing.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key for storing the request ID.
const RequestIDKey = "request_id"

// maxRequestIDLength bounds client supplied ids; longer ones are replaced.
const maxRequestIDLength = 128

// RequestID reuses the caller's X-Request-ID when present and reasonable,
// otherwise generates a UUID. The id is stored in the gin context and echoed
// in the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context.
// Returns empty string if not set.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
