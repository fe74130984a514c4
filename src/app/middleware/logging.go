package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"resourcehub/src/infra/logger"
)

// maxLoggedBody bounds how much of a request body is echoed into debug logs.
const maxLoggedBody = 2048

// Logging emits one structured entry per request. The level follows the
// status code; request bodies are only captured when debug logging is enabled.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		debug := log.Enabled(c.Request.Context(), slog.LevelDebug)

		var reqBody []byte
		if debug && c.Request.Body != nil {
			reqBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(reqBody))
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		if debug && len(reqBody) > 0 {
			if len(reqBody) > maxLoggedBody {
				reqBody = reqBody[:maxLoggedBody]
			}
			attrs = append(attrs, "request_body", string(reqBody))
		}

		reqLog := logger.WithRequestID(log, GetRequestID(c))
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		reqLog.Log(c.Request.Context(), level, "http request", attrs...)
	}
}
