package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Logging writes one line per request once it completes.
func (m Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			m.l.Error(ctx, append([]any{"http request failed"}, kv...)...)
		case status >= 400:
			m.l.Warn(ctx, append([]any{"http request rejected"}, kv...)...)
		default:
			m.l.Info(ctx, append([]any{"http request"}, kv...)...)
		}
	}
}
