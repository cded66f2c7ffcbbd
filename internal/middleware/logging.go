package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"deadline-doom/pkg/log"
)

// RequestLog logs one line per request with status and latency.
func (mw Middleware) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := log.WithFields(c.Request.Context(),
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			mw.l.Errorf(ctx, "http %d in %s", status, latency)
		case status >= 400:
			mw.l.Warnf(ctx, "http %d in %s", status, latency)
		default:
			mw.l.Debugf(ctx, "http %d in %s", status, latency)
		}
	}
}
