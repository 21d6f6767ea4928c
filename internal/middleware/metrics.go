package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// APIRecorder records one finished API call
type APIRecorder interface {
	RecordAPICall(ctx context.Context, path string, statusCode int, latencyMs float64) error
}

// Metrics returns a middleware that records API metrics.
// A nil recorder turns it into a pass-through.
func Metrics(recorder APIRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only track API endpoints
		if recorder == nil || !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := float64(time.Since(start).Milliseconds())
		status := c.Writer.Status()

		// 请求结束后再记录，不能复用已取消的请求 context
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := recorder.RecordAPICall(ctx, normalizePath(c.Request.URL.Path), status, latency); err != nil {
			log.Warn().Err(err).Msg("Failed to record metrics")
		}
	}
}

// normalizePath groups paths with ids: /api/v1/overview/movie/550 -> /api/v1/overview/movie/:id
func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if isNumeric(part) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
