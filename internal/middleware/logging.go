package middleware

import (
	"time"

	"catalog-browser/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logging logs one line per request; the level follows the status code.
// Health checks are logged at debug level. Catalog requests carry the page
// or row endpoint they resolved.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		case c.Request.URL.Path == "/health":
			event = log.Debug()
		default:
			event = log.Info()
		}

		event = event.
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Int("size", c.Writer.Size())

		if lang := c.GetString(handler.LangKey); lang != "" {
			event = event.Str("lang", lang)
		}
		if client := c.GetString(handler.ClientIDKey); client != "" {
			event = event.Str("client", client)
		}
		if page := c.Param("page"); page != "" {
			event = event.Str("page", page)
		}
		if ep := c.Query("endpoint"); ep != "" {
			event = event.Str("endpoint", ep)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.Msg("request")
	}
}
