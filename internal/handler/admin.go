package handler

import (
	"context"
	"errors"
	"net/http"

	"catalog-browser/internal/backend"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"
	"catalog-browser/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StatusReporter describes the configured TMDB adapter
type StatusReporter interface {
	IsConfigured() bool
	KeyCount() int
}

// PreferenceCounter counts stored language preferences
type PreferenceCounter interface {
	Count(ctx context.Context) (int64, error)
}

// AdminHandler handles admin-related endpoints
type AdminHandler struct {
	tmdb    StatusReporter
	bundle  *i18n.Bundle
	metrics *repository.Metrics
	prefs   PreferenceCounter
	backend *backend.Client
}

// NewAdminHandler creates a new AdminHandler. metrics and prefs may be nil
// when Redis is not configured.
func NewAdminHandler(tmdb StatusReporter, bundle *i18n.Bundle, metrics *repository.Metrics, prefs PreferenceCounter, b *backend.Client) *AdminHandler {
	return &AdminHandler{
		tmdb:    tmdb,
		bundle:  bundle,
		metrics: metrics,
		prefs:   prefs,
		backend: b,
	}
}

// GetStatus returns service status
// GET /api/v1/status
func (h *AdminHandler) GetStatus(c *gin.Context) {
	status := gin.H{
		"status":           "ok",
		"tmdb_enabled":     h.tmdb.IsConfigured(),
		"tmdb_key_count":   h.tmdb.KeyCount(),
		"metrics_enabled":  h.metrics != nil,
		"default_language": h.bundle.Fallback(),
		"languages":        h.bundle.Supported(),
	}
	if h.prefs != nil {
		n, err := h.prefs.Count(c.Request.Context())
		if err != nil {
			log.Warn().Err(err).Msg("Failed to count stored preferences")
		} else {
			status["stored_preferences"] = n
		}
	}
	c.JSON(http.StatusOK, status)
}

// GetAnalytics returns API and row analytics
// GET /api/v1/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, model.APIResponse{
			Code:  503,
			Error: "metrics disabled: REDIS_URL not configured",
		})
		return
	}

	stats, err := h.metrics.GetOverallStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:  500,
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: stats,
	})
}

// ResetAnalytics resets all analytics data
// DELETE /api/v1/analytics
func (h *AdminHandler) ResetAnalytics(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, model.APIResponse{
			Code:  503,
			Error: "metrics disabled: REDIS_URL not configured",
		})
		return
	}

	if err := h.metrics.ResetMetrics(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:  500,
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    200,
		Message: "所有统计数据已重置",
	})
}

// InvokeBackend invokes one operation of the removed backend integration and
// reports the error it returns
// GET /api/v1/backend/:op
func (h *AdminHandler) InvokeBackend(c *gin.Context) {
	op := c.Param("op")
	err := h.backend.Invoke(op)

	switch {
	case errors.Is(err, backend.ErrRemoved):
		c.JSON(http.StatusGone, model.APIResponse{
			Code:  410,
			Error: err.Error(),
		})
	case err != nil:
		c.JSON(http.StatusNotFound, model.APIResponse{
			Code:  404,
			Error: err.Error(),
		})
	default:
		c.JSON(http.StatusOK, model.APIResponse{
			Code: 200,
			Data: op,
		})
	}
}
