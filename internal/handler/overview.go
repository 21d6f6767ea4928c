package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/display"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// OverviewHandler serves the overview block of a single title
type OverviewHandler struct {
	source  CatalogSource
	bundle  *i18n.Bundle
	timeout time.Duration
}

// NewOverviewHandler creates a new OverviewHandler
func NewOverviewHandler(source CatalogSource, bundle *i18n.Bundle, timeout time.Duration) *OverviewHandler {
	return &OverviewHandler{
		source:  source,
		bundle:  bundle,
		timeout: timeout,
	}
}

// GetOverview returns the overview of a movie or TV show
// GET /api/v1/overview/:type/:id
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:  400,
			Error: fmt.Sprintf("%v: id %q is not a number", catalog.ErrInvalidEndpoint, c.Param("id")),
		})
		return
	}
	ep, err := catalog.Detail(c.Param("type"), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:  400,
			Error: err.Error(),
		})
		return
	}

	tr := h.bundle.For(c.GetString(LangKey))

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	tracker := display.NewTracker()
	ticket, fetchCtx := tracker.Begin(ctx)
	item, err := h.source.Detail(fetchCtx, ep, tr.Lang())
	tracker.Commit(ticket, display.FromDetail(item, err))
	state := tracker.State()

	if err != nil {
		log.Warn().Err(err).Str("endpoint", ep.String()).Msg("Overview fetch failed")
	}

	view := model.OverviewView{
		Endpoint: ep.String(),
		Title:    item.Title,
		Heading:  tr.T("overview.heading"),
		State:    state.Kind.String(),
	}
	switch state.Kind {
	case display.Error:
		view.Message = state.Message
	case display.Empty:
		view.Message = tr.T("overview.empty")
	case display.Ready:
		view.Text = state.Text
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: view,
	})
}
