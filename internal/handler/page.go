package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/display"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PageHandler serves page compositions and single rows
type PageHandler struct {
	source   CatalogSource
	bundle   *i18n.Bundle
	recorder OutcomeRecorder
	timeout  time.Duration
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(source CatalogSource, bundle *i18n.Bundle, recorder OutcomeRecorder, timeout time.Duration) *PageHandler {
	return &PageHandler{
		source:   source,
		bundle:   bundle,
		recorder: recorder,
		timeout:  timeout,
	}
}

// ListPages returns the available pages and their rows
// GET /api/v1/pages
func (h *PageHandler) ListPages(c *gin.Context) {
	tr := h.bundle.For(c.GetString(LangKey))

	type rowInfo struct {
		Key      string `json:"key"`
		Title    string `json:"title"`
		Endpoint string `json:"endpoint"`
	}
	type pageInfo struct {
		Name  string    `json:"name"`
		Title string    `json:"title"`
		Rows  []rowInfo `json:"rows"`
	}

	pages := catalog.Pages()
	out := make([]pageInfo, 0, len(pages))
	for _, p := range pages {
		info := pageInfo{Name: p.Name, Title: tr.T(p.TitleKey)}
		for _, r := range p.Rows {
			info.Rows = append(info.Rows, rowInfo{Key: r.Key, Title: tr.T(r.TitleKey), Endpoint: r.Endpoint.String()})
		}
		out = append(out, info)
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: out,
	})
}

// GetPage fetches every row of a page independently
// GET /api/v1/pages/:page
func (h *PageHandler) GetPage(c *gin.Context) {
	page, ok := catalog.PageByName(c.Param("page"))
	if !ok {
		c.JSON(http.StatusNotFound, model.APIResponse{
			Code:  404,
			Error: "unknown page",
		})
		return
	}

	lang := c.GetString(LangKey)
	tr := h.bundle.For(lang)

	log.Info().Str("page", page.Name).Str("lang", tr.Lang()).Msg("🎬 Loading page rows")

	// 每一行独立请求，互不影响
	rows := make([]model.RowView, len(page.Rows))
	var wg sync.WaitGroup
	for i, row := range page.Rows {
		wg.Add(1)
		go func(idx int, row catalog.Row) {
			defer wg.Done()
			rows[idx] = h.loadRow(c.Request.Context(), row.Key, tr.T(row.TitleKey), row.Endpoint, tr)
		}(i, row)
	}
	wg.Wait()

	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: model.PageView{
			Name:     page.Name,
			Title:    tr.T(page.TitleKey),
			Language: tr.Lang(),
			Rows:     rows,
		},
	})
}

// GetRow fetches one row for an arbitrary list endpoint
// GET /api/v1/row?endpoint=trending/tv/week
func (h *PageHandler) GetRow(c *gin.Context) {
	ep, err := catalog.Parse(c.Query("endpoint"))
	if err == nil && ep.Kind() != catalog.KindList {
		err = catalog.ErrInvalidEndpoint
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:  400,
			Error: err.Error(),
		})
		return
	}

	tr := h.bundle.For(c.GetString(LangKey))
	view := h.loadRow(c.Request.Context(), ep.String(), ep.String(), ep, tr)

	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: view,
	})
}

// loadRow runs one fetch through a tracker and renders the committed state.
func (h *PageHandler) loadRow(parent context.Context, key, title string, ep catalog.Endpoint, tr i18n.Localizer) model.RowView {
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	tracker := display.NewTracker()
	ticket, fetchCtx := tracker.Begin(ctx)
	items, err := h.source.Fetch(fetchCtx, ep, tr.Lang())
	tracker.Commit(ticket, display.FromResult(items, err))
	state := tracker.State()

	if err != nil {
		event := log.Warn()
		if errors.Is(err, context.Canceled) {
			event = log.Debug()
		}
		event.Err(err).Str("endpoint", ep.String()).Msg("Row fetch failed")
	}

	if h.recorder != nil {
		if rerr := h.recorder.RecordRowOutcome(ctx, ep.String(), state.Kind.String()); rerr != nil {
			log.Debug().Err(rerr).Msg("Failed to record row outcome")
		}
	}

	return rowView(key, title, ep, state, tr)
}

func rowView(key, title string, ep catalog.Endpoint, s display.State, tr i18n.Localizer) model.RowView {
	view := model.RowView{
		Key:      key,
		Title:    title,
		Endpoint: ep.String(),
		State:    s.Kind.String(),
	}
	switch s.Kind {
	case display.Error:
		view.Message = s.Message
	case display.Empty:
		view.Message = tr.T("row.empty")
	case display.Loading:
		view.Message = tr.T("state.loading")
	case display.Ready:
		view.Items = s.Items
	}
	return view
}
