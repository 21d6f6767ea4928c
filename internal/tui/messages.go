package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/display"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"
)

// rowLoadedMsg carries the outcome of one row fetch back to the Update loop.
type rowLoadedMsg struct {
	page   int
	row    int
	ticket display.Ticket
	items  []model.CatalogItem
	err    error
}

// overviewLoadedMsg carries the outcome of one overview fetch.
type overviewLoadedMsg struct {
	ticket display.Ticket
	item   model.CatalogItem
	err    error
}

// languageSavedMsg reports whether a language change was persisted.
type languageSavedMsg struct {
	lang string
	err  error
}

func fetchRow(ctx context.Context, src Source, timeout time.Duration, page, row int, ticket display.Ticket, ep catalog.Endpoint, lang string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		items, err := src.Fetch(ctx, ep, lang)
		return rowLoadedMsg{page: page, row: row, ticket: ticket, items: items, err: err}
	}
}

func fetchOverview(ctx context.Context, src Source, timeout time.Duration, ticket display.Ticket, ep catalog.Endpoint, lang string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		item, err := src.Detail(ctx, ep, lang)
		return overviewLoadedMsg{ticket: ticket, item: item, err: err}
	}
}

func saveLanguage(d *i18n.Detector, clientKey, lang string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		saved, err := d.Change(ctx, clientKey, lang)
		return languageSavedMsg{lang: saved, err: err}
	}
}
