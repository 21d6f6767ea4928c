package handler

import (
	"context"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/model"
)

// CatalogSource is the data-source adapter the handlers fetch through.
type CatalogSource interface {
	Fetch(ctx context.Context, ep catalog.Endpoint, lang string) ([]model.CatalogItem, error)
	Detail(ctx context.Context, ep catalog.Endpoint, lang string) (model.CatalogItem, error)
}

// OutcomeRecorder counts resolved row states. It may be nil.
type OutcomeRecorder interface {
	RecordRowOutcome(ctx context.Context, endpoint, state string) error
}

// Context keys set by middleware.Language.
const (
	LangKey     = "lang"
	ClientIDKey = "client_id"
)
