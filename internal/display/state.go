// Package display resolves catalog data into exactly one of four visual
// states (loading, error, empty, ready) and renders them.
package display

import (
	"strings"

	"catalog-browser/internal/model"
)

// Kind is the variant tag of a State.
type Kind int

const (
	Loading Kind = iota
	Error
	Empty
	Ready
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// State is a tagged variant: only the fields belonging to Kind are set.
// Message is set for Error, Items for a ready row, Text for a ready overview.
type State struct {
	Kind    Kind
	Message string
	Items   []model.CatalogItem
	Text    string
}

func LoadingState() State         { return State{Kind: Loading} }
func ErrorState(msg string) State { return State{Kind: Error, Message: msg} }
func EmptyState() State           { return State{Kind: Empty} }
func TextState(text string) State { return State{Kind: Ready, Text: text} }

func RowState(items []model.CatalogItem) State {
	return State{Kind: Ready, Items: items}
}

// ResolveRow picks the state of a catalog row.
// Precedence: loading, then error, then empty, then ready.
func ResolveRow(isLoading bool, errMsg *string, items []model.CatalogItem) State {
	switch {
	case isLoading:
		return LoadingState()
	case errMsg != nil:
		return ErrorState(*errMsg)
	case len(items) == 0:
		return EmptyState()
	default:
		return RowState(items)
	}
}

// ResolveOverview picks the state of an overview block. A nil or blank
// overview is empty, never a blank region.
func ResolveOverview(isLoading bool, errMsg *string, overview *string) State {
	switch {
	case isLoading:
		return LoadingState()
	case errMsg != nil:
		return ErrorState(*errMsg)
	case overview == nil || strings.TrimSpace(*overview) == "":
		return EmptyState()
	default:
		return TextState(*overview)
	}
}

// FromResult resolves the outcome of a completed row fetch.
func FromResult(items []model.CatalogItem, err error) State {
	if err != nil {
		msg := err.Error()
		return ResolveRow(false, &msg, nil)
	}
	return ResolveRow(false, nil, items)
}

// FromDetail resolves the outcome of a completed overview fetch.
func FromDetail(item model.CatalogItem, err error) State {
	if err != nil {
		msg := err.Error()
		return ResolveOverview(false, &msg, nil)
	}
	return ResolveOverview(false, nil, item.Overview)
}
