package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"catalog-browser/internal/model"
)

// Translator looks up display strings for the active language.
type Translator interface {
	T(key string) string
}

// Styles holds lipgloss styles for each visual state.
type Styles struct {
	Heading  lipgloss.Style
	Skeleton lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
	Item     lipgloss.Style
	Rating   lipgloss.Style
}

// DefaultStyles returns the styles used by the terminal browser.
func DefaultStyles() Styles {
	return Styles{
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Skeleton: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Empty:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Item:     lipgloss.NewStyle(),
		Rating:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

// PlainStyles returns unstyled output, used by tests and non-TTY output.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Heading: s, Skeleton: s, Empty: s, Error: s, Item: s, Rating: s}
}

// skeletonSlots is how many placeholder cards the loading skeleton shows.
const skeletonSlots = 5

// RenderRow renders one catalog row. spinner is shown next to the skeleton
// and may be empty.
func RenderRow(title string, s State, st Styles, tr Translator, spinner string, maxItems int) string {
	var b strings.Builder
	b.WriteString(st.Heading.Render(title))
	b.WriteString("\n")

	switch s.Kind {
	case Loading:
		cards := make([]string, skeletonSlots)
		for i := range cards {
			cards[i] = "░░░░░░░░"
		}
		line := strings.Join(cards, " ")
		if spinner != "" {
			line = spinner + " " + line
		}
		b.WriteString(st.Skeleton.Render(line))
	case Error:
		b.WriteString(st.Error.Render(fmt.Sprintf("%s: %s", tr.T("state.error"), s.Message)))
	case Empty:
		b.WriteString(st.Empty.Render(tr.T("row.empty")))
	case Ready:
		items := s.Items
		if maxItems > 0 && len(items) > maxItems {
			items = items[:maxItems]
		}
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, renderItem(item, st))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String()
}

func renderItem(item model.CatalogItem, st Styles) string {
	line := st.Item.Render("• " + item.Title)
	if item.Rating != nil {
		line += " " + st.Rating.Render(fmt.Sprintf("★ %.1f", *item.Rating))
	}
	return line
}

// RenderOverview renders the overview block of a title.
func RenderOverview(s State, st Styles, tr Translator, spinner string) string {
	var b strings.Builder
	b.WriteString(st.Heading.Render(tr.T("overview.heading")))
	b.WriteString("\n")

	switch s.Kind {
	case Loading:
		line := "░░░░░░░░░░░░░░░░░░░░░░░░"
		if spinner != "" {
			line = spinner + " " + line
		}
		b.WriteString(st.Skeleton.Render(line))
	case Error:
		b.WriteString(st.Error.Render(fmt.Sprintf("%s: %s", tr.T("state.error"), s.Message)))
	case Empty:
		b.WriteString(st.Empty.Render(tr.T("overview.empty")))
	case Ready:
		b.WriteString(s.Text)
	}
	return b.String()
}
