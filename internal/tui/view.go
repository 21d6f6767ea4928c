package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"catalog-browser/internal/display"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	focusBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
)

// View renders the model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	page := m.pages[m.page]
	for i, row := range page.Rows {
		block := display.RenderRow(m.tr.T(row.TitleKey), m.RowState(i), m.styles, m.tr, m.spinner.View(), m.maxItems)
		b.WriteString(indent(block, i == m.focus))
		b.WriteString("\n\n")
	}

	if m.overview.open {
		body := display.RenderOverview(m.OverviewState(), m.styles, m.tr, m.spinner.View())
		if m.overview.title != "" {
			body = m.styles.Item.Render(m.overview.title) + "\n" + body
		}
		style := panelStyle
		if m.width > 4 {
			style = style.Width(m.width - 4)
		}
		b.WriteString(style.Render(body))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(m.tr.T("nav.help")))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.pages))
	for i, p := range m.pages {
		style := tabStyle
		if i == m.page {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(m.tr.T(p.TitleKey)))
	}
	lang := footerStyle.Render(" [" + m.tr.T("language.name") + "]")
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, lang)...)
}

// indent prefixes every line of block with a focus bar or blank gutter.
func indent(block string, focused bool) string {
	prefix := "  "
	if focused {
		prefix = focusBarStyle.Render("▌") + " "
	}
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
