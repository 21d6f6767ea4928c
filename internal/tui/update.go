package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"catalog-browser/internal/display"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case rowLoadedMsg:
		if msg.page < 0 || msg.page >= len(m.trackers) || msg.row < 0 || msg.row >= len(m.trackers[msg.page]) {
			return m, nil
		}
		if !m.trackers[msg.page][msg.row].Commit(msg.ticket, display.FromResult(msg.items, msg.err)) {
			log.Debug().Int("page", msg.page).Int("row", msg.row).Msg("Discarding stale row result")
			return m, nil
		}
		if msg.err != nil {
			log.Debug().Err(msg.err).Int("row", msg.row).Msg("Row fetch failed")
		}
		return m, nil

	case overviewLoadedMsg:
		if !m.overviewTracker.Commit(msg.ticket, display.FromDetail(msg.item, msg.err)) {
			log.Debug().Msg("Discarding stale overview result")
		}
		return m, nil

	case languageSavedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			log.Warn().Err(msg.err).Msg("Failed to save language preference")
		} else {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.leavePage()
		m.closeOverview()
		return m, tea.Quit

	case "esc":
		if m.overview.open {
			m.closeOverview()
		}
		return m, nil

	case "enter":
		return m, m.openOverview()

	case "tab":
		return m.switchPage(1)

	case "shift+tab":
		return m.switchPage(-1)

	case "down", "j":
		if m.focus < len(m.pages[m.page].Rows)-1 {
			m.focus++
		}
		return m, nil

	case "up", "k":
		if m.focus > 0 {
			m.focus--
		}
		return m, nil

	case "r":
		return m, m.loadRow(m.focus)

	case "R":
		return m, m.loadPage()

	case "l":
		next := m.detector.Next(m.lang)
		m.setLanguage(next)
		cmds := []tea.Cmd{saveLanguage(m.detector, ClientKey, next), m.loadPage()}
		if m.overview.open && !m.overview.ep.IsZero() {
			cmds = append(cmds, m.loadOverview())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// switchPage leaves the current page and loads the neighbouring one.
func (m Model) switchPage(delta int) (tea.Model, tea.Cmd) {
	m.leavePage()
	m.closeOverview()
	m.page = (m.page + delta + len(m.pages)) % len(m.pages)
	m.focus = 0
	return m, m.loadPage()
}
