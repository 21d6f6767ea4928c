// Package tui provides the terminal catalog browser.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/display"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"
)

// Source is the data-source adapter rows and overviews are fetched through.
type Source interface {
	Fetch(ctx context.Context, ep catalog.Endpoint, lang string) ([]model.CatalogItem, error)
	Detail(ctx context.Context, ep catalog.Endpoint, lang string) (model.CatalogItem, error)
}

// ClientKey is the preference key of the local user.
const ClientKey = "local"

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxItems = 5
)

// overviewPanel is the open overview block. Its tracker outlives the panel so
// that a reopened overview never accepts an answer for an earlier title.
type overviewPanel struct {
	open  bool
	title string
	ep    catalog.Endpoint
}

// Model is the main TUI model. Update is the only writer of the trackers.
type Model struct {
	// Dependencies
	source   Source
	detector *i18n.Detector
	ctx      context.Context

	pages []catalog.Page
	// trackers[page][row]; kept for every page so switching back supersedes
	// answers that were still in flight when the page was left.
	trackers [][]*display.Tracker
	page     int
	focus    int

	overview        overviewPanel
	overviewTracker *display.Tracker

	lang string
	tr   i18n.Localizer

	styles   display.Styles
	spinner  spinner.Model
	timeout  time.Duration
	maxItems int

	status string
	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithTimeout sets the per-fetch deadline.
func WithTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithStyles replaces the default lipgloss styles.
func WithStyles(s display.Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithContext sets the parent context of every fetch.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithMaxItems limits the items shown per row.
func WithMaxItems(n int) Option {
	return func(m *Model) { m.maxItems = n }
}

// New creates a Model showing the first page in lang.
func New(source Source, detector *i18n.Detector, lang string, opts ...Option) Model {
	pages := catalog.Pages()
	trackers := make([][]*display.Tracker, len(pages))
	for i, p := range pages {
		trackers[i] = make([]*display.Tracker, len(p.Rows))
		for j := range p.Rows {
			trackers[i][j] = display.NewTracker()
		}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		source:          source,
		detector:        detector,
		ctx:             context.Background(),
		pages:           pages,
		trackers:        trackers,
		overviewTracker: display.NewTracker(),
		styles:          display.DefaultStyles(),
		spinner:         sp,
		timeout:         defaultTimeout,
		maxItems:        defaultMaxItems,
	}
	m.setLanguage(lang)

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner and loads every row of the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPage())
}

func (m *Model) setLanguage(lang string) {
	bundle := m.detector.Bundle()
	m.tr = bundle.For(lang)
	m.lang = m.tr.Lang()
}

// loadPage begins a fetch for every row of the current page.
func (m *Model) loadPage() tea.Cmd {
	rows := m.pages[m.page].Rows
	cmds := make([]tea.Cmd, 0, len(rows))
	for i := range rows {
		cmds = append(cmds, m.loadRow(i))
	}
	return tea.Batch(cmds...)
}

// loadRow begins a fetch for one row of the current page. Any earlier
// request of that row is canceled and its answer will be ignored.
func (m *Model) loadRow(row int) tea.Cmd {
	ticket, ctx := m.trackers[m.page][row].Begin(m.ctx)
	ep := m.pages[m.page].Rows[row].Endpoint
	return fetchRow(ctx, m.source, m.timeout, m.page, row, ticket, ep, m.lang)
}

// leavePage drops interest in every row of the current page.
func (m *Model) leavePage() {
	for _, t := range m.trackers[m.page] {
		t.Cancel()
	}
}

// openOverview shows the overview of the first item of the focused row.
func (m *Model) openOverview() tea.Cmd {
	s := m.trackers[m.page][m.focus].State()
	if s.Kind != display.Ready || len(s.Items) == 0 {
		return nil
	}
	item := s.Items[0]

	ep, err := catalog.Detail(item.MediaType, item.ID)
	m.overview = overviewPanel{open: true, title: item.Title, ep: ep}
	if err != nil {
		// 不能沿用上一个标题的状态
		ticket, _ := m.overviewTracker.Begin(m.ctx)
		m.overviewTracker.Commit(ticket, display.ErrorState(err.Error()))
		return nil
	}
	return m.loadOverview()
}

func (m *Model) loadOverview() tea.Cmd {
	ticket, ctx := m.overviewTracker.Begin(m.ctx)
	return fetchOverview(ctx, m.source, m.timeout, ticket, m.overview.ep, m.lang)
}

func (m *Model) closeOverview() {
	m.overviewTracker.Cancel()
	m.overview = overviewPanel{}
}

// RowState returns the state of a row on the current page.
func (m Model) RowState(row int) display.State {
	return m.trackers[m.page][row].State()
}

// OverviewState returns the state of the overview block.
func (m Model) OverviewState() display.State {
	return m.overviewTracker.State()
}

// Page returns the current page.
func (m Model) Page() catalog.Page { return m.pages[m.page] }

// Styles returns the styles rows and the overview are rendered with.
func (m Model) Styles() display.Styles { return m.styles }

// Language returns the active language code.
func (m Model) Language() string { return m.lang }

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, source Source, detector *i18n.Detector, lang string, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(source, detector, lang, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
