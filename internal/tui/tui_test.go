package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/display"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"
	"catalog-browser/internal/repository"
)

// countingSource returns one item per row, titled after the endpoint and the
// number of calls made so far for it.
type countingSource struct {
	mu       sync.Mutex
	calls    map[string]int
	overview *string
}

func (s *countingSource) Fetch(_ context.Context, ep catalog.Endpoint, lang string) ([]model.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[ep.String()]++
	return []model.CatalogItem{{
		ID:        s.calls[ep.String()],
		MediaType: model.MediaMovie,
		Title:     ep.String() + "#" + lang,
	}}, nil
}

func (s *countingSource) Detail(_ context.Context, ep catalog.Endpoint, _ string) (model.CatalogItem, error) {
	return model.CatalogItem{ID: ep.ID(), MediaType: ep.MediaType(), Title: "Detail", Overview: s.overview}, nil
}

func newTestModel(t *testing.T, src Source) (Model, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	det := i18n.NewDetector(i18n.Default(), store)
	return New(src, det, "en", WithStyles(display.PlainStyles())), store
}

// drain runs cmd and every command batched inside it, collecting messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func apply(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func press(m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(key)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRowsStartLoading(t *testing.T) {
	m, _ := newTestModel(t, &countingSource{})
	for i := range m.Page().Rows {
		if got := m.RowState(i).Kind; got != display.Loading {
			t.Fatalf("row %d kind = %s, want loading", i, got)
		}
	}
	if !strings.Contains(m.View(), "░░░░░░░░") {
		t.Fatal("loading rows should render a skeleton")
	}
}

func TestStaleRowResultIsDiscarded(t *testing.T) {
	m, _ := newTestModel(t, &countingSource{})

	first := m.loadRow(0)
	second := m.loadRow(0)
	stale := drain(first)
	fresh := drain(second)

	m = apply(m, stale...)
	if got := m.RowState(0).Kind; got != display.Loading {
		t.Fatalf("stale result committed: kind = %s", got)
	}

	m = apply(m, fresh...)
	s := m.RowState(0)
	if s.Kind != display.Ready || s.Items[0].ID != 2 {
		t.Fatalf("state = %+v, want second response", s)
	}

	// an answer that arrives after a newer one must not overwrite it
	m = apply(m, stale...)
	if got := m.RowState(0).Items[0].ID; got != 2 {
		t.Fatalf("late stale result overwrote state: id = %d", got)
	}
}

func TestSwitchPageIgnoresOldRows(t *testing.T) {
	m, _ := newTestModel(t, &countingSource{})
	homeMsgs := drain(m.loadPage())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Page().Name != "movies" {
		t.Fatalf("page = %s", m.Page().Name)
	}
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Page().Name != "home" {
		t.Fatalf("page = %s", m.Page().Name)
	}

	m = apply(m, homeMsgs...)
	for i := range m.Page().Rows {
		if got := m.RowState(i).Kind; got != display.Loading {
			t.Fatalf("row %d accepted a result from before the page switch: %s", i, got)
		}
	}

	m = apply(m, drain(cmd)...)
	for i := range m.Page().Rows {
		if got := m.RowState(i).Kind; got != display.Ready {
			t.Fatalf("row %d kind = %s, want ready", i, got)
		}
	}
}

func TestRowsResolveIndependently(t *testing.T) {
	m, _ := newTestModel(t, &countingSource{})
	msgs := drain(m.loadPage())

	m = apply(m, msgs[1])
	if m.RowState(1).Kind != display.Ready {
		t.Fatal("row 1 should be ready")
	}
	for _, i := range []int{0, 2, 3} {
		if m.RowState(i).Kind != display.Loading {
			t.Fatalf("row %d should still be loading", i)
		}
	}
}

func TestRefreshRow(t *testing.T) {
	src := &countingSource{}
	m, _ := newTestModel(t, src)
	m = apply(m, drain(m.loadPage())...)

	m, cmd := press(m, runes("r"))
	if m.RowState(0).Kind != display.Loading {
		t.Fatal("refresh should put the focused row back into loading")
	}
	m = apply(m, drain(cmd)...)
	if got := m.RowState(0).Items[0].ID; got != 2 {
		t.Fatalf("id = %d, want 2", got)
	}
	if m.RowState(1).Items[0].ID != 1 {
		t.Fatal("other rows should not be refetched")
	}
}

func TestLanguageCyclePersistsAndReloads(t *testing.T) {
	m, store := newTestModel(t, &countingSource{})
	m = apply(m, drain(m.loadPage())...)

	want := m.detector.Next("en")
	m, cmd := press(m, runes("l"))
	if m.Language() != want {
		t.Fatalf("language = %s, want %s", m.Language(), want)
	}
	m = apply(m, drain(cmd)...)

	stored, err := store.Get(context.Background(), "lang:"+ClientKey)
	if err != nil || stored != want {
		t.Fatalf("stored = %q, %v", stored, err)
	}
	if got := m.RowState(0).Items[0].Title; !strings.HasSuffix(got, "#"+want) {
		t.Fatalf("row not reloaded in %s: %q", want, got)
	}
}

func TestOverviewOpenAndClose(t *testing.T) {
	m, _ := newTestModel(t, &countingSource{})

	// nothing to open while the row is loading
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.overview.open {
		t.Fatal("overview should not open for a loading row")
	}

	m = apply(m, drain(m.loadPage())...)
	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.overview.open || m.OverviewState().Kind != display.Loading {
		t.Fatal("overview should open in loading state")
	}
	m = apply(m, drain(cmd)...)
	if m.OverviewState().Kind != display.Empty {
		t.Fatalf("kind = %s, want empty", m.OverviewState().Kind)
	}
	if view := m.View(); !strings.Contains(view, "No synopsis available for this movie.") || !strings.Contains(view, "Overview") {
		t.Fatalf("view missing empty overview:\n%s", view)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.overview.open {
		t.Fatal("esc should close the overview")
	}
	if strings.Contains(m.View(), "No synopsis available") {
		t.Fatal("closed overview still rendered")
	}
}

func TestOverviewStaleAfterReopen(t *testing.T) {
	text := "A synopsis."
	m, _ := newTestModel(t, &countingSource{overview: &text})
	m = apply(m, drain(m.loadPage())...)

	m, first := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	m, second := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = apply(m, drain(first)...)
	if m.OverviewState().Kind != display.Loading {
		t.Fatal("answer for a closed overview was committed")
	}
	m = apply(m, drain(second)...)
	if s := m.OverviewState(); s.Kind != display.Ready || s.Text != text {
		t.Fatalf("state = %+v", s)
	}
}

func TestOverviewOfUnknownMediaTypeShowsError(t *testing.T) {
	text := "A synopsis."
	m, _ := newTestModel(t, &countingSource{overview: &text})
	m = apply(m, drain(m.loadPage())...)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = apply(m, drain(cmd)...)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if s := m.OverviewState(); s.Kind != display.Ready || s.Text != text {
		t.Fatalf("state = %+v", s)
	}

	ticket, _ := m.trackers[m.page][0].Begin(context.Background())
	m = apply(m, rowLoadedMsg{page: m.page, row: 0, ticket: ticket, items: []model.CatalogItem{
		{ID: 7, MediaType: "person", Title: "Someone"},
	}})

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("no fetch expected for an item without a detail endpoint")
	}
	if !m.overview.open || m.overview.title != "Someone" {
		t.Fatalf("overview = %+v", m.overview)
	}
	if s := m.OverviewState(); s.Kind != display.Error {
		t.Fatalf("kind = %s, want error", s.Kind)
	}
	if strings.Contains(m.View(), text) {
		t.Fatal("synopsis of the previous title is still shown")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, &countingSource{})
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
