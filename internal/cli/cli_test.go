package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/config"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/model"
	"catalog-browser/internal/repository"
	"catalog-browser/internal/service"
	"catalog-browser/internal/tui"
)

type stubSource struct {
	items    []model.CatalogItem
	overview *string
	err      error
}

func (s stubSource) Fetch(context.Context, catalog.Endpoint, string) ([]model.CatalogItem, error) {
	return s.items, s.err
}

func (s stubSource) Detail(_ context.Context, ep catalog.Endpoint, _ string) (model.CatalogItem, error) {
	if s.err != nil {
		return model.CatalogItem{}, s.err
	}
	return model.CatalogItem{ID: ep.ID(), MediaType: ep.MediaType(), Title: "Fight Club", Overview: s.overview}, nil
}

func newTestApp(t *testing.T, src tui.Source, args ...string) (*App, *bytes.Buffer, repository.Store) {
	t.Helper()
	t.Cleanup(func() { i18n.SetDefault(nil) })

	cfg, err := config.LoadFrom(func(string) string { return "" })
	if err != nil {
		t.Fatal(err)
	}
	store := repository.NewMemoryStore()
	app := NewApp(cfg)
	app.source = src
	app.store = store

	var out bytes.Buffer
	app.SetOutput(&out)
	app.SetArgs(append(args, "--no-color"))
	return app, &out, store
}

func TestRowCommand(t *testing.T) {
	rating := 8.4
	app, out, _ := newTestApp(t, stubSource{items: []model.CatalogItem{
		{ID: 1, MediaType: model.MediaMovie, Title: "Alpha", Rating: &rating},
		{ID: 2, MediaType: model.MediaMovie, Title: "Beta"},
	}}, "row", "movie/popular", "--lang", "en")

	if err := app.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	for _, want := range []string{"movie/popular", "• Alpha ★ 8.4", "• Beta"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRowCommandEmpty(t *testing.T) {
	app, out, _ := newTestApp(t, stubSource{}, "row", "tv/popular", "--lang", "en")
	if err := app.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Nothing available right now.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRowCommandErrors(t *testing.T) {
	remote := &service.RemoteError{Status: 401, Message: "Invalid API key: You must be granted a valid key."}

	tests := []struct {
		name string
		src  stubSource
		args []string
		want error
	}{
		{"invalid endpoint", stubSource{}, []string{"row", "movie/bogus"}, catalog.ErrInvalidEndpoint},
		{"detail endpoint", stubSource{}, []string{"row", "movie/550"}, catalog.ErrInvalidEndpoint},
		{"remote error", stubSource{err: remote}, []string{"row", "movie/popular", "--lang", "en"}, remote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out, _ := newTestApp(t, tt.src, tt.args...)
			err := app.Execute()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want == remote && !strings.Contains(out.String(), remote.Message) {
				t.Fatalf("error message should be shown verbatim:\n%s", out.String())
			}
		})
	}
}

func TestOverviewCommand(t *testing.T) {
	text := "An insomniac office worker crosses paths with a soap maker."

	tests := []struct {
		name string
		src  stubSource
		args []string
		want string
	}{
		{"ready", stubSource{overview: &text}, []string{"overview", "movie", "550", "--lang", "en"}, text},
		{"empty", stubSource{}, []string{"overview", "movie", "550", "--lang", "en"}, "No synopsis available for this movie."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out, _ := newTestApp(t, tt.src, tt.args...)
			if err := app.Execute(); err != nil {
				t.Fatalf("execute: %v", err)
			}
			got := out.String()
			if !strings.Contains(got, "Overview") || !strings.Contains(got, tt.want) || !strings.Contains(got, "Fight Club") {
				t.Fatalf("output = %q", got)
			}
		})
	}
}

func TestOverviewCommandBadArgs(t *testing.T) {
	for _, args := range [][]string{
		{"overview", "anime", "1"},
		{"overview", "movie", "abc"},
		{"overview", "movie", "0"},
	} {
		app, _, _ := newTestApp(t, stubSource{}, args...)
		if err := app.Execute(); !errors.Is(err, catalog.ErrInvalidEndpoint) {
			t.Errorf("%v: err = %v", args, err)
		}
	}
}

func TestLanguagesCommand(t *testing.T) {
	app, out, _ := newTestApp(t, stubSource{}, "languages", "--lang", "es")
	if err := app.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "* es") || !strings.Contains(got, "en  English (default)") {
		t.Fatalf("output = %q", got)
	}
}

func TestLanguagesSet(t *testing.T) {
	app, _, store := newTestApp(t, stubSource{}, "languages", "--set", "fr_FR.UTF-8")
	if err := app.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, err := store.Get(context.Background(), "lang:"+tui.ClientKey); err != nil || got != "fr" {
		t.Fatalf("stored = %q, %v", got, err)
	}

	app, _, _ = newTestApp(t, stubSource{}, "languages", "--set", "ja")
	if err := app.Execute(); !errors.Is(err, i18n.ErrUnsupportedLanguage) {
		t.Fatalf("err = %v", err)
	}
}

func TestUnsupportedLangFlag(t *testing.T) {
	app, _, _ := newTestApp(t, stubSource{}, "row", "movie/popular", "--lang", "ja")
	if err := app.Execute(); !errors.Is(err, i18n.ErrUnsupportedLanguage) {
		t.Fatalf("err = %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	app, out, _ := newTestApp(t, stubSource{}, "version")
	if err := app.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "browse dev") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestNoColorReachesBrowser(t *testing.T) {
	det := i18n.NewDetector(i18n.Default(), repository.NewMemoryStore())

	tests := []struct {
		noColor  bool
		wantBold bool
	}{
		{noColor: false, wantBold: true},
		{noColor: true, wantBold: false},
	}
	for _, tt := range tests {
		cfg, err := config.LoadFrom(func(string) string { return "" })
		if err != nil {
			t.Fatal(err)
		}
		app := NewApp(cfg)
		app.noColor = tt.noColor

		m := tui.New(stubSource{}, det, "en", app.tuiOptions()...)
		if got := m.Styles().Heading.GetBold(); got != tt.wantBold {
			t.Errorf("noColor=%v: heading bold = %v, want %v", tt.noColor, got, tt.wantBold)
		}
	}
}

func TestRowHelpListsEndpoints(t *testing.T) {
	app, out, _ := newTestApp(t, stubSource{}, "row", "--help")
	if err := app.Execute(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, path := range catalog.ListPaths() {
		if !strings.Contains(got, "  "+path+"\n") {
			t.Errorf("help missing %q:\n%s", path, got)
		}
	}
}
