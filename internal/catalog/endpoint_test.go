package catalog

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in        string
		wantPath  string
		wantKind  Kind
		wantMedia string
		wantID    int
		wantErr   bool
	}{
		{in: "trending/tv/week", wantPath: "trending/tv/week", wantKind: KindList, wantMedia: "tv"},
		{in: " /movie/popular/ ", wantPath: "movie/popular", wantKind: KindList, wantMedia: "movie"},
		{in: "trending/all/day", wantPath: "trending/all/day", wantKind: KindList, wantMedia: ""},
		{in: "movie/550", wantPath: "movie/550", wantKind: KindDetail, wantMedia: "movie", wantID: 550},
		{in: "tv/1399", wantPath: "tv/1399", wantKind: KindDetail, wantMedia: "tv", wantID: 1399},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "trending/books/week", wantErr: true},
		{in: "movie/0", wantErr: true},
		{in: "movie/-3", wantErr: true},
		{in: "person/287", wantErr: true},
		{in: "movie/550/credits", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ep, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEndpoint) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidEndpoint", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if ep.String() != tt.wantPath || ep.Kind() != tt.wantKind || ep.MediaType() != tt.wantMedia || ep.ID() != tt.wantID {
				t.Fatalf("Parse(%q) = {%s %d %s %d}", tt.in, ep.String(), ep.Kind(), ep.MediaType(), ep.ID())
			}
		})
	}
}

func TestPagesUseListEndpoints(t *testing.T) {
	t.Parallel()

	for _, p := range Pages() {
		if len(p.Rows) == 0 {
			t.Errorf("page %s has no rows", p.Name)
		}
		seen := map[string]bool{}
		for _, r := range p.Rows {
			if r.Endpoint.Kind() != KindList {
				t.Errorf("page %s row %s bound to non-list endpoint %s", p.Name, r.Key, r.Endpoint)
			}
			if seen[r.Key] {
				t.Errorf("page %s has duplicate row key %s", p.Name, r.Key)
			}
			seen[r.Key] = true
		}
	}

	if _, ok := PageByName("home"); !ok {
		t.Fatal("home page missing")
	}
	if _, ok := PageByName("nope"); ok {
		t.Fatal("unexpected page")
	}
}
