// Package catalog names the TMDB resources the browser can query.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"catalog-browser/internal/model"
)

// ErrInvalidEndpoint is returned for empty or unrecognized endpoint descriptors.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// Kind distinguishes list endpoints from single-title detail endpoints.
type Kind int

const (
	KindList Kind = iota
	KindDetail
)

// Endpoint is an immutable, parsed endpoint descriptor.
type Endpoint struct {
	path      string
	kind      Kind
	mediaType string
	id        int
}

// listEndpoints maps each recognized list path to the media type of its items.
// trending/all mixes both; items carry their own media_type there.
var listEndpoints = map[string]string{
	"trending/all/day":    "",
	"trending/all/week":   "",
	"trending/movie/day":  model.MediaMovie,
	"trending/movie/week": model.MediaMovie,
	"trending/tv/day":     model.MediaTV,
	"trending/tv/week":    model.MediaTV,
	"movie/popular":       model.MediaMovie,
	"movie/top_rated":     model.MediaMovie,
	"movie/now_playing":   model.MediaMovie,
	"movie/upcoming":      model.MediaMovie,
	"tv/popular":          model.MediaTV,
	"tv/top_rated":        model.MediaTV,
	"tv/on_the_air":       model.MediaTV,
	"tv/airing_today":     model.MediaTV,
}

// Parse validates s and returns the matching descriptor.
func Parse(s string) (Endpoint, error) {
	path := strings.Trim(strings.TrimSpace(s), "/")
	if path == "" {
		return Endpoint{}, fmt.Errorf("%w: empty descriptor", ErrInvalidEndpoint)
	}

	if mediaType, ok := listEndpoints[path]; ok {
		return Endpoint{path: path, kind: KindList, mediaType: mediaType}, nil
	}

	parts := strings.Split(path, "/")
	if len(parts) == 2 && (parts[0] == model.MediaMovie || parts[0] == model.MediaTV) {
		id, err := strconv.Atoi(parts[1])
		if err == nil && id > 0 {
			return Endpoint{path: path, kind: KindDetail, mediaType: parts[0], id: id}, nil
		}
	}

	return Endpoint{}, fmt.Errorf("%w: %q", ErrInvalidEndpoint, s)
}

// MustParse is Parse for package-level tables; it panics on bad input.
func MustParse(s string) Endpoint {
	ep, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ep
}

// Detail returns the detail endpoint for a title.
func Detail(mediaType string, id int) (Endpoint, error) {
	return Parse(mediaType + "/" + strconv.Itoa(id))
}

// ListPaths returns every recognized list path, sorted.
func ListPaths() []string {
	paths := make([]string, 0, len(listEndpoints))
	for p := range listEndpoints {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (e Endpoint) String() string    { return e.path }
func (e Endpoint) Kind() Kind        { return e.kind }
func (e Endpoint) MediaType() string { return e.mediaType }
func (e Endpoint) ID() int           { return e.id }

// IsZero reports whether e was never parsed.
func (e Endpoint) IsZero() bool { return e.path == "" }
