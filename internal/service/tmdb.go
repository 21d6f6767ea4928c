package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/model"
	"catalog-browser/pkg/httpclient"

	"github.com/rs/zerolog/log"
)

// TMDBService handles TMDB API interactions with key rotation.
// It performs exactly one request per call: no retries, no caching.
type TMDBService struct {
	apiKeys   []string
	baseURL   string
	imageBase string
	client    *httpclient.Client
	keyIndex  uint64 // 原子计数器，用于轮询
}

// NewTMDBService creates a new TMDBService with multiple API keys
func NewTMDBService(client *httpclient.Client, apiKeys []string, baseURL, imageBase string) *TMDBService {
	if len(apiKeys) > 0 {
		log.Info().Int("count", len(apiKeys)).Msg("🔑 TMDB API Keys 已配置，启用轮询模式")
	}
	return &TMDBService{
		apiKeys:   apiKeys,
		baseURL:   strings.TrimRight(baseURL, "/"),
		imageBase: strings.TrimRight(imageBase, "/"),
		client:    client,
	}
}

// getNextKey returns the next API key using round-robin
func (s *TMDBService) getNextKey() string {
	if len(s.apiKeys) == 0 {
		return ""
	}
	idx := atomic.AddUint64(&s.keyIndex, 1) - 1
	return s.apiKeys[idx%uint64(len(s.apiKeys))]
}

// tmdbResult covers both movie (title) and TV (name) payloads.
type tmdbResult struct {
	ID          int      `json:"id"`
	MediaType   string   `json:"media_type"`
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   int      `json:"vote_count"`
}

type tmdbListResponse struct {
	Results *[]tmdbResult `json:"results"`
}

type tmdbErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Fetch queries a list endpoint and returns its items in API order.
func (s *TMDBService) Fetch(ctx context.Context, ep catalog.Endpoint, lang string) ([]model.CatalogItem, error) {
	if ep.IsZero() || ep.Kind() != catalog.KindList {
		return nil, fmt.Errorf("%w: %q is not a list endpoint", ErrInvalidEndpoint, ep.String())
	}

	body, err := s.get(ctx, ep, lang)
	if err != nil {
		return nil, err
	}

	var payload tmdbListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Endpoint: ep.String(), Err: err}
	}
	if payload.Results == nil {
		return nil, &DecodeError{Endpoint: ep.String(), Err: errors.New("missing results")}
	}

	items := make([]model.CatalogItem, 0, len(*payload.Results))
	seen := make(map[string]bool, len(*payload.Results))
	for _, r := range *payload.Results {
		item, err := s.toItem(r, ep.MediaType())
		if err != nil {
			return nil, &DecodeError{Endpoint: ep.String(), Err: err}
		}
		// trending/all 还会返回 person 条目
		if item.MediaType != model.MediaMovie && item.MediaType != model.MediaTV {
			log.Debug().Str("endpoint", ep.String()).Int("id", item.ID).Str("media_type", item.MediaType).Msg("TMDB: non-title item skipped")
			continue
		}
		// trending/all 中 movie 与 tv 的 ID 可能重复
		key := item.MediaType + ":" + fmt.Sprint(item.ID)
		if seen[key] {
			log.Debug().Str("endpoint", ep.String()).Int("id", item.ID).Msg("TMDB: duplicate item dropped")
			continue
		}
		seen[key] = true
		items = append(items, item)
	}

	log.Debug().
		Str("endpoint", ep.String()).
		Str("lang", lang).
		Int("count", len(items)).
		Msg("Fetched catalog row")

	return items, nil
}

// Detail fetches a single title, used for its overview text.
func (s *TMDBService) Detail(ctx context.Context, ep catalog.Endpoint, lang string) (model.CatalogItem, error) {
	if ep.IsZero() || ep.Kind() != catalog.KindDetail {
		return model.CatalogItem{}, fmt.Errorf("%w: %q is not a detail endpoint", ErrInvalidEndpoint, ep.String())
	}

	body, err := s.get(ctx, ep, lang)
	if err != nil {
		return model.CatalogItem{}, err
	}

	var r tmdbResult
	if err := json.Unmarshal(body, &r); err != nil {
		return model.CatalogItem{}, &DecodeError{Endpoint: ep.String(), Err: err}
	}
	item, err := s.toItem(r, ep.MediaType())
	if err != nil {
		return model.CatalogItem{}, &DecodeError{Endpoint: ep.String(), Err: err}
	}
	return item, nil
}

func (s *TMDBService) get(ctx context.Context, ep catalog.Endpoint, lang string) ([]byte, error) {
	apiKey := s.getNextKey()
	if apiKey == "" {
		return nil, &RemoteError{Status: http.StatusUnauthorized, Message: "TMDB API key not configured"}
	}

	q := url.Values{}
	header := http.Header{}
	// v4 read access tokens are JWTs; v3 keys go in the query string
	if strings.HasPrefix(apiKey, "eyJ") {
		header.Set("Authorization", "Bearer "+apiKey)
	} else {
		q.Set("api_key", apiKey)
	}
	if lang != "" {
		q.Set("language", lang)
	}

	target := s.baseURL + "/" + ep.String()
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}

	resp, err := s.client.Get(ctx, target, header)
	if err != nil {
		return nil, &RemoteError{Message: err.Error(), Err: err}
	}

	if !resp.OK() {
		msg := http.StatusText(resp.StatusCode)
		var apiErr tmdbErrorResponse
		if json.Unmarshal(resp.Body, &apiErr) == nil && apiErr.StatusMessage != "" {
			msg = apiErr.StatusMessage
		}
		log.Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", ep.String()).
			Str("message", msg).
			Msg("TMDB request rejected")
		return nil, &RemoteError{Status: resp.StatusCode, Message: msg}
	}

	return resp.Body, nil
}

func (s *TMDBService) toItem(r tmdbResult, defaultMedia string) (model.CatalogItem, error) {
	if r.ID <= 0 {
		return model.CatalogItem{}, fmt.Errorf("item without id")
	}

	mediaType := r.MediaType
	if mediaType == "" {
		mediaType = defaultMedia
	}

	title := r.Title
	if title == "" {
		title = r.Name
	}

	item := model.CatalogItem{
		ID:        r.ID,
		MediaType: mediaType,
		Title:     title,
	}
	if overview := strings.TrimSpace(r.Overview); overview != "" {
		item.Overview = &overview
	}
	if r.PosterPath != "" {
		poster := s.imageBase + r.PosterPath
		item.PosterURL = &poster
	}
	// vote_count 为 0 时评分无意义
	if r.VoteAverage != nil && r.VoteCount > 0 {
		rating := *r.VoteAverage
		item.Rating = &rating
	}
	return item, nil
}

// IsConfigured returns true if TMDB is configured
func (s *TMDBService) IsConfigured() bool {
	return len(s.apiKeys) > 0
}

// KeyCount returns the number of configured API keys
func (s *TMDBService) KeyCount() int {
	return len(s.apiKeys)
}
