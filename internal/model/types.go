package model

// ================== 通用响应 ==================

// APIResponse is the standard API response format
type APIResponse struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ================== 目录数据模型 ==================

// Media types returned by the catalog.
const (
	MediaMovie = "movie"
	MediaTV    = "tv"
)

// CatalogItem is a single movie or TV entry from the metadata API.
// Optional fields are nil when the API did not provide them.
type CatalogItem struct {
	ID        int      `json:"id"`
	MediaType string   `json:"media_type"`
	Title     string   `json:"title"`
	Overview  *string  `json:"overview"`
	PosterURL *string  `json:"poster_url"`
	Rating    *float64 `json:"rating"`
}

// RowView is the rendered state of one catalog row.
type RowView struct {
	Key      string        `json:"key"`
	Title    string        `json:"title"`
	Endpoint string        `json:"endpoint"`
	State    string        `json:"state"`
	Message  string        `json:"message,omitempty"`
	Items    []CatalogItem `json:"items,omitempty"`
}

// PageView is a page composed of independent rows.
type PageView struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Language string    `json:"language"`
	Rows     []RowView `json:"rows"`
}

// OverviewView is the rendered state of an overview block.
type OverviewView struct {
	Endpoint string `json:"endpoint"`
	Title    string `json:"title,omitempty"`
	Heading  string `json:"heading"`
	State    string `json:"state"`
	Message  string `json:"message,omitempty"`
	Text     string `json:"text,omitempty"`
}

// LanguageView describes the active display language.
type LanguageView struct {
	Language  string   `json:"language"`
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
}
