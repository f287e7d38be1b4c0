package stremio

// MetaPreviewItem represents a meta preview item and is meant to be used within catalog responses.
// See https://github.com/Stremio/stremio-addon-sdk/blob/master/docs/api/responses/meta.md#meta-preview-object
type MetaPreviewItem struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Poster string `json:"poster,omitempty"` // URL

	// Optional
	PosterShape string `json:"posterShape,omitempty"`

	// Optional, used for the "Discover" page sidebar
	Genres      []string `json:"genres,omitempty"`
	IMDbRating  string   `json:"imdbRating,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"` // E.g. "2000" for movies
	Background  string   `json:"background,omitempty"`  // URL
	Description string   `json:"description,omitempty"`
	Runtime     string   `json:"runtime,omitempty"`
}

// MetaItem represents a meta item and is meant to be used when info for a specific item was requested.
// See https://github.com/Stremio/stremio-addon-sdk/blob/master/docs/api/responses/meta.md
type MetaItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	// Optional
	Genres      []string `json:"genres,omitempty"`
	Poster      string   `json:"poster,omitempty"`     // URL
	Background  string   `json:"background,omitempty"` // URL
	Description string   `json:"description,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	IMDbRating  string   `json:"imdbRating,omitempty"`
	Released    string   `json:"released,omitempty"` // Must be ISO 8601, e.g. "2010-12-06T05:00:00.000Z"
	Runtime     string   `json:"runtime,omitempty"`
	Language    string   `json:"language,omitempty"`
}

// CatalogResponse is the body of a catalog endpoint response.
type CatalogResponse struct {
	Metas []MetaPreviewItem `json:"metas"`
}
