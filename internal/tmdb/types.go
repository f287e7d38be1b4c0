package tmdb

import "time"

// Movie is a raw movie record as returned by the TMDB list endpoints.
// Runtime is only filled by the movie details endpoint, IMDbID only by
// the external IDs lookup.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"` // "2006-01-02", may be empty
	GenreIDs         []int   `json:"genre_ids"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Runtime          int     `json:"runtime,omitempty"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	IMDbID           string  `json:"imdb_id,omitempty"`
}

// Released parses the record's release date.
// The second return value is false for absent or malformed dates.
func (m Movie) Released() (time.Time, bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MovieList is a paged list response from the discover/search/trending endpoints.
type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// ExternalIDs holds cross-referencing identifiers for a movie.
type ExternalIDs struct {
	ID         int    `json:"id"`
	IMDbID     string `json:"imdb_id"`
	WikidataID string `json:"wikidata_id"`
}

// WatchProviderEntry is a single provider listing within a region.
type WatchProviderEntry struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

// RegionProviders groups the provider listings of one region by monetization kind.
type RegionProviders struct {
	Link     string               `json:"link"`
	Flatrate []WatchProviderEntry `json:"flatrate"`
	Rent     []WatchProviderEntry `json:"rent"`
	Buy      []WatchProviderEntry `json:"buy"`
}

// WatchProviderResult is the /movie/{id}/watch/providers response.
type WatchProviderResult struct {
	ID      int                        `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}
