package catalog

import (
	"strconv"

	"github.com/mollywood/stremio-catalog/internal/stremio"
	"github.com/mollywood/stremio-catalog/internal/tmdb"
)

const (
	posterSize     = "w500"
	backgroundSize = "w1280"
)

// MapMovie projects a raw movie record into a Stremio meta preview.
// It never fails: records without an identifier or title, or outside the
// target language, map to nil and are dropped by the caller.
func MapMovie(m tmdb.Movie) *stremio.MetaPreviewItem {
	if m.ID == 0 {
		return nil
	}
	name := m.Title
	if name == "" {
		name = m.OriginalTitle
	}
	if name == "" {
		return nil
	}
	if m.OriginalLanguage != tmdb.TargetLanguage {
		return nil
	}

	item := &stremio.MetaPreviewItem{
		ID:   "tmdb:" + strconv.Itoa(m.ID),
		Type: "movie",
		Name: name,
	}

	if m.PosterPath != "" {
		item.Poster = tmdb.ImageBaseURL + "/" + posterSize + m.PosterPath
	}
	if m.BackdropPath != "" {
		item.Background = tmdb.ImageBaseURL + "/" + backgroundSize + m.BackdropPath
	}

	item.Genres = tmdb.GenreNames(m.GenreIDs)
	if len(item.Genres) == 0 {
		item.Genres = nil
	}

	if released, ok := m.Released(); ok {
		item.ReleaseInfo = strconv.Itoa(released.Year())
	}
	if m.VoteAverage > 0 {
		item.IMDbRating = strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
	}

	item.Description = m.Overview
	if item.Description == "" {
		item.Description = "No description available"
	}

	if m.Runtime > 0 {
		item.Runtime = strconv.Itoa(m.Runtime) + " min"
	}

	return item
}

// MapMovies maps a slice of records, dropping the unmappable ones.
func MapMovies(movies []tmdb.Movie) []stremio.MetaPreviewItem {
	metas := make([]stremio.MetaPreviewItem, 0, len(movies))
	for _, m := range movies {
		if item := MapMovie(m); item != nil {
			metas = append(metas, *item)
		}
	}
	return metas
}
