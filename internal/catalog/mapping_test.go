package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mollywood/stremio-catalog/internal/tmdb"
)

func TestMapMovieFullRecord(t *testing.T) {
	item := MapMovie(tmdb.Movie{
		ID:               1010581,
		Title:            "Manjummel Boys",
		OriginalLanguage: "ml",
		Overview:         "A group of friends get caught in the Guna Caves.",
		PosterPath:       "/poster.jpg",
		BackdropPath:     "/backdrop.jpg",
		ReleaseDate:      "2024-02-22",
		GenreIDs:         []int{53, 18},
		VoteAverage:      7.54,
		VoteCount:        215,
		Runtime:          135,
	})
	require.NotNil(t, item)

	require.Equal(t, "tmdb:1010581", item.ID)
	require.Equal(t, "movie", item.Type)
	require.Equal(t, "Manjummel Boys", item.Name)
	require.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", item.Poster)
	require.Equal(t, "https://image.tmdb.org/t/p/w1280/backdrop.jpg", item.Background)
	require.Equal(t, []string{"Thriller", "Drama"}, item.Genres)
	require.Equal(t, "2024", item.ReleaseInfo)
	require.Equal(t, "7.5", item.IMDbRating)
	require.Equal(t, "A group of friends get caught in the Guna Caves.", item.Description)
	require.Equal(t, "135 min", item.Runtime)
}

func TestMapMovieSparseRecord(t *testing.T) {
	item := MapMovie(tmdb.Movie{
		ID:               42,
		OriginalTitle:    "Pariyeram",
		OriginalLanguage: "ml",
	})
	require.NotNil(t, item)

	require.Equal(t, "tmdb:42", item.ID)
	require.Equal(t, "Pariyeram", item.Name, "original title stands in for a missing title")
	require.Empty(t, item.Poster)
	require.Empty(t, item.Background)
	require.Nil(t, item.Genres)
	require.Empty(t, item.ReleaseInfo)
	require.Empty(t, item.IMDbRating)
	require.Empty(t, item.Runtime)
	require.Equal(t, "No description available", item.Description)
}

func TestMapMovieRejects(t *testing.T) {
	tests := []struct {
		name  string
		movie tmdb.Movie
	}{
		{"missing id", tmdb.Movie{Title: "Untracked", OriginalLanguage: "ml"}},
		{"missing titles", tmdb.Movie{ID: 7, OriginalLanguage: "ml"}},
		{"wrong language", tmdb.Movie{ID: 8, Title: "Jawan", OriginalLanguage: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Nil(t, MapMovie(tt.movie))
		})
	}
}

func TestMapMoviesDropsUnmappable(t *testing.T) {
	metas := MapMovies([]tmdb.Movie{
		{ID: 1, Title: "Keeper", OriginalLanguage: "ml"},
		{Title: "No ID", OriginalLanguage: "ml"},
		{ID: 3, Title: "Wrong Language", OriginalLanguage: "ta"},
		{ID: 4, Title: "Another Keeper", OriginalLanguage: "ml"},
	})

	require.Len(t, metas, 2)
	require.Equal(t, "tmdb:1", metas[0].ID)
	require.Equal(t, "tmdb:4", metas[1].ID)
}
