package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/cache"
	"github.com/mollywood/stremio-catalog/internal/tmdb"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type stubStrategy struct {
	name   string
	movies []tmdb.Movie
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) FetchCandidates(_ context.Context) ([]tmdb.Movie, error) {
	s.calls++
	return s.movies, s.err
}

func newTestService(t *testing.T, opts Options, strategies ...Strategy) (*Service, *cache.Cache) {
	t.Helper()
	c := cache.New(time.Hour, zap.NewNop())
	t.Cleanup(c.Close)

	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	svc, err := NewService(nil, strategies, c, zap.NewNop(), opts)
	require.NoError(t, err)
	return svc, c
}

// movie builds an eligible record with a release date n days before the test clock.
func movie(id int, daysAgo int) tmdb.Movie {
	return tmdb.Movie{
		ID:               id,
		Title:            fmt.Sprintf("Movie %d", id),
		OriginalLanguage: "ml",
		ReleaseDate:      testNow.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
		GenreIDs:         []int{18},
		VoteAverage:      7.0,
		VoteCount:        10,
	}
}

func TestCatalogLanguagePurity(t *testing.T) {
	mixed := []tmdb.Movie{
		movie(1, 1),
		{ID: 2, Title: "Hindi Film", OriginalLanguage: "hi", ReleaseDate: "2024-01-01"},
		movie(3, 2),
		{ID: 4, Title: "Tamil Film", OriginalLanguage: "ta", ReleaseDate: "2024-01-01"},
	}
	svc, _ := newTestService(t, Options{}, &stubStrategy{name: "stub", movies: mixed})

	page, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, page.Movies, 2)
	for _, m := range page.Movies {
		require.Equal(t, "ml", m.OriginalLanguage)
	}
}

func TestCatalogDropsUnreleased(t *testing.T) {
	future := movie(2, 0)
	future.ReleaseDate = testNow.AddDate(0, 0, 7).Format("2006-01-02")
	undated := movie(3, 0)
	undated.ReleaseDate = ""

	svc, _ := newTestService(t, Options{}, &stubStrategy{name: "stub", movies: []tmdb.Movie{movie(1, 1), future, undated}})

	page, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, page.Movies, 1)
	require.Equal(t, 1, page.Movies[0].ID)
}

func TestCatalogDedupAcrossStrategies(t *testing.T) {
	a := movie(1, 1)
	// Same identifier with field noise from another source.
	noisy := movie(1, 1)
	noisy.Overview = "different synopsis"
	noisy.VoteAverage = 6.1

	svc, _ := newTestService(t, Options{},
		&stubStrategy{name: "one", movies: []tmdb.Movie{a, movie(2, 2)}},
		&stubStrategy{name: "two", movies: []tmdb.Movie{noisy, movie(3, 3)}},
	)

	page, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, page.Movies, 3)

	// First occurrence wins.
	require.Equal(t, a.Overview, page.Movies[0].Overview)
	require.Equal(t, a.VoteAverage, page.Movies[0].VoteAverage)
}

func TestCatalogDedupByIMDbID(t *testing.T) {
	a := movie(1, 1)
	a.IMDbID = "tt0001"
	b := movie(2, 2) // different TMDB ID, same film on IMDb
	b.IMDbID = "tt0001"

	svc, _ := newTestService(t, Options{}, &stubStrategy{name: "stub", movies: []tmdb.Movie{a, b}})

	page, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, page.Movies, 1)
	require.Equal(t, 1, page.Movies[0].ID)
}

func TestCatalogSortDescending(t *testing.T) {
	svc, _ := newTestService(t, Options{}, &stubStrategy{name: "stub", movies: []tmdb.Movie{
		movie(1, 30), movie(2, 1), movie(3, 365), movie(4, 7),
	}})

	page, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, page.Movies, 4)

	for i := 0; i < len(page.Movies)-1; i++ {
		a, _ := page.Movies[i].Released()
		b, _ := page.Movies[i+1].Released()
		require.False(t, a.Before(b), "page must be sorted descending by release date")
	}
	require.Equal(t, 2, page.Movies[0].ID)
	require.Equal(t, 3, page.Movies[3].ID)
}

func TestCatalogPagination(t *testing.T) {
	var movies []tmdb.Movie
	for i := 1; i <= 25; i++ {
		movies = append(movies, movie(i, i))
	}
	svc, _ := newTestService(t, Options{}, &stubStrategy{name: "stub", movies: movies})

	page1, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, page1.Movies, 20)
	require.Equal(t, 2, page1.TotalPages)
	require.Equal(t, 25, page1.TotalResults)

	page2, err := svc.Catalog(context.Background(), 2, "")
	require.NoError(t, err)
	require.Len(t, page2.Movies, 5)
	require.Equal(t, 2, page2.TotalPages)
	require.Equal(t, 25, page2.TotalResults)

	// Concatenating all pages reproduces the full set without duplicates or gaps.
	seen := make(map[int]bool)
	for _, m := range append(append([]tmdb.Movie{}, page1.Movies...), page2.Movies...) {
		require.False(t, seen[m.ID], "movie %d appeared twice", m.ID)
		seen[m.ID] = true
	}
	require.Len(t, seen, 25)

	// Pages beyond the end are empty but keep the totals.
	page3, err := svc.Catalog(context.Background(), 3, "")
	require.NoError(t, err)
	require.Empty(t, page3.Movies)
	require.Equal(t, 25, page3.TotalResults)
}

func TestCatalogGenreFilter(t *testing.T) {
	drama := movie(1, 1)
	drama.GenreIDs = []int{18}
	comedy := movie(2, 2)
	comedy.GenreIDs = []int{35}
	both := movie(3, 3)
	both.GenreIDs = []int{18, 35}

	svc, _ := newTestService(t, Options{}, &stubStrategy{name: "stub", movies: []tmdb.Movie{drama, comedy, both}})

	page, err := svc.Catalog(context.Background(), 1, "Drama")
	require.NoError(t, err)
	require.Len(t, page.Movies, 2)
	for _, m := range page.Movies {
		require.Contains(t, m.GenreIDs, 18)
	}
}

func TestCatalogUnknownGenreIsNoOp(t *testing.T) {
	svc, _ := newTestService(t, Options{}, &stubStrategy{name: "stub", movies: []tmdb.Movie{
		movie(1, 1), movie(2, 2),
	}})

	page, err := svc.Catalog(context.Background(), 1, "Mollywood Masala")
	require.NoError(t, err)
	require.Len(t, page.Movies, 2, "an unrecognized genre name must not hide the catalog")
}

func TestCatalogCaching(t *testing.T) {
	stub := &stubStrategy{name: "stub", movies: []tmdb.Movie{movie(1, 1)}}
	svc, c := newTestService(t, Options{}, stub)

	first, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	second, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)

	require.Equal(t, 1, stub.calls, "second call must be served from the cache")
	require.Same(t, first, second)

	// Different parameters miss the cache.
	_, err = svc.Catalog(context.Background(), 1, "Drama")
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls)

	// A flush forces a re-fetch.
	c.Clear()
	_, err = svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Equal(t, 3, stub.calls)
}

func TestCatalogPartialStrategyFailure(t *testing.T) {
	svc, _ := newTestService(t, Options{},
		&stubStrategy{name: "broken", err: errors.New("boom")},
		&stubStrategy{name: "working", movies: []tmdb.Movie{movie(1, 1)}},
	)

	page, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err, "one failing strategy must not fail the pipeline")
	require.Len(t, page.Movies, 1)
}

func TestCatalogAllStrategiesFail(t *testing.T) {
	svc, _ := newTestService(t, Options{},
		&stubStrategy{name: "one", err: errors.New("boom")},
		&stubStrategy{name: "two", err: errors.New("bang")},
	)

	_, err := svc.Catalog(context.Background(), 1, "")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCatalogFallbackFlag(t *testing.T) {
	svc, _ := newTestService(t, Options{FallbackEnabled: true},
		&stubStrategy{name: "broken", err: errors.New("boom")},
	)

	page, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.NotEmpty(t, page.Movies)
	for _, m := range page.Movies {
		require.Equal(t, "ml", m.OriginalLanguage)
	}
}

func TestNewServiceRequiresStrategy(t *testing.T) {
	c := cache.New(time.Hour, zap.NewNop())
	t.Cleanup(c.Close)

	_, err := NewService(nil, nil, c, zap.NewNop(), Options{})
	require.Error(t, err)
}
