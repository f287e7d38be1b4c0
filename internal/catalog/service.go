// Package catalog implements the movie discovery and normalization pipeline:
// candidate sourcing via pluggable strategies, merge with dedup, genre
// filtering, date sorting, pagination and the projection into Stremio metas.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/cache"
	"github.com/mollywood/stremio-catalog/internal/tmdb"
)

// PageSize is the fixed number of records per catalog page.
const PageSize = 20

const pageCacheTTL = 30 * time.Minute

// Page is one page of the filtered, sorted catalog.
type Page struct {
	Movies       []tmdb.Movie
	TotalPages   int
	TotalResults int
}

// Options configure a Service.
type Options struct {
	// FallbackEnabled serves a tiny built-in record set instead of an error
	// when every strategy fails. Off by default: a placeholder catalog
	// silently misleads clients, so it's only meant for demos.
	FallbackEnabled bool
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service runs the discovery pipeline. Construct once per process and share;
// all methods are safe for concurrent use.
type Service struct {
	upstream        Upstream
	strategies      []Strategy
	cache           *cache.Cache
	logger          *zap.Logger
	fallbackEnabled bool
	now             func() time.Time

	// cacheKeyPrefix pins cached pages to the active strategy set, so a
	// config change never serves pages computed by different strategies.
	cacheKeyPrefix string
}

// NewService creates the pipeline service. At least one strategy is required.
func NewService(upstream Upstream, strategies []Strategy, c *cache.Cache, logger *zap.Logger, opts Options) (*Service, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("at least one strategy is required")
	}
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		upstream:        upstream,
		strategies:      strategies,
		cache:           c,
		logger:          logger,
		fallbackEnabled: opts.FallbackEnabled,
		now:             now,
		cacheKeyPrefix:  "catalog:" + strings.Join(names, "+") + ":v1",
	}, nil
}

// Catalog returns the requested 1-based page of the catalog, optionally
// filtered by a genre display name. An empty genre means no filter; an
// unrecognized genre name is a no-op with a logged warning.
//
// Within the cache TTL, identical (page, genre) calls return the identical
// page without touching the upstream API.
func (s *Service) Catalog(ctx context.Context, page int, genre string) (*Page, error) {
	if page < 1 {
		page = 1
	}

	key := fmt.Sprintf("%s:page=%d:genre=%s", s.cacheKeyPrefix, page, strings.ToLower(genre))
	if v, ok := s.cache.Get(key); ok {
		if cached, ok := v.(*Page); ok {
			return cached, nil
		}
	}

	candidates, err := s.gather(ctx)
	if err != nil {
		return nil, err
	}

	movies := s.mergeAndFilter(candidates, genre)
	result := paginate(movies, page)

	s.cache.Set(key, result, pageCacheTTL)
	return result, nil
}

// gather runs all strategies and concatenates their candidates in strategy
// order. A failing strategy contributes nothing; only total failure is an error.
func (s *Service) gather(ctx context.Context) ([]tmdb.Movie, error) {
	var candidates []tmdb.Movie
	failures := 0

	for _, strategy := range s.strategies {
		found, err := strategy.FetchCandidates(ctx)
		if err != nil {
			failures++
			s.logger.Warn("Strategy failed, contributing zero candidates",
				zap.String("strategy", strategy.Name()), zap.Error(err))
			continue
		}
		s.logger.Debug("Strategy contributed candidates",
			zap.String("strategy", strategy.Name()), zap.Int("count", len(found)))
		candidates = append(candidates, found...)
	}

	if failures == len(s.strategies) {
		if s.fallbackEnabled {
			s.logger.Warn("All strategies failed, serving built-in fallback records")
			return fallbackMovies(), nil
		}
		return nil, ErrUpstreamUnavailable
	}
	return candidates, nil
}

// mergeAndFilter deduplicates candidates, re-asserts eligibility and applies
// the optional genre filter, then sorts descending by release date.
func (s *Service) mergeAndFilter(candidates []tmdb.Movie, genre string) []tmdb.Movie {
	genreID := 0
	if genre != "" {
		id, ok := tmdb.GenreID(genre)
		if !ok {
			// Unknown names pass the full set through rather than hiding it.
			s.logger.Warn("Unknown genre name, ignoring filter", zap.String("genre", genre))
		} else {
			genreID = id
		}
	}

	now := s.now()
	seen := make(map[string]struct{}, len(candidates))
	movies := make([]tmdb.Movie, 0, len(candidates))

	for _, m := range candidates {
		// Upstream text search returns false positives, so language and
		// release date are re-checked here regardless of the strategy.
		if m.OriginalLanguage != tmdb.TargetLanguage {
			continue
		}
		released, ok := m.Released()
		if !ok || released.After(now) {
			continue
		}
		if genreID != 0 && !containsInt(m.GenreIDs, genreID) {
			continue
		}

		// First occurrence wins. IMDb IDs, when resolved, identify the same
		// film across TMDB duplicates; otherwise the TMDB ID is the key.
		key := fmt.Sprintf("tmdb:%d", m.ID)
		if m.IMDbID != "" {
			key = "imdb:" + m.IMDbID
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		movies = append(movies, m)
	}

	sort.SliceStable(movies, func(i, j int) bool {
		return releaseSortKey(movies[i]).After(releaseSortKey(movies[j]))
	})
	return movies
}

// releaseSortKey treats a missing date as the minimum date, so undated
// records end up last in the descending order.
func releaseSortKey(m tmdb.Movie) time.Time {
	if t, ok := m.Released(); ok {
		return t
	}
	return time.Time{}
}

func paginate(movies []tmdb.Movie, page int) *Page {
	total := len(movies)
	totalPages := (total + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return &Page{
		Movies:       movies[start:end],
		TotalPages:   totalPages,
		TotalResults: total,
	}
}

// Details returns the full record for a single movie, cached by the client.
func (s *Service) Details(ctx context.Context, id int) (*tmdb.Movie, error) {
	return s.upstream.MovieDetails(ctx, id)
}

// Trending returns this week's trending movies in the target language.
func (s *Service) Trending(ctx context.Context) ([]tmdb.Movie, error) {
	list, err := s.upstream.Trending(ctx)
	if err != nil {
		return nil, err
	}
	return list.Results, nil
}

// Search returns target-language search results for a free-text query.
func (s *Service) Search(ctx context.Context, query string, page int) ([]tmdb.Movie, error) {
	if page < 1 {
		page = 1
	}
	list, err := s.upstream.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return list.Results, nil
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
