package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/tmdb"
)

// Upstream is the slice of the TMDB client the catalog pipeline depends on.
type Upstream interface {
	DiscoverMovies(ctx context.Context, opts tmdb.DiscoverOptions) (*tmdb.MovieList, error)
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.MovieList, error)
	MovieDetails(ctx context.Context, id int) (*tmdb.Movie, error)
	Trending(ctx context.Context) (*tmdb.MovieList, error)
	ExternalIDs(ctx context.Context, id int) (*tmdb.ExternalIDs, error)
	WatchProviders(ctx context.Context, id int, region string) (*tmdb.RegionProviders, error)
}

// Strategy is one independent method of sourcing candidate records from the
// upstream API. Strategies are composed by the Service: their results are
// merged, deduplicated and re-filtered, so a strategy only needs to make a
// best effort at returning plausible candidates.
type Strategy interface {
	Name() string
	FetchCandidates(ctx context.Context) ([]tmdb.Movie, error)
}

// DiscoverStrategy pages through the TMDB discover endpoint with the
// language/provider/region/date filters. It is the default and cheapest
// strategy: one upstream call per 20 candidates.
type DiscoverStrategy struct {
	client    Upstream
	region    string
	providers string
	maxPages  int
	pacing    time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewDiscoverStrategy creates the default discovery strategy.
// maxPages caps the upstream page scan.
func NewDiscoverStrategy(client Upstream, region string, maxPages int, pacing time.Duration, logger *zap.Logger) *DiscoverStrategy {
	return &DiscoverStrategy{
		client:    client,
		region:    region,
		providers: tmdb.ProviderList(),
		maxPages:  maxPages,
		pacing:    pacing,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *DiscoverStrategy) Name() string { return "discover" }

func (s *DiscoverStrategy) FetchCandidates(ctx context.Context) ([]tmdb.Movie, error) {
	var candidates []tmdb.Movie
	today := s.now().Format("2006-01-02")

	for page := 1; page <= s.maxPages; page++ {
		list, err := s.client.DiscoverMovies(ctx, tmdb.DiscoverOptions{
			Page:               page,
			OriginalLanguage:   tmdb.TargetLanguage,
			WithWatchProviders: s.providers,
			WatchRegion:        s.region,
			SortBy:             "release_date.desc",
			ReleaseDateLTE:     today,
			VoteCountGTE:       1,
		})
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("discover page 1: %w", err)
			}
			// Later pages degrade to a partial result instead of failing the branch.
			s.logger.Warn("Discover page failed, keeping partial results",
				zap.Int("page", page), zap.Error(err))
			break
		}
		if len(list.Results) == 0 {
			break
		}
		candidates = append(candidates, list.Results...)
		if page >= list.TotalPages {
			break
		}
		if page == s.maxPages {
			s.logger.Warn("Discover page ceiling hit, results may be truncated",
				zap.Int("maxPages", s.maxPages), zap.Int("totalPages", list.TotalPages))
			break
		}
		if err := pace(ctx, s.pacing); err != nil {
			return candidates, nil
		}
	}

	return candidates, nil
}

// defaultTitles is a curated list of known Malayalam films used by the
// title-search strategy to catch records the discover filters miss.
var defaultTitles = []string{
	"Manjummel Boys",
	"Premalu",
	"Aavesham",
	"Bramayugam",
	"Kannur Squad",
	"Romancham",
	"2018",
	"Jaya Jaya Jaya Jaya Hey",
	"Nanpakal Nerathu Mayakkam",
	"Drishyam",
}

// TitleSearchStrategy issues a title search per curated title and keeps only
// target-language, already-released results. Text search returns false
// positives across languages, so the Service's final language filter matters.
type TitleSearchStrategy struct {
	client Upstream
	titles []string
	pacing time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewTitleSearchStrategy creates a title-search strategy.
// An empty titles slice falls back to the curated default list.
func NewTitleSearchStrategy(client Upstream, titles []string, pacing time.Duration, logger *zap.Logger) *TitleSearchStrategy {
	if len(titles) == 0 {
		titles = defaultTitles
	}
	return &TitleSearchStrategy{
		client: client,
		titles: titles,
		pacing: pacing,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TitleSearchStrategy) Name() string { return "titles" }

func (s *TitleSearchStrategy) FetchCandidates(ctx context.Context) ([]tmdb.Movie, error) {
	var candidates []tmdb.Movie
	failures := 0

	for i, title := range s.titles {
		list, err := s.client.SearchMovies(ctx, title, 1)
		if err != nil {
			failures++
			s.logger.Warn("Title search failed", zap.String("title", title), zap.Error(err))
			continue
		}
		candidates = append(candidates, keepReleased(list.Results, s.now())...)
		if i < len(s.titles)-1 {
			if err := pace(ctx, s.pacing); err != nil {
				return candidates, nil
			}
		}
	}

	if failures == len(s.titles) {
		return nil, fmt.Errorf("all %d title searches failed", failures)
	}
	return candidates, nil
}

// defaultKeywords are the language/region terms for the keyword strategy.
var defaultKeywords = []string{"malayalam", "mollywood"}

// KeywordStrategy issues a paged text search per keyword.
type KeywordStrategy struct {
	client   Upstream
	keywords []string
	maxPages int
	pacing   time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewKeywordStrategy creates a keyword-search strategy scanning up to
// maxPages result pages per keyword.
func NewKeywordStrategy(client Upstream, keywords []string, maxPages int, pacing time.Duration, logger *zap.Logger) *KeywordStrategy {
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	if maxPages < 1 {
		maxPages = 3
	}
	return &KeywordStrategy{
		client:   client,
		keywords: keywords,
		maxPages: maxPages,
		pacing:   pacing,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *KeywordStrategy) Name() string { return "keywords" }

func (s *KeywordStrategy) FetchCandidates(ctx context.Context) ([]tmdb.Movie, error) {
	var candidates []tmdb.Movie
	failures := 0

	for _, keyword := range s.keywords {
		for page := 1; page <= s.maxPages; page++ {
			list, err := s.client.SearchMovies(ctx, keyword, page)
			if err != nil {
				failures++
				s.logger.Warn("Keyword search failed",
					zap.String("keyword", keyword), zap.Int("page", page), zap.Error(err))
				break
			}
			candidates = append(candidates, keepReleased(list.Results, s.now())...)
			if page >= list.TotalPages {
				break
			}
			if err := pace(ctx, s.pacing); err != nil {
				return candidates, nil
			}
		}
	}

	if failures == len(s.keywords) {
		return nil, fmt.Errorf("all %d keyword searches failed", failures)
	}
	return candidates, nil
}

// ProviderFilterStrategy wraps another strategy, keeps only candidates that
// are actually listed on one of the known OTT providers in the region, and
// resolves IMDb IDs so the merge step can deduplicate across catalogs.
// One provider lookup plus one external-ID lookup per candidate make this the
// most expensive strategy; it is off unless explicitly configured.
type ProviderFilterStrategy struct {
	inner  Strategy
	client Upstream
	region string
	pacing time.Duration
	logger *zap.Logger
}

// NewProviderFilterStrategy wraps inner with per-title provider filtering.
func NewProviderFilterStrategy(inner Strategy, client Upstream, region string, pacing time.Duration, logger *zap.Logger) *ProviderFilterStrategy {
	return &ProviderFilterStrategy{
		inner:  inner,
		client: client,
		region: region,
		pacing: pacing,
		logger: logger,
	}
}

func (s *ProviderFilterStrategy) Name() string { return s.inner.Name() + "+providers" }

func (s *ProviderFilterStrategy) FetchCandidates(ctx context.Context) ([]tmdb.Movie, error) {
	candidates, err := s.inner.FetchCandidates(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]tmdb.Movie, 0, len(candidates))
	for _, movie := range candidates {
		providers, err := s.client.WatchProviders(ctx, movie.ID, s.region)
		if err != nil {
			s.logger.Warn("Provider lookup failed, dropping candidate",
				zap.Int("id", movie.ID), zap.Error(err))
			continue
		}
		if !hasKnownProvider(providers) {
			continue
		}

		if ids, err := s.client.ExternalIDs(ctx, movie.ID); err == nil && ids.IMDbID != "" {
			movie.IMDbID = ids.IMDbID
		}
		kept = append(kept, movie)

		if err := pace(ctx, s.pacing); err != nil {
			return kept, nil
		}
	}
	return kept, nil
}

func hasKnownProvider(rp *tmdb.RegionProviders) bool {
	if rp == nil {
		return false
	}
	for _, group := range [][]tmdb.WatchProviderEntry{rp.Flatrate, rp.Rent, rp.Buy} {
		for _, p := range group {
			if tmdb.KnownProvider(p.ProviderID) {
				return true
			}
		}
	}
	return false
}

// keepReleased filters to target-language records whose release date is in the past.
func keepReleased(movies []tmdb.Movie, now time.Time) []tmdb.Movie {
	kept := make([]tmdb.Movie, 0, len(movies))
	for _, m := range movies {
		if m.OriginalLanguage != tmdb.TargetLanguage {
			continue
		}
		released, ok := m.Released()
		if !ok || released.After(now) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// pace sleeps for d as a courtesy between successive upstream calls.
// It returns the context error if the context is canceled first.
func pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
