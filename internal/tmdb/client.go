// Package tmdb encapsulates all calls to The Movie Database API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/cache"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	ImageBaseURL   = "https://image.tmdb.org/t/p"

	// TargetLanguage is the fixed content-language filter this catalog restricts to.
	TargetLanguage = "ml"

	searchCacheTTL   = 30 * time.Minute
	detailsCacheTTL  = 2 * time.Hour
	trendingCacheTTL = time.Hour
)

var (
	upstreamCalls    = metrics.NewCounter(`tmdb_requests_total`)
	upstreamFailures = metrics.NewCounter(`tmdb_request_failures_total`)
)

// StatusError is returned when TMDB answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("TMDB API returned status %d: %s", e.StatusCode, e.Body)
}

// ClientOptions customize a Client.
type ClientOptions struct {
	// BaseURL of the TMDB API. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout for a single HTTP request. Defaults to 15 seconds.
	Timeout time.Duration
}

// Client is a TMDB API client using bearer-token authentication.
// Secondary lookups (search, details, trending) are cached; the discover
// endpoint is left uncached because the catalog pipeline caches whole pages.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	cache       *cache.Cache
	logger      *zap.Logger
}

// NewClient creates a TMDB client. cache may be nil to disable response caching.
func NewClient(accessToken string, opts ClientOptions, c *cache.Cache, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:     opts.BaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: opts.Timeout},
		cache:       c,
		logger:      logger,
	}
}

// DiscoverOptions are the filters for a DiscoverMovies call.
type DiscoverOptions struct {
	Page               int
	OriginalLanguage   string
	WithWatchProviders string // pipe-separated provider IDs, see ProviderList
	WatchRegion        string
	WithGenres         int    // 0 means no genre filter
	SortBy             string // e.g. "release_date.desc"
	ReleaseDateLTE     string // "2006-01-02"
	VoteCountGTE       int
}

// DiscoverMovies queries /discover/movie with the given filters.
func (c *Client) DiscoverMovies(ctx context.Context, opts DiscoverOptions) (*MovieList, error) {
	params := url.Values{}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.OriginalLanguage != "" {
		params.Set("with_original_language", opts.OriginalLanguage)
	}
	if opts.WithWatchProviders != "" {
		params.Set("with_watch_providers", opts.WithWatchProviders)
	}
	if opts.WatchRegion != "" {
		params.Set("watch_region", opts.WatchRegion)
	}
	if opts.WithGenres != 0 {
		params.Set("with_genres", strconv.Itoa(opts.WithGenres))
	}
	if opts.SortBy != "" {
		params.Set("sort_by", opts.SortBy)
	}
	if opts.ReleaseDateLTE != "" {
		params.Set("primary_release_date.lte", opts.ReleaseDateLTE)
	}
	if opts.VoteCountGTE > 0 {
		params.Set("vote_count.gte", strconv.Itoa(opts.VoteCountGTE))
	}
	params.Set("include_adult", "false")

	var list MovieList
	if err := c.get(ctx, "/discover/movie", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SearchMovies queries /search/movie and keeps only target-language results.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MovieList, error) {
	cacheKey := fmt.Sprintf("tmdb:search:%s:page=%d", query, page)
	if list, ok := c.cachedList(cacheKey); ok {
		return list, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var list MovieList
	if err := c.get(ctx, "/search/movie", params, &list); err != nil {
		return nil, err
	}
	list.Results = filterLanguage(list.Results, TargetLanguage)

	c.storeList(cacheKey, &list, searchCacheTTL)
	return &list, nil
}

// MovieDetails queries /movie/{id}. The result includes the runtime and IMDb ID.
func (c *Client) MovieDetails(ctx context.Context, id int) (*Movie, error) {
	cacheKey := fmt.Sprintf("tmdb:movie:%d", id)
	if c.cache != nil {
		if v, ok := c.cache.Get(cacheKey); ok {
			if m, ok := v.(*Movie); ok {
				return m, nil
			}
		}
	}

	var detail struct {
		Movie
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), url.Values{}, &detail); err != nil {
		return nil, err
	}
	// The details endpoint expands genres into objects; flatten them back to IDs.
	movie := detail.Movie
	for _, g := range detail.Genres {
		movie.GenreIDs = append(movie.GenreIDs, g.ID)
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, &movie, detailsCacheTTL)
	}
	return &movie, nil
}

// Trending queries /trending/movie/week and keeps only target-language results.
func (c *Client) Trending(ctx context.Context) (*MovieList, error) {
	cacheKey := "tmdb:trending:week"
	if list, ok := c.cachedList(cacheKey); ok {
		return list, nil
	}

	var list MovieList
	if err := c.get(ctx, "/trending/movie/week", url.Values{}, &list); err != nil {
		return nil, err
	}
	list.Results = filterLanguage(list.Results, TargetLanguage)

	c.storeList(cacheKey, &list, trendingCacheTTL)
	return &list, nil
}

// ExternalIDs queries /movie/{id}/external_ids.
func (c *Client) ExternalIDs(ctx context.Context, id int) (*ExternalIDs, error) {
	var ids ExternalIDs
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/external_ids", id), url.Values{}, &ids); err != nil {
		return nil, err
	}
	return &ids, nil
}

// WatchProviders queries /movie/{id}/watch/providers and returns the listings
// for the given region, or nil if the movie isn't available there.
func (c *Client) WatchProviders(ctx context.Context, id int, region string) (*RegionProviders, error) {
	var result WatchProviderResult
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/watch/providers", id), url.Values{}, &result); err != nil {
		return nil, err
	}
	if rp, ok := result.Results[region]; ok {
		return &rp, nil
	}
	return nil, nil
}

func (c *Client) cachedList(key string) (*MovieList, bool) {
	if c.cache == nil {
		return nil, false
	}
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.(*MovieList)
	return list, ok
}

func (c *Client) storeList(key string, list *MovieList, ttl time.Duration) {
	if c.cache != nil {
		c.cache.Set(key, list, ttl)
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("couldn't parse TMDB endpoint %s: %w", path, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("couldn't create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	upstreamCalls.Inc()
	res, err := c.httpClient.Do(req)
	if err != nil {
		upstreamFailures.Inc()
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		upstreamFailures.Inc()
		return fmt.Errorf("couldn't read response from %s: %w", path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		upstreamFailures.Inc()
		excerpt := string(body)
		if len(excerpt) > 256 {
			excerpt = excerpt[:256]
		}
		c.logger.Warn("TMDB request failed",
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
			zap.String("body", excerpt))
		return &StatusError{StatusCode: res.StatusCode, Body: excerpt}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("couldn't unmarshal response from %s: %w", path, err)
	}
	return nil
}

func filterLanguage(movies []Movie, language string) []Movie {
	filtered := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.OriginalLanguage == language {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
