package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/cache"
	"github.com/mollywood/stremio-catalog/internal/catalog"
	"github.com/mollywood/stremio-catalog/internal/config"
	"github.com/mollywood/stremio-catalog/internal/logging"
	"github.com/mollywood/stremio-catalog/internal/refresh"
	"github.com/mollywood/stremio-catalog/internal/server"
	"github.com/mollywood/stremio-catalog/internal/stremio"
	"github.com/mollywood/stremio-catalog/internal/tmdb"
)

const version = "1.0.0"

var manifest = stremio.Manifest{
	ID:          "org.malayalam.movies.ott.catalog",
	Name:        "Malayalam Movies OTT",
	Description: "Catalog of Malayalam movies available on OTT platforms in India, sorted by release date",
	Version:     version,

	Resources: []string{"catalog"},
	Types:     []string{"movie"},
	Catalogs: []stremio.CatalogItem{
		{
			Type:        "movie",
			ID:          "malayalam_movies_latest",
			Name:        "Latest Malayalam Movies",
			Description: "Latest Malayalam movies available on OTT platforms",
			Extra: []stremio.ExtraItem{
				{Name: "skip"},
				{
					Name: "genre",
					Options: []string{
						"Action", "Comedy", "Drama", "Romance", "Thriller",
						"Horror", "Family", "Crime", "Mystery", "Adventure",
					},
				},
			},
		},
	},

	BehaviorHints: stremio.BehaviorHints{
		Configurable: true,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Couldn't create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	resultCache := cache.New(cfg.CacheTTL, logger)
	defer resultCache.Close()

	client := tmdb.NewClient(cfg.TMDBAccessToken, tmdb.ClientOptions{}, resultCache, logger)

	strategies, err := buildStrategies(cfg, client, logger)
	if err != nil {
		logger.Fatal("Couldn't build strategies", zap.Error(err))
	}

	service, err := catalog.NewService(client, strategies, resultCache, logger, catalog.Options{
		FallbackEnabled: cfg.FallbackEnabled,
	})
	if err != nil {
		logger.Fatal("Couldn't create catalog service", zap.Error(err))
	}

	refresher := refresh.New(service, resultCache, cfg.RefreshPages, cfg.UpstreamPacing, logger)
	if cfg.RefreshEnabled {
		scheduler, err := refresh.NewScheduler(refresher, cfg.RefreshInterval, logger)
		if err != nil {
			logger.Fatal("Couldn't create refresh scheduler", zap.Error(err))
		}
		scheduler.Start()
		defer func() {
			_ = scheduler.Stop()
		}()
	}

	srv, err := server.New(manifest, service, refresher, logger, server.Options{
		BindAddr: cfg.BindAddr,
		Port:     cfg.Port,
		Metrics:  true,
	})
	if err != nil {
		logger.Fatal("Couldn't create server", zap.Error(err))
	}

	srv.Run(nil)
}

func buildStrategies(cfg *config.Config, client *tmdb.Client, logger *zap.Logger) ([]catalog.Strategy, error) {
	strategies := make([]catalog.Strategy, 0, len(cfg.Strategies))
	for _, name := range cfg.Strategies {
		switch name {
		case "discover":
			strategies = append(strategies, catalog.NewDiscoverStrategy(client, cfg.WatchRegion, cfg.MaxDiscoverPages, cfg.UpstreamPacing, logger))
		case "titles":
			strategies = append(strategies, catalog.NewTitleSearchStrategy(client, nil, cfg.UpstreamPacing, logger))
		case "keywords":
			strategies = append(strategies, catalog.NewKeywordStrategy(client, nil, 3, cfg.UpstreamPacing, logger))
		case "discover+providers":
			inner := catalog.NewDiscoverStrategy(client, cfg.WatchRegion, cfg.MaxDiscoverPages, cfg.UpstreamPacing, logger)
			strategies = append(strategies, catalog.NewProviderFilterStrategy(inner, client, cfg.WatchRegion, cfg.UpstreamPacing, logger))
		default:
			return nil, fmt.Errorf("unknown catalog strategy %q", name)
		}
	}
	return strategies, nil
}
