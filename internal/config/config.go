package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-supplied settings.
// The TMDB access token is the only required value.
type Config struct {
	// Server
	BindAddr string
	Port     int

	// Logging
	LogLevel    string
	LogEncoding string

	// Upstream
	TMDBAccessToken string
	WatchRegion     string
	UpstreamPacing  time.Duration

	// Catalog pipeline
	Strategies       []string
	MaxDiscoverPages int
	FallbackEnabled  bool

	// Cache
	CacheTTL time.Duration

	// Refresh job
	RefreshEnabled  bool
	RefreshPages    int
	RefreshInterval time.Duration
}

// Load reads the configuration from the environment.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	// Best effort; running without a .env file is the normal deployment mode.
	_ = godotenv.Load()

	cfg := &Config{
		BindAddr:         getEnv("BIND_ADDR", "0.0.0.0"),
		Port:             getEnvInt("PORT", 7000),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogEncoding:      getEnv("LOG_ENCODING", "console"),
		TMDBAccessToken:  os.Getenv("TMDB_ACCESS_TOKEN"),
		WatchRegion:      getEnv("WATCH_REGION", "IN"),
		UpstreamPacing:   getEnvDuration("UPSTREAM_PACING", 100*time.Millisecond),
		Strategies:       getEnvList("CATALOG_STRATEGIES", []string{"discover"}),
		MaxDiscoverPages: getEnvInt("MAX_DISCOVER_PAGES", 25),
		FallbackEnabled:  getEnvBool("FALLBACK_ENABLED", false),
		CacheTTL:         time.Duration(getEnvInt("CACHE_DURATION", 3600)) * time.Second,
		RefreshEnabled:   getEnvBool("REFRESH_ENABLED", true),
		RefreshPages:     getEnvInt("REFRESH_PAGES", 5),
		RefreshInterval:  getEnvDuration("REFRESH_INTERVAL", 6*time.Hour),
	}

	if cfg.TMDBAccessToken == "" {
		return nil, errors.New("TMDB_ACCESS_TOKEN must be set")
	}
	if cfg.MaxDiscoverPages < 1 {
		return nil, errors.New("MAX_DISCOVER_PAGES must be at least 1")
	}
	if cfg.RefreshPages < 1 {
		return nil, errors.New("REFRESH_PAGES must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	if len(list) == 0 {
		return fallback
	}
	return list
}
