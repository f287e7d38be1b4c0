// Package server is the HTTP adapter: it translates addon protocol requests
// into pipeline calls and pipeline results into JSON responses.
package server

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/catalog"
	"github.com/mollywood/stremio-catalog/internal/refresh"
	"github.com/mollywood/stremio-catalog/internal/stremio"
)

// Options configure the Server.
type Options struct {
	BindAddr string
	Port     int
	// DisableRequestLogging turns off the per-request log line.
	DisableRequestLogging bool
	// Metrics enables the metrics middleware and the /metrics endpoint.
	Metrics bool
}

// Server serves the addon over HTTP.
// Create one with New() and then run it with Run().
type Server struct {
	app    *fiber.App
	addr   string
	logger *zap.Logger
}

// New creates the addon server. The manifest must advertise exactly the
// catalogs the service can answer; the first catalog's ID is the one the
// catalog routes accept.
func New(manifest stremio.Manifest, service *catalog.Service, refresher *refresh.Refresher, logger *zap.Logger, opts Options) (*Server, error) {
	if manifest.ID == "" || manifest.Name == "" || manifest.Description == "" || manifest.Version == "" {
		return nil, errors.New("an empty manifest was passed")
	}
	if len(manifest.Catalogs) == 0 {
		return nil, errors.New("the manifest must advertise at least one catalog")
	}
	if opts.BindAddr == "" {
		opts.BindAddr = "0.0.0.0"
	}
	if opts.Port == 0 {
		opts.Port = 7000
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			var e *fiber.Error
			if errors.As(err, &e) {
				logger.Error("Fiber's error handler was called", zap.Error(e), zap.String("url", c.OriginalURL()))
				return respondError(c, e.Code, "internal_error", "an internal server error occurred")
			}
			return respondError(c, fiber.StatusInternalServerError, "internal_error", "an internal server error occurred")
		},
	})

	app.Use(recover.New())
	if !opts.DisableRequestLogging {
		app.Use(createLoggingMiddleware(logger))
	}
	if opts.Metrics {
		app.Use(createMetricsMiddleware())
	}
	// Stremio doesn't load addon responses without permissive CORS headers.
	app.Use(corsMiddleware())

	app.Get("/health", createHealthHandler())
	if opts.Metrics {
		app.Get("/metrics", adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			metrics.WritePrometheus(w, true)
		}))
	}

	manifestHandler := createManifestHandler(manifest, logger)
	app.Get("/manifest.json", manifestHandler)

	catalogHandler := createCatalogHandler(service, manifest.Catalogs[0].ID, logger)
	app.Get("/catalog/:type/:id.json", catalogHandler)
	app.Get("/catalog/:type/:id/:extras", catalogHandler)

	refreshHandler := createRefreshHandler(refresher, logger)
	app.Post("/refresh", refreshHandler)
	// Manual triggering from a browser.
	app.Get("/refresh", refreshHandler)

	return &Server{
		app:    app,
		addr:   opts.BindAddr + ":" + strconv.Itoa(opts.Port),
		logger: logger,
	}, nil
}

// App exposes the underlying fiber app, for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts the server and blocks until a SIGINT or SIGTERM arrives, then
// shuts down gracefully. The stoppingChan, if non-nil, must be buffered with
// a capacity of at least 1; it receives a message right before shutdown.
func (s *Server) Run(stoppingChan chan bool) {
	logger := s.logger

	if stoppingChan != nil && cap(stoppingChan) < 1 {
		logger.Fatal("The passed stopping channel isn't buffered")
	}

	stopping := false
	stoppingPtr := &stopping

	logger.Info("Starting server", zap.String("address", s.addr))
	go func() {
		if err := s.app.Listen(s.addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			if !*stoppingPtr {
				logger.Fatal("Couldn't start server", zap.Error(err))
			} else {
				logger.Fatal("Error during server shutdown", zap.Error(err))
			}
		}
	}()

	c := make(chan os.Signal, 1)
	// Accept SIGINT (Ctrl+C) and SIGTERM (`docker stop`)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	logger.Info("Received signal, shutting down server...", zap.Stringer("signal", sig))
	*stoppingPtr = true
	if stoppingChan != nil {
		stoppingChan <- true
	}
	if err := s.app.Shutdown(); err != nil {
		logger.Fatal("Error shutting down server", zap.Error(err))
	}
	logger.Info("Finished shutting down server")
}
