package server

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/catalog"
	"github.com/mollywood/stremio-catalog/internal/refresh"
	"github.com/mollywood/stremio-catalog/internal/stremio"
)

const (
	manifestCacheControl = "public, max-age=86400"
	catalogCacheControl  = "public, max-age=1800"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorBody{Error: code, Message: message})
}

func createManifestHandler(manifest stremio.Manifest, logger *zap.Logger) fiber.Handler {
	// The manifest never changes at runtime, so serialize it once.
	body, err := json.Marshal(manifest)
	if err != nil {
		logger.Fatal("Couldn't marshal manifest", zap.Error(err))
	}

	return func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderCacheControl, manifestCacheControl)
		return c.Send(body)
	}
}

func createCatalogHandler(service *catalog.Service, catalogID string, logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Params("type") != "movie" {
			return respondError(c, fiber.StatusBadRequest, "bad_request", "unsupported type")
		}
		id := strings.TrimSuffix(c.Params("id"), ".json")
		if id != catalogID {
			return respondError(c, fiber.StatusNotFound, "not_found", "unknown catalog: "+id)
		}

		skip, genre := extraParams(c)
		page := skip/catalog.PageSize + 1

		result, err := service.Catalog(c.Context(), page, genre)
		if err != nil {
			if errors.Is(err, catalog.ErrUpstreamUnavailable) {
				return respondError(c, fiber.StatusBadGateway, "upstream_unavailable", "the movie metadata service is unavailable")
			}
			logger.Error("Catalog request failed", zap.Int("page", page), zap.String("genre", genre), zap.Error(err))
			return respondError(c, fiber.StatusInternalServerError, "internal_error", "an internal server error occurred")
		}

		metas := catalog.MapMovies(result.Movies)
		if len(metas) > catalog.PageSize {
			metas = metas[:catalog.PageSize]
		}

		body, err := json.Marshal(stremio.CatalogResponse{Metas: metas})
		if err != nil {
			logger.Error("Couldn't marshal catalog response", zap.Error(err))
			return respondError(c, fiber.StatusInternalServerError, "internal_error", "an internal server error occurred")
		}

		eTag := strconv.FormatUint(xxhash.Sum64(body), 16)
		c.Set(fiber.HeaderETag, eTag)
		c.Set(fiber.HeaderCacheControl, catalogCacheControl)
		if c.Get(fiber.HeaderIfNoneMatch) == eTag {
			return c.SendStatus(fiber.StatusNotModified)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
}

// extraParams reads skip and genre from the query string and, for requests in
// the "/catalog/movie/<id>/skip=20&genre=Drama.json" form, from the extras
// path segment. Path values win over query values.
func extraParams(c fiber.Ctx) (skip int, genre string) {
	values := url.Values{}
	if raw := strings.TrimSuffix(c.Params("extras"), ".json"); raw != "" {
		if parsed, err := url.ParseQuery(raw); err == nil {
			values = parsed
		}
	}

	skipStr := values.Get("skip")
	if skipStr == "" {
		skipStr = c.Query("skip", "0")
	}
	if n, err := strconv.Atoi(skipStr); err == nil && n > 0 {
		skip = n
	}

	genre = values.Get("genre")
	if genre == "" {
		genre = c.Query("genre")
	}
	return skip, genre
}

func createRefreshHandler(refresher *refresh.Refresher, logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		summary, err := refresher.Run(c.Context())
		if err != nil {
			if errors.Is(err, refresh.ErrAlreadyRunning) {
				return respondError(c, fiber.StatusConflict, "refresh_in_progress", "a refresh is already running")
			}
			logger.Error("Refresh failed", zap.Error(err))
			return respondError(c, fiber.StatusInternalServerError, "internal_error", "an internal server error occurred")
		}
		return c.JSON(summary)
	}
}

func createHealthHandler() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.SendString("OK")
	}
}
