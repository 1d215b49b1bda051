package library

import (
	"errors"

	"library-compare/core/cache"
	"library-compare/core/logger"
	"library-compare/core/unify"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the unified library.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = cache.Entry{}
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library")
	group.Get("/", h.HandleLibrary)
	group.Get("/platforms", h.HandlePlatforms)
	group.Get("/platforms/:platform", h.HandlePlatformGames)
	group.Get("/cache", h.HandleCacheStatus)
	group.Delete("/cache", h.HandleClearCache)
	group.Delete("/cache/:platform", h.HandleClearPlatformCache)
}

// HandleLibrary returns the unified library.
// @Summary Get Unified Library
// @Description Returns every owned game merged across platforms, sorted by name. Served from cache unless refresh is set.
// @Tags library
// @Produce json
// @Param refresh query boolean false "Fetch every platform again"
// @Success 200 {object} map[string]interface{} "Unified Library"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library [get]
func (h *Handler) HandleLibrary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	refresh := c.QueryBool("refresh")

	games, err := h.service.Library(c.UserContext(), refresh)
	if err != nil {
		l.Error("Library build failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"count": len(games),
		"games": games,
	})
}

// HandlePlatforms lists the platforms and whether each is configured.
// @Summary List Platforms
// @Tags library
// @Produce json
// @Success 200 {array} PlatformInfo
// @Router /library/platforms [get]
func (h *Handler) HandlePlatforms(c *fiber.Ctx) error {
	return c.JSON(h.service.Platforms())
}

// HandlePlatformGames returns the raw library of one platform.
// @Summary Get Platform Library
// @Description Returns the platform's games in its native shape.
// @Tags library
// @Produce json
// @Param platform path string true "Platform key or name (steam, xbox, gog, epic, amazon)"
// @Param refresh query boolean false "Fetch the platform again"
// @Success 200 {object} map[string]interface{} "Platform Library"
// @Failure 400 {object} map[string]string "Unknown Platform"
// @Failure 404 {object} map[string]string "Platform Not Configured"
// @Failure 502 {object} map[string]string "Upstream Failure"
// @Router /library/platforms/{platform} [get]
func (h *Handler) HandlePlatformGames(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	p, err := unify.ParsePlatform(c.Params("platform"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	games, err := h.service.PlatformGames(c.UserContext(), p, c.QueryBool("refresh"))
	if errors.Is(err, ErrPlatformDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Platform fetch failed", zap.String("platform", p.String()), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"platform": p,
		"count":    len(games),
		"games":    games,
	})
}

// HandleCacheStatus reports cached snapshots.
// @Summary Cache Status
// @Description Lists cached snapshots with their size, age and expiry.
// @Tags library
// @Produce json
// @Success 200 {object} map[string]cache.Entry
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/cache [get]
func (h *Handler) HandleCacheStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	status, err := h.service.CacheStatus(c.UserContext())
	if err != nil {
		l.Error("Cache status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleClearCache drops every snapshot.
// @Summary Clear Cache
// @Tags library
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/cache [delete]
func (h *Handler) HandleClearCache(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.ClearCache(c.UserContext(), nil); err != nil {
		l.Error("Cache clear failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "cleared"})
}

// HandleClearPlatformCache drops one platform's snapshot and the unified list.
// @Summary Clear Platform Cache
// @Tags library
// @Produce json
// @Param platform path string true "Platform key or name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Unknown Platform"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/cache/{platform} [delete]
func (h *Handler) HandleClearPlatformCache(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	p, err := unify.ParsePlatform(c.Params("platform"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.ClearCache(c.UserContext(), &p); err != nil {
		l.Error("Cache clear failed", zap.String("platform", p.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "cleared", "platform": p})
}
