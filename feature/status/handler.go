package status

import (
	"library-compare/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for service status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/status")
	group.Get("/", h.HandleStatus)
	group.Get("/platforms", h.HandlePlatforms)
}

// HandleStatus runs every check.
// @Summary Service Status
// @Description Checks the icon bucket, the snapshot table schema and the cache, and lists configured platforms.
// @Tags status
// @Produce json
// @Success 200 {object} Report
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report := h.service.Check(c.UserContext())
	if report.Status != StatusOK {
		l.Warn("Status check degraded",
			zap.String("storage", report.Storage.Status),
			zap.String("database", report.Database.Status),
			zap.String("cache", report.Cache.Status),
		)
	}
	return c.JSON(report)
}

// HandlePlatforms lists configured and missing platforms.
// @Summary Platform Configuration
// @Tags status
// @Produce json
// @Success 200 {object} PlatformReport
// @Router /status/platforms [get]
func (h *Handler) HandlePlatforms(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckPlatforms())
}
