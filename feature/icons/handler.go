package icons

import (
	"errors"

	"library-compare/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for cached icons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the icon routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/icons")
	group.Get("/", h.HandleIcon)
	group.Get("/size", h.HandleSize)
	group.Delete("/", h.HandleClear)
}

// HandleIcon serves an icon, downloading it into storage on first use.
// @Summary Get Icon
// @Description Streams the image at url from the bucket, fetching and storing it when missing.
// @Tags icons
// @Produce image/png,image/jpeg,image/gif,image/webp,image/svg+xml
// @Param url query string true "Image URL"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Invalid URL"
// @Failure 502 {object} map[string]string "Download Failed"
// @Router /icons [get]
func (h *Handler) HandleIcon(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rawURL := c.Query("url")
	if rawURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url is required"})
	}

	icon, err := h.service.GetOrDownload(c.UserContext(), rawURL)
	switch {
	case errors.Is(err, ErrInvalidURL):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrDownload):
		l.Warn("Icon download failed", zap.String("url", rawURL), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Icon lookup failed", zap.String("url", rawURL), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if icon.ContentType != "" {
		c.Set(fiber.HeaderContentType, icon.ContentType)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	if icon.Cached {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	return c.SendStream(icon.Body, int(icon.Size))
}

// HandleSize reports the size of the icon folder.
// @Summary Icon Cache Size
// @Tags icons
// @Produce json
// @Success 200 {object} SizeReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /icons/size [get]
func (h *Handler) HandleSize(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Size(c.UserContext())
	if err != nil {
		l.Error("Icon size failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleClear removes every cached icon.
// @Summary Clear Icons
// @Tags icons
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /icons [delete]
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	removed, err := h.service.Clear(c.UserContext())
	if err != nil {
		l.Error("Icon clear failed", zap.Int("removed", removed), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "removed": removed})
	}
	return c.JSON(fiber.Map{"status": "cleared", "removed": removed})
}
