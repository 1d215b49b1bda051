package status

import (
	"library-compare/core/cache"
	"library-compare/core/sources"
	"library-compare/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new status feature.
func NewFeature(client storage.Client, bucket string, db *gorm.DB, cacheDriver string, c *cache.Cache, srcs []sources.Source, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, db, cacheDriver, c, srcs, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "status"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
