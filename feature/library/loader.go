package library

import (
	"library-compare/core/cache"
	"library-compare/core/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new library feature.
func NewFeature(srcs []sources.Source, c *cache.Cache, logger *zap.Logger) *Feature {
	svc := NewService(srcs, c, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
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

// Service exposes the feature's service for the CLI.
func (f *Feature) Service() *Service {
	return f.service
}
