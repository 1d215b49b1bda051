package icons

import (
	"net/http"

	"library-compare/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new icons feature.
func NewFeature(client storage.Client, bucket string, httpClient *http.Client, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, httpClient, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "icons"
}

// IsEnabled is false without a storage client.
func (f *Feature) IsEnabled() bool {
	return f.service.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
