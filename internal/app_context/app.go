package appcontext

import (
	"pdf-review-server/internal/config"
	filestorage "pdf-review-server/internal/file_storage"
	"pdf-review-server/internal/repository"
	"pdf-review-server/internal/service"

	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Service coordinates the project registry, comment store and asset
	// storage; controllers go through it rather than the repositories.
	Service service.AnnotationService

	Storage filestorage.AssetStorage
}
