//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"snipvault/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideFileRepository,
	ProvideUserRepository,
	ProvidePermissionGate,
	ProvideViewInvalidator,
	ProvideRateLimiter,
	ProvideJWTValidator,
	ProvideMetrics,
	ProvideCache,
	ProvideCreateFileHandler,
	ProvideUpdateContentHandler,
	ProvideUpdateSettingsHandler,
	ProvideDeleteFileHandler,
	ProvideGetFileHandler,
	ProvideListFilesHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
