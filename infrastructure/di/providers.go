package di

import (
	"context"
	"fmt"

	"snipvault/application/commands/handlers"
	"snipvault/application/ports"
	"snipvault/application/queries"
	domaincfg "snipvault/domain/config"
	"snipvault/domain/services"
	"snipvault/infrastructure/config"
	"snipvault/infrastructure/messaging"
	"snipvault/infrastructure/messaging/eventbridge"
	"snipvault/infrastructure/persistence"
	dynamorepo "snipvault/infrastructure/persistence/dynamodb"
	"snipvault/infrastructure/persistence/memory"
	"snipvault/pkg/auth"
	"snipvault/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDomainConfig supplies the domain limits
func ProvideDomainConfig() *domaincfg.DomainConfig {
	return domaincfg.DefaultDomainConfig()
}

// ProvideAWSConfig creates AWS configuration. Only the DynamoDB and
// EventBridge drivers read it; the memory drivers never touch AWS.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideFileRepository selects the file repository driver
func ProvideFileRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) (ports.FileRepository, error) {
	switch cfg.PersistenceDriver {
	case "dynamodb":
		return dynamorepo.NewFileRepository(client, cfg.DynamoDBTable, cfg.OwnerIndex, logger), nil
	case "memory":
		return memory.NewFileRepository(), nil
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", cfg.PersistenceDriver)
	}
}

// ProvideUserRepository selects the user repository driver. Every write
// path loads the caller's user record, so the driver is wrapped with a
// short-lived read cache.
func ProvideUserRepository(cfg *config.Config, client *awsdynamodb.Client, cache ports.Cache, logger *zap.Logger) (ports.UserRepository, error) {
	var inner ports.UserRepository
	switch cfg.PersistenceDriver {
	case "dynamodb":
		inner = dynamorepo.NewUserRepository(client, cfg.DynamoDBTable, logger)
	case "memory":
		inner = memory.NewUserRepository()
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", cfg.PersistenceDriver)
	}
	return persistence.NewCachedUserRepository(inner, cache), nil
}

// ProvidePermissionGate creates the authorization service
func ProvidePermissionGate(domainCfg *domaincfg.DomainConfig) *services.PermissionGate {
	return services.NewPermissionGate(domainCfg)
}

// ProvideViewInvalidator picks the invalidation publisher. Without an
// event bus, invalidations are only logged.
func ProvideViewInvalidator(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.ViewInvalidator {
	if cfg.EnableInvalidations {
		return eventbridge.NewInvalidationPublisher(client, cfg.EventBusName, logger)
	}
	return messaging.NewLoggingInvalidator(logger)
}

// ProvideRateLimiter selects the rate limiter backend
func ProvideRateLimiter(cfg *config.Config, client *awsdynamodb.Client) auth.RateLimiter {
	if cfg.RateLimitStore == "dynamodb" {
		return auth.NewDistributedRateLimiter(client, cfg.DynamoDBTable)
	}
	return auth.NewFixedWindowLimiter(auth.NewMemoryCounterStore())
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "local-development-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector("snipvault")
}

// ProvideCache creates the read-path cache
func ProvideCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideCreateFileHandler wires the create command handler
func ProvideCreateFileHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	domainCfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *handlers.CreateFileHandler {
	return handlers.NewCreateFileHandler(fileRepo, userRepo, gate, invalidator, domainCfg, logger)
}

// ProvideUpdateContentHandler wires the content save handler
func ProvideUpdateContentHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	domainCfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *handlers.UpdateContentHandler {
	return handlers.NewUpdateContentHandler(fileRepo, userRepo, gate, invalidator, domainCfg, logger)
}

// ProvideUpdateSettingsHandler wires the settings handler
func ProvideUpdateSettingsHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	domainCfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *handlers.UpdateSettingsHandler {
	return handlers.NewUpdateSettingsHandler(fileRepo, userRepo, gate, invalidator, domainCfg, logger)
}

// ProvideDeleteFileHandler wires the delete handler
func ProvideDeleteFileHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	logger *zap.Logger,
) *handlers.DeleteFileHandler {
	return handlers.NewDeleteFileHandler(fileRepo, userRepo, gate, invalidator, logger)
}

// ProvideGetFileHandler wires the single-file query handler
func ProvideGetFileHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	logger *zap.Logger,
) *queries.GetFileHandler {
	return queries.NewGetFileHandler(fileRepo, userRepo, gate, logger)
}

// ProvideListFilesHandler wires the listing query handler
func ProvideListFilesHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	domainCfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *queries.ListFilesHandler {
	return queries.NewListFilesHandler(fileRepo, userRepo, gate, domainCfg, logger)
}
