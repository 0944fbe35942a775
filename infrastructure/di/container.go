package di

import (
	"snipvault/application/commands/handlers"
	"snipvault/application/ports"
	"snipvault/application/queries"
	domaincfg "snipvault/domain/config"
	"snipvault/domain/services"
	"snipvault/infrastructure/config"
	"snipvault/pkg/auth"
	"snipvault/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domaincfg.DomainConfig
	Logger       *zap.Logger

	FileRepo    ports.FileRepository
	UserRepo    ports.UserRepository
	Gate        *services.PermissionGate
	Invalidator ports.ViewInvalidator
	Cache       ports.Cache

	CreateFile     *handlers.CreateFileHandler
	UpdateContent  *handlers.UpdateContentHandler
	UpdateSettings *handlers.UpdateSettingsHandler
	DeleteFile     *handlers.DeleteFileHandler
	GetFile        *queries.GetFileHandler
	ListFiles      *queries.ListFilesHandler

	RateLimiter  auth.RateLimiter
	JWTValidator *auth.JWTValidator
	Metrics      *observability.Collector
}
