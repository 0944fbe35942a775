package handlers

import (
	"context"

	"snipvault/application/commands"
	"snipvault/application/ports"
	"snipvault/domain/config"
	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
	"snipvault/domain/services"
	pkgerrors "snipvault/pkg/errors"

	"go.uber.org/zap"
)

// CreateFileHandler handles file creation commands
type CreateFileHandler struct {
	fileRepo    ports.FileRepository
	userRepo    ports.UserRepository
	gate        *services.PermissionGate
	invalidator ports.ViewInvalidator
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewCreateFileHandler creates a new handler instance
func NewCreateFileHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *CreateFileHandler {
	return &CreateFileHandler{
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		gate:        gate,
		invalidator: invalidator,
		cfg:         cfg,
		logger:      logger,
	}
}

// Handle executes the create file command
func (h *CreateFileHandler) Handle(ctx context.Context, cmd commands.CreateFileCommand) (*entities.CodeFile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	user, err := h.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewForbiddenError("unknown user")
		}
		return nil, err
	}

	count, err := h.fileRepo.CountByOwner(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if !h.gate.CanCreate(user, count) {
		h.logger.Warn("file quota reached",
			zap.String("userID", cmd.UserID),
			zap.Int("ownedFiles", count),
		)
		return nil, pkgerrors.NewQuotaExceededError(h.cfg.MaxFilesPerUser)
	}

	content, err := valueobjects.NewFileContentWithConfig(cmd.Title, cmd.Content, h.cfg)
	if err != nil {
		return nil, err
	}
	language, err := valueobjects.ParseLanguage(cmd.Language)
	if err != nil {
		return nil, err
	}
	visibility, err := valueobjects.ParseVisibility(cmd.Visibility)
	if err != nil {
		return nil, err
	}
	editMode, err := valueobjects.ParseEditMode(cmd.EditMode)
	if err != nil {
		return nil, err
	}

	file, err := entities.NewCodeFile(cmd.UserID, content, language, visibility, editMode)
	if err != nil {
		return nil, err
	}

	if err := h.fileRepo.Insert(ctx, file); err != nil {
		return nil, pkgerrors.NewSaveFailedError("file", err)
	}

	h.invalidator.Invalidate(ctx, ports.ViewDashboard, file.ID().String())

	h.logger.Info("file created",
		zap.String("fileID", file.ID().String()),
		zap.String("userID", cmd.UserID),
	)
	return file, nil
}
