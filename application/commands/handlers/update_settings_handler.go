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

// UpdateSettingsHandler handles partial settings update commands
type UpdateSettingsHandler struct {
	fileRepo    ports.FileRepository
	userRepo    ports.UserRepository
	gate        *services.PermissionGate
	invalidator ports.ViewInvalidator
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewUpdateSettingsHandler creates a new handler instance
func NewUpdateSettingsHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		gate:        gate,
		invalidator: invalidator,
		cfg:         cfg,
		logger:      logger,
	}
}

// Handle executes the update settings command and returns the updated file
func (h *UpdateSettingsHandler) Handle(ctx context.Context, cmd commands.UpdateSettingsCommand) (*entities.CodeFile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	if cmd.IsEmpty() {
		return nil, pkgerrors.NewValidationError("no settings supplied")
	}

	fileID, err := valueobjects.NewFileIDFromString(cmd.FileID)
	if err != nil {
		return nil, err
	}

	user, err := h.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewForbiddenError("unknown user")
		}
		return nil, err
	}

	file, err := h.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !h.gate.CanEdit(user, file) {
		h.logger.Warn("forbidden settings update",
			zap.String("userID", cmd.UserID),
			zap.String("fileID", cmd.FileID),
		)
		return nil, pkgerrors.NewForbiddenError("you do not have edit access to this file")
	}

	update := entities.SettingsUpdate{Title: cmd.Title}
	if cmd.Language != nil {
		language, err := valueobjects.ParseLanguage(*cmd.Language)
		if err != nil {
			return nil, err
		}
		update.Language = &language
	}
	if cmd.Visibility != nil {
		visibility, err := valueobjects.ParseVisibility(*cmd.Visibility)
		if err != nil {
			return nil, err
		}
		update.Visibility = &visibility
	}
	if cmd.EditMode != nil {
		editMode, err := valueobjects.ParseEditMode(*cmd.EditMode)
		if err != nil {
			return nil, err
		}
		update.EditMode = &editMode
	}

	if err := file.ApplySettings(update, h.cfg); err != nil {
		return nil, err
	}

	if err := h.fileRepo.UpdateByID(ctx, file); err != nil {
		return nil, pkgerrors.NewSaveFailedError("file settings", err)
	}

	// Sharing changes affect how others discover and edit the file, so
	// the file view goes stale along with the dashboard listing.
	if update.SharingChanged() {
		h.invalidator.Invalidate(ctx, ports.ViewFile, file.ID().String())
	}
	h.invalidator.Invalidate(ctx, ports.ViewDashboard, file.ID().String())

	h.logger.Info("file settings updated",
		zap.String("fileID", cmd.FileID),
		zap.String("userID", cmd.UserID),
		zap.Bool("sharingChanged", update.SharingChanged()),
	)
	return file, nil
}
