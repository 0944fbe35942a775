package handlers

import (
	"context"

	"snipvault/application/commands"
	"snipvault/application/ports"
	"snipvault/domain/core/valueobjects"
	"snipvault/domain/services"
	pkgerrors "snipvault/pkg/errors"

	"go.uber.org/zap"
)

// DeleteFileHandler handles file deletion commands. Deletion is
// owner-only: collaborators may edit but never delete.
type DeleteFileHandler struct {
	fileRepo    ports.FileRepository
	userRepo    ports.UserRepository
	gate        *services.PermissionGate
	invalidator ports.ViewInvalidator
	logger      *zap.Logger
}

// NewDeleteFileHandler creates a new handler instance
func NewDeleteFileHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	logger *zap.Logger,
) *DeleteFileHandler {
	return &DeleteFileHandler{
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		gate:        gate,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Handle executes the delete file command
func (h *DeleteFileHandler) Handle(ctx context.Context, cmd commands.DeleteFileCommand) error {
	if err := cmd.Validate(); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	fileID, err := valueobjects.NewFileIDFromString(cmd.FileID)
	if err != nil {
		return err
	}

	user, err := h.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return pkgerrors.NewForbiddenError("unknown user")
		}
		return err
	}

	file, err := h.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}

	if !h.gate.CanDelete(user, file) {
		h.logger.Warn("forbidden delete",
			zap.String("userID", cmd.UserID),
			zap.String("fileID", cmd.FileID),
		)
		return pkgerrors.NewForbiddenError("only the owner can delete a file")
	}

	if err := h.fileRepo.DeleteByID(ctx, fileID); err != nil {
		return pkgerrors.NewSaveFailedError("file deletion", err)
	}

	h.invalidator.Invalidate(ctx, ports.ViewDashboard, cmd.FileID)

	h.logger.Info("file deleted",
		zap.String("fileID", cmd.FileID),
		zap.String("userID", cmd.UserID),
	)
	return nil
}
