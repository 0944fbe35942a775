package handlers

import (
	"context"
	"strings"

	"snipvault/application/commands"
	"snipvault/application/ports"
	"snipvault/domain/config"
	"snipvault/domain/core/valueobjects"
	"snipvault/domain/services"
	pkgerrors "snipvault/pkg/errors"

	"go.uber.org/zap"
)

// UpdateContentResult reports the outcome of a content save
type UpdateContentResult struct {
	// Skipped is set when a best-effort save carried empty content while
	// the stored record was non-empty, so the write was dropped to avoid
	// erasing data from a flaky teardown capture.
	Skipped bool
}

// UpdateContentHandler handles content save commands, including the
// autosave path and the best-effort unload path.
type UpdateContentHandler struct {
	fileRepo    ports.FileRepository
	userRepo    ports.UserRepository
	gate        *services.PermissionGate
	invalidator ports.ViewInvalidator
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewUpdateContentHandler creates a new handler instance
func NewUpdateContentHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	invalidator ports.ViewInvalidator,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *UpdateContentHandler {
	return &UpdateContentHandler{
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		gate:        gate,
		invalidator: invalidator,
		cfg:         cfg,
		logger:      logger,
	}
}

// Handle executes the update content command
func (h *UpdateContentHandler) Handle(ctx context.Context, cmd commands.UpdateContentCommand) (*UpdateContentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	if err := valueobjects.ValidateContentLength(cmd.Content, h.cfg); err != nil {
		return nil, err
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
		h.logger.Warn("forbidden content update",
			zap.String("userID", cmd.UserID),
			zap.String("fileID", cmd.FileID),
		)
		return nil, pkgerrors.NewForbiddenError("you do not have edit access to this file")
	}

	if cmd.BestEffort && strings.TrimSpace(cmd.Content) == "" &&
		strings.TrimSpace(file.Content().Content()) != "" {
		return &UpdateContentResult{Skipped: true}, nil
	}

	title := file.Content().Title()
	titleChanged := false
	if cmd.Title != nil && *cmd.Title != title {
		title = *cmd.Title
		titleChanged = true
	}

	content, err := valueobjects.NewFileContentWithConfig(title, cmd.Content, h.cfg)
	if err != nil {
		return nil, err
	}

	file.UpdateContent(content)
	if err := h.fileRepo.UpdateByID(ctx, file); err != nil {
		return nil, pkgerrors.NewSaveFailedError("file content", err)
	}

	h.invalidator.Invalidate(ctx, ports.ViewFile, file.ID().String())
	if titleChanged {
		h.invalidator.Invalidate(ctx, ports.ViewDashboard, file.ID().String())
	}

	h.logger.Debug("file content saved",
		zap.String("fileID", cmd.FileID),
		zap.String("userID", cmd.UserID),
		zap.Int("contentLength", len(cmd.Content)),
		zap.Bool("bestEffort", cmd.BestEffort),
	)
	return &UpdateContentResult{}, nil
}
