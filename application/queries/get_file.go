package queries

import (
	"context"

	"snipvault/application/ports"
	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
	"snipvault/domain/services"
	pkgerrors "snipvault/pkg/errors"

	"go.uber.org/zap"
)

// GetFileQuery retrieves a single file. UserID may be empty for an
// anonymous reader; private files then stay hidden.
type GetFileQuery struct {
	UserID string
	FileID string
}

// FileResult is the read model handed to the interface layer
type FileResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Language   string `json:"language"`
	Visibility string `json:"visibility"`
	EditMode   string `json:"editMode"`
	CreatedBy  string `json:"createdBy"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`

	// CanEdit tells the editor session whether autosave should run
	CanEdit bool `json:"canEdit"`
	// IsOwner gates delete controls
	IsOwner bool `json:"isOwner"`
}

// GetFileHandler resolves GetFileQuery against the repositories
type GetFileHandler struct {
	fileRepo ports.FileRepository
	userRepo ports.UserRepository
	gate     *services.PermissionGate
	logger   *zap.Logger
}

// NewGetFileHandler creates a new handler instance
func NewGetFileHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	logger *zap.Logger,
) *GetFileHandler {
	return &GetFileHandler{
		fileRepo: fileRepo,
		userRepo: userRepo,
		gate:     gate,
		logger:   logger,
	}
}

// Handle executes the query
func (h *GetFileHandler) Handle(ctx context.Context, query GetFileQuery) (*FileResult, error) {
	fileID, err := valueobjects.NewFileIDFromString(query.FileID)
	if err != nil {
		return nil, err
	}

	file, err := h.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	var user *entities.User
	if query.UserID != "" {
		user, err = h.userRepo.FindByID(ctx, query.UserID)
		if err != nil && !pkgerrors.IsNotFound(err) {
			return nil, err
		}
	}

	if !h.gate.CanRead(user, file) {
		// Hide private files rather than confirming their existence
		return nil, pkgerrors.NewNotFoundError("file")
	}

	return toFileResult(file, user, h.gate), nil
}

func toFileResult(file *entities.CodeFile, user *entities.User, gate *services.PermissionGate) *FileResult {
	return &FileResult{
		ID:         file.ID().String(),
		Title:      file.Content().Title(),
		Content:    file.Content().Content(),
		Language:   string(file.Language()),
		Visibility: string(file.Visibility()),
		EditMode:   string(file.EditMode()),
		CreatedBy:  file.CreatedBy(),
		CreatedAt:  file.CreatedAt().UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  file.UpdatedAt().UTC().Format("2006-01-02T15:04:05Z07:00"),
		CanEdit:    gate.CanEdit(user, file),
		IsOwner:    user != nil && file.IsOwnedBy(user.ID()),
	}
}
