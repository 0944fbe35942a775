// Package handlers translates HTTP requests into commands and queries.
package handlers

import (
	"net/http"
	"time"

	"snipvault/application/commands"
	cmdhandlers "snipvault/application/commands/handlers"
	"snipvault/application/queries"
	"snipvault/domain/core/entities"
	"snipvault/pkg/auth"
	"snipvault/pkg/common"
	apperrors "snipvault/pkg/errors"
	"snipvault/pkg/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Request bodies larger than this are rejected before JSON decoding.
// Content caps at 500000 bytes; the slack covers the JSON envelope.
const maxBodyBytes = 600 * 1024

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	createFile     *cmdhandlers.CreateFileHandler
	updateContent  *cmdhandlers.UpdateContentHandler
	updateSettings *cmdhandlers.UpdateSettingsHandler
	deleteFile     *cmdhandlers.DeleteFileHandler
	getFile        *queries.GetFileHandler
	listFiles      *queries.ListFilesHandler
	metrics        *observability.Collector
	logger         *zap.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(
	createFile *cmdhandlers.CreateFileHandler,
	updateContent *cmdhandlers.UpdateContentHandler,
	updateSettings *cmdhandlers.UpdateSettingsHandler,
	deleteFile *cmdhandlers.DeleteFileHandler,
	getFile *queries.GetFileHandler,
	listFiles *queries.ListFilesHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *FileHandler {
	return &FileHandler{
		createFile:     createFile,
		updateContent:  updateContent,
		updateSettings: updateSettings,
		deleteFile:     deleteFile,
		getFile:        getFile,
		listFiles:      listFiles,
		metrics:        metrics,
		logger:         logger,
	}
}

// CreateFileRequest represents the request body for creating a file
type CreateFileRequest struct {
	Title      string `json:"title"`
	Language   string `json:"language,omitempty"`
	Content    string `json:"content,omitempty"`
	Visibility string `json:"visibility,omitempty"`
	EditMode   string `json:"editMode,omitempty"`
}

// UpdateContentRequest represents the request body for saving content
type UpdateContentRequest struct {
	Content string  `json:"content"`
	Title   *string `json:"title,omitempty"`
}

// UpdateSettingsRequest represents the request body for a settings change
type UpdateSettingsRequest struct {
	Title      *string `json:"title,omitempty"`
	Language   *string `json:"language,omitempty"`
	Visibility *string `json:"visibility,omitempty"`
	EditMode   *string `json:"editMode,omitempty"`
}

// FileResponse represents a file in API responses
type FileResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Language   string `json:"language"`
	Visibility string `json:"visibility"`
	EditMode   string `json:"editMode"`
	CreatedBy  string `json:"createdBy"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func toFileResponse(file *entities.CodeFile) FileResponse {
	return FileResponse{
		ID:         file.ID().String(),
		Title:      file.Content().Title(),
		Content:    file.Content().Content(),
		Language:   string(file.Language()),
		Visibility: string(file.Visibility()),
		EditMode:   string(file.EditMode()),
		CreatedBy:  file.CreatedBy(),
		CreatedAt:  file.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:  file.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

// CreateFile handles POST /files
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthorizedError(""))
		return
	}

	var req CreateFileRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	// Absent settings fall back to the domain defaults
	if req.Language == "" {
		req.Language = "javascript"
	}
	if req.Visibility == "" {
		req.Visibility = "public"
	}
	if req.EditMode == "" {
		req.EditMode = "owner"
	}

	cmd := commands.CreateFileCommand{
		UserID:     user.UserID,
		Title:      req.Title,
		Language:   req.Language,
		Content:    req.Content,
		Visibility: req.Visibility,
		EditMode:   req.EditMode,
	}

	file, err := h.createFile.Handle(r.Context(), cmd)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeQuotaExceeded) {
			h.metrics.QuotaRejected.Inc()
		}
		common.RespondAppError(w, err)
		return
	}

	h.metrics.FilesCreated.Inc()
	common.RespondJSON(w, http.StatusCreated, toFileResponse(file))
}

// ListFiles handles GET /files
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthorizedError(""))
		return
	}

	result, err := h.listFiles.Handle(r.Context(), queries.ListFilesQuery{UserID: user.UserID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetFile handles GET /files/{fileID}. Authentication is optional:
// public files resolve for anonymous readers.
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	query := queries.GetFileQuery{FileID: chi.URLParam(r, "fileID")}
	if user, err := auth.GetUserFromContext(r.Context()); err == nil {
		query.UserID = user.UserID
	}

	result, err := h.getFile.Handle(r.Context(), query)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetContent handles GET /files/{fileID}/content, the slim payload the
// editor polls when re-syncing a session.
func (h *FileHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	query := queries.GetFileQuery{FileID: chi.URLParam(r, "fileID")}
	if user, err := auth.GetUserFromContext(r.Context()); err == nil {
		query.UserID = user.UserID
	}

	result, err := h.getFile.Handle(r.Context(), query)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"content":   result.Content,
		"title":     result.Title,
		"updatedAt": result.UpdatedAt,
		"canEdit":   result.CanEdit,
	})
}

// UpdateContent handles PUT /files/{fileID}/content
func (h *FileHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthorizedError(""))
		return
	}

	var req UpdateContentRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	cmd := commands.UpdateContentCommand{
		UserID:  user.UserID,
		FileID:  chi.URLParam(r, "fileID"),
		Content: req.Content,
		Title:   req.Title,
	}

	result, err := h.updateContent.Handle(r.Context(), cmd)
	if err != nil {
		h.metrics.SavesTotal.WithLabelValues("error").Inc()
		common.RespondAppError(w, err)
		return
	}

	h.metrics.SavesTotal.WithLabelValues("ok").Inc()
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"saved":   !result.Skipped,
		"skipped": result.Skipped,
	})
}

// UpdateSettings handles PATCH /files/{fileID}
func (h *FileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthorizedError(""))
		return
	}

	var req UpdateSettingsRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	cmd := commands.UpdateSettingsCommand{
		UserID:     user.UserID,
		FileID:     chi.URLParam(r, "fileID"),
		Title:      req.Title,
		Language:   req.Language,
		Visibility: req.Visibility,
		EditMode:   req.EditMode,
	}
	if cmd.IsEmpty() {
		common.RespondAppError(w, apperrors.NewValidationError("no settings supplied"))
		return
	}

	file, err := h.updateSettings.Handle(r.Context(), cmd)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toFileResponse(file))
}

// DeleteFile handles DELETE /files/{fileID}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthorizedError(""))
		return
	}

	cmd := commands.DeleteFileCommand{
		UserID: user.UserID,
		FileID: chi.URLParam(r, "fileID"),
	}

	if err := h.deleteFile.Handle(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.metrics.FilesDeleted.Inc()
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
