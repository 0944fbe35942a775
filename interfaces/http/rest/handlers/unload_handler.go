package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"snipvault/application/commands"
	cmdhandlers "snipvault/application/commands/handlers"
	"snipvault/pkg/auth"
	"snipvault/pkg/common"
	apperrors "snipvault/pkg/errors"
	"snipvault/pkg/observability"

	"go.uber.org/zap"
)

// UnloadHandler accepts the best-effort save fired while an editor
// session tears down. The sender never reads the response, so the
// handler acknowledges quickly and records failures server-side only.
type UnloadHandler struct {
	updateContent *cmdhandlers.UpdateContentHandler
	metrics       *observability.Collector
	logger        *zap.Logger
}

// NewUnloadHandler creates a new unload handler
func NewUnloadHandler(updateContent *cmdhandlers.UpdateContentHandler, metrics *observability.Collector, logger *zap.Logger) *UnloadHandler {
	return &UnloadHandler{
		updateContent: updateContent,
		metrics:       metrics,
		logger:        logger,
	}
}

// UnloadRequest is the teardown payload
type UnloadRequest struct {
	FileID  string `json:"fileId"`
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
}

// SaveOnUnload handles POST /save-on-unload. Beacon-style senders post
// the JSON payload with a text/plain content type, so the body is
// decoded regardless of the declared type.
func (h *UnloadHandler) SaveOnUnload(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthorizedError(""))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("request body too large"))
		return
	}

	var req UnloadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid payload"))
		return
	}

	cmd := commands.UpdateContentCommand{
		UserID:     user.UserID,
		FileID:     req.FileID,
		Content:    req.Content,
		BestEffort: true,
	}
	if req.Title != "" {
		cmd.Title = &req.Title
	}

	result, err := h.updateContent.Handle(r.Context(), cmd)
	if err != nil {
		// The sender is already gone; log and report the mapped status
		// for the rare caller that does wait.
		h.logger.Warn("unload save rejected",
			zap.String("userID", user.UserID),
			zap.String("fileID", req.FileID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	if !result.Skipped {
		h.metrics.UnloadSaves.Inc()
	}
	common.RespondJSON(w, http.StatusAccepted, map[string]interface{}{
		"saved":   !result.Skipped,
		"skipped": result.Skipped,
	})
}
