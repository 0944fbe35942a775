package queries

import (
	"context"
	"sort"

	"snipvault/application/ports"
	"snipvault/domain/config"
	"snipvault/domain/services"
	pkgerrors "snipvault/pkg/errors"

	"go.uber.org/zap"
)

// ListFilesQuery retrieves every file owned by a user, newest first,
// along with the caller's quota status for the dashboard.
type ListFilesQuery struct {
	UserID string
}

// QuotaResult reports how much of the file quota is used
type QuotaResult struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Unlimited bool `json:"unlimited"`
}

// ListFilesResult is the dashboard read model
type ListFilesResult struct {
	Files []*FileResult `json:"files"`
	Quota QuotaResult   `json:"quota"`
}

// ListFilesHandler resolves ListFilesQuery
type ListFilesHandler struct {
	fileRepo ports.FileRepository
	userRepo ports.UserRepository
	gate     *services.PermissionGate
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewListFilesHandler creates a new handler instance
func NewListFilesHandler(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	gate *services.PermissionGate,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *ListFilesHandler {
	return &ListFilesHandler{
		fileRepo: fileRepo,
		userRepo: userRepo,
		gate:     gate,
		cfg:      cfg,
		logger:   logger,
	}
}

// Handle executes the query
func (h *ListFilesHandler) Handle(ctx context.Context, query ListFilesQuery) (*ListFilesResult, error) {
	if query.UserID == "" {
		return nil, pkgerrors.NewUnauthorizedError("")
	}

	user, err := h.userRepo.FindByID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	files, err := h.fileRepo.FindByOwner(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].UpdatedAt().After(files[j].UpdatedAt())
	})

	results := make([]*FileResult, 0, len(files))
	for _, file := range files {
		results = append(results, toFileResult(file, user, h.gate))
	}

	return &ListFilesResult{
		Files: results,
		Quota: QuotaResult{
			Used:      len(files),
			Limit:     h.cfg.MaxFilesPerUser,
			Unlimited: user.IsAdmin(),
		},
	}, nil
}
