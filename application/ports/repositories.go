package ports

import (
	"context"

	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
)

// FileRepository defines the persistence port for code files.
// Implementations return a NotFound application error when the ID does
// not resolve to a record.
type FileRepository interface {
	// FindByID retrieves a file by its ID
	FindByID(ctx context.Context, id valueobjects.FileID) (*entities.CodeFile, error)

	// FindByOwner retrieves all files created by a user
	FindByOwner(ctx context.Context, userID string) ([]*entities.CodeFile, error)

	// CountByOwner counts the files created by a user
	CountByOwner(ctx context.Context, userID string) (int, error)

	// Insert persists a new file record
	Insert(ctx context.Context, file *entities.CodeFile) error

	// UpdateByID replaces the stored record with the given state
	UpdateByID(ctx context.Context, file *entities.CodeFile) error

	// DeleteByID removes a file record
	DeleteByID(ctx context.Context, id valueobjects.FileID) error
}

// UserRepository defines the persistence port for user records
type UserRepository interface {
	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id string) (*entities.User, error)

	// Upsert stores a user record, replacing an existing one
	Upsert(ctx context.Context, user *entities.User) error
}

// View names a server-rendered surface whose cached output depends on
// file state.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewFile      View = "file"
)

// ViewInvalidator notifies the rendering layer that a view's cached
// output is stale. Delivery is best-effort; mutations do not fail when a
// notification cannot be published.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, view View, fileID string)
}

// Cache defines the interface for read-path caching
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
