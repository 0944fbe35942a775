// Package memory provides in-process implementations of the persistence
// ports, used in development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"snipvault/application/ports"
	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
	"snipvault/pkg/errors"
)

// FileRepository is a mutex-protected map-backed file store
type FileRepository struct {
	mu    sync.RWMutex
	files map[string]*entities.CodeFile
}

// NewFileRepository creates an empty in-memory file repository
func NewFileRepository() *FileRepository {
	return &FileRepository{
		files: make(map[string]*entities.CodeFile),
	}
}

var _ ports.FileRepository = (*FileRepository)(nil)

// FindByID returns the file or a NOT_FOUND error
func (r *FileRepository) FindByID(ctx context.Context, id valueobjects.FileID) (*entities.CodeFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file, ok := r.files[id.String()]
	if !ok {
		return nil, errors.NewNotFoundError("file", id.String())
	}
	return cloneFile(file), nil
}

// FindByOwner returns all files created by the given user, newest first
func (r *FileRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entities.CodeFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entities.CodeFile
	for _, file := range r.files {
		if file.CreatedBy() == ownerID {
			result = append(result, cloneFile(file))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt().After(result[j].UpdatedAt())
	})
	return result, nil
}

// CountByOwner returns how many files the given user owns
func (r *FileRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, file := range r.files {
		if file.CreatedBy() == ownerID {
			count++
		}
	}
	return count, nil
}

// Insert stores a new file
func (r *FileRepository) Insert(ctx context.Context, file *entities.CodeFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files[file.ID().String()] = cloneFile(file)
	return nil
}

// UpdateByID replaces the stored file, failing if it no longer exists
func (r *FileRepository) UpdateByID(ctx context.Context, file *entities.CodeFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := file.ID().String()
	if _, ok := r.files[key]; !ok {
		return errors.NewNotFoundError("file", key)
	}
	r.files[key] = cloneFile(file)
	return nil
}

// DeleteByID removes the file, failing if it does not exist
func (r *FileRepository) DeleteByID(ctx context.Context, id valueobjects.FileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if _, ok := r.files[key]; !ok {
		return errors.NewNotFoundError("file", key)
	}
	delete(r.files, key)
	return nil
}

// cloneFile keeps callers from mutating the stored entity in place
func cloneFile(f *entities.CodeFile) *entities.CodeFile {
	clone := *f
	return &clone
}
