package memory

import (
	"context"
	"sync"

	"snipvault/application/ports"
	"snipvault/domain/core/entities"
	"snipvault/pkg/errors"
)

// UserRepository is a mutex-protected map-backed user store
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*entities.User),
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// FindByID returns the user or a NOT_FOUND error
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user", id)
	}
	clone := *user
	return &clone, nil
}

// Upsert stores or replaces the user record
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	r.users[user.ID()] = &clone
	return nil
}
