// Package persistence holds adapters shared by the concrete repository
// drivers.
package persistence

import (
	"context"

	"snipvault/application/ports"
	"snipvault/domain/core/entities"
)

// userCacheTTLSeconds bounds how stale a cached user record can get.
// Role changes take effect within this window.
const userCacheTTLSeconds = 60

// CachedUserRepository decorates a UserRepository with a short-lived
// read cache. User records are loaded on every authorized mutation and
// change rarely, so this saves a backend round-trip per write. Misses
// and not-found results are never cached.
type CachedUserRepository struct {
	inner ports.UserRepository
	cache ports.Cache
}

// NewCachedUserRepository wraps a repository with the read cache
func NewCachedUserRepository(inner ports.UserRepository, cache ports.Cache) *CachedUserRepository {
	return &CachedUserRepository{inner: inner, cache: cache}
}

var _ ports.UserRepository = (*CachedUserRepository)(nil)

func userKey(id string) string {
	return "user:" + id
}

// FindByID retrieves a user, serving recent lookups from the cache
func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if value, ok := r.cache.Get(ctx, userKey(id)); ok {
		if user, ok := value.(*entities.User); ok {
			return user, nil
		}
	}

	user, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, userKey(id), user, userCacheTTLSeconds)
	return user, nil
}

// Upsert writes through and drops the cached record
func (r *CachedUserRepository) Upsert(ctx context.Context, user *entities.User) error {
	if err := r.inner.Upsert(ctx, user); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, userKey(user.ID()))
	return nil
}
