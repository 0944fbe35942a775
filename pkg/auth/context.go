package auth

import (
	"context"
	"errors"
)

// UserContext represents the authenticated identity attached to a request
type UserContext struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

// IsAdmin reports whether the session carries the admin role
func (u *UserContext) IsAdmin() bool {
	return u.Role == "admin"
}

type contextKey string

// UserContextKey is the context key for the authenticated user
const UserContextKey contextKey = "user"

// SetUserInContext adds the user context to a request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// GetUserFromContext extracts the user from a request context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}
