package entities

import (
	"time"

	"snipvault/domain/core/valueobjects"
	pkgerrors "snipvault/pkg/errors"
)

// User is the identity record behind a session. Identity issuance lives
// with the external provider; this entity only carries what authorization
// decisions need.
type User struct {
	id        string
	name      string
	email     string
	role      valueobjects.Role
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user record
func NewUser(id, name, email string, role valueobjects.Role) (*User, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("user ID cannot be empty")
	}
	if !role.IsValid() {
		role = valueobjects.RoleUser
	}

	now := time.Now()
	return &User{
		id:        id,
		name:      name,
		email:     email,
		role:      role,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a user from repository data
func ReconstructUser(id, name, email string, role valueobjects.Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		role:      role,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user identifier
func (u *User) ID() string { return u.id }

// Name returns the display name
func (u *User) Name() string { return u.name }

// Email returns the email address
func (u *User) Email() string { return u.email }

// Role returns the authorization role
func (u *User) Role() valueobjects.Role { return u.role }

// CreatedAt returns the creation timestamp
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last update timestamp
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.role == valueobjects.RoleAdmin
}
