package services

import (
	"snipvault/domain/config"
	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
)

// PermissionGate holds the authorization predicates every mutation
// passes through. All checks are pure functions over the user and file
// state; callers supply the owned-file count for quota decisions.
//
// Collaborative edit mode grants edit access on its own: visibility and
// edit mode are independent axes, so a private collaborative file is
// editable by anyone who can reach it.
type PermissionGate struct {
	cfg *config.DomainConfig
}

// NewPermissionGate creates a gate with the given domain configuration
func NewPermissionGate(cfg *config.DomainConfig) *PermissionGate {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &PermissionGate{cfg: cfg}
}

// CanCreate reports whether the user may create another file.
// Admins bypass the per-user quota.
func (g *PermissionGate) CanCreate(user *entities.User, ownedFileCount int) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return ownedFileCount < g.cfg.MaxFilesPerUser
}

// CanEdit reports whether the user may modify the file's content
func (g *PermissionGate) CanEdit(user *entities.User, file *entities.CodeFile) bool {
	if user == nil || file == nil {
		return false
	}
	if file.IsOwnedBy(user.ID()) {
		return true
	}
	return file.EditMode() == valueobjects.EditModeCollaborative
}

// CanDelete reports whether the user may delete the file.
// Delete rights never extend to collaborators.
func (g *PermissionGate) CanDelete(user *entities.User, file *entities.CodeFile) bool {
	if user == nil || file == nil {
		return false
	}
	return file.IsOwnedBy(user.ID())
}

// CanRead reports whether the user may view the file
func (g *PermissionGate) CanRead(user *entities.User, file *entities.CodeFile) bool {
	if file == nil {
		return false
	}
	if file.Visibility() == valueobjects.VisibilityPublic {
		return true
	}
	return user != nil && file.IsOwnedBy(user.ID())
}
