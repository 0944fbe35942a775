package services

import (
	"testing"

	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, id string, role valueobjects.Role) *entities.User {
	t.Helper()
	user, err := entities.NewUser(id, "Test User", "test@example.com", role)
	require.NoError(t, err)
	return user
}

func newTestFile(t *testing.T, owner string, visibility valueobjects.Visibility, editMode valueobjects.EditMode) *entities.CodeFile {
	t.Helper()
	content, err := valueobjects.NewFileContent("Test File", "console.log('hi')")
	require.NoError(t, err)
	file, err := entities.NewCodeFile(owner, content, valueobjects.LanguageJavaScript, visibility, editMode)
	require.NoError(t, err)
	return file
}

func TestPermissionGate_CanCreate_QuotaEnforced(t *testing.T) {
	gate := NewPermissionGate(nil)
	user := newTestUser(t, "user1", valueobjects.RoleUser)

	assert.True(t, gate.CanCreate(user, 0))
	assert.True(t, gate.CanCreate(user, 4))
	assert.False(t, gate.CanCreate(user, 5))
	assert.False(t, gate.CanCreate(user, 10))
}

func TestPermissionGate_CanCreate_AdminBypassesQuota(t *testing.T) {
	gate := NewPermissionGate(nil)
	admin := newTestUser(t, "admin1", valueobjects.RoleAdmin)

	assert.True(t, gate.CanCreate(admin, 5))
	assert.True(t, gate.CanCreate(admin, 500))
}

func TestPermissionGate_CanCreate_NilUser(t *testing.T) {
	gate := NewPermissionGate(nil)
	assert.False(t, gate.CanCreate(nil, 0))
}

func TestPermissionGate_CanEdit_OwnerMode(t *testing.T) {
	gate := NewPermissionGate(nil)
	owner := newTestUser(t, "owner1", valueobjects.RoleUser)
	other := newTestUser(t, "other1", valueobjects.RoleUser)
	file := newTestFile(t, "owner1", valueobjects.VisibilityPublic, valueobjects.EditModeOwner)

	assert.True(t, gate.CanEdit(owner, file))
	assert.False(t, gate.CanEdit(other, file))
	assert.False(t, gate.CanEdit(nil, file))
}

func TestPermissionGate_CanEdit_CollaborativeMode(t *testing.T) {
	gate := NewPermissionGate(nil)
	other := newTestUser(t, "other1", valueobjects.RoleUser)
	file := newTestFile(t, "owner1", valueobjects.VisibilityPublic, valueobjects.EditModeCollaborative)

	assert.True(t, gate.CanEdit(other, file))
}

func TestPermissionGate_CanEdit_PrivateCollaborativeStillEditable(t *testing.T) {
	// Visibility and edit mode are independent axes
	gate := NewPermissionGate(nil)
	other := newTestUser(t, "other1", valueobjects.RoleUser)
	file := newTestFile(t, "owner1", valueobjects.VisibilityPrivate, valueobjects.EditModeCollaborative)

	assert.True(t, gate.CanEdit(other, file))
}

func TestPermissionGate_CanDelete_OwnerOnly(t *testing.T) {
	gate := NewPermissionGate(nil)
	owner := newTestUser(t, "owner1", valueobjects.RoleUser)
	collaborator := newTestUser(t, "other1", valueobjects.RoleUser)
	admin := newTestUser(t, "admin1", valueobjects.RoleAdmin)
	file := newTestFile(t, "owner1", valueobjects.VisibilityPublic, valueobjects.EditModeCollaborative)

	assert.True(t, gate.CanDelete(owner, file))
	// Collaborative edit rights never extend to deletion
	assert.False(t, gate.CanDelete(collaborator, file))
	assert.False(t, gate.CanDelete(admin, file))
	assert.False(t, gate.CanDelete(nil, file))
}

func TestPermissionGate_CanRead_PublicVisibleToAnyone(t *testing.T) {
	gate := NewPermissionGate(nil)
	other := newTestUser(t, "other1", valueobjects.RoleUser)
	file := newTestFile(t, "owner1", valueobjects.VisibilityPublic, valueobjects.EditModeOwner)

	assert.True(t, gate.CanRead(other, file))
	assert.True(t, gate.CanRead(nil, file))
}

func TestPermissionGate_CanRead_PrivateOwnerOnly(t *testing.T) {
	gate := NewPermissionGate(nil)
	owner := newTestUser(t, "owner1", valueobjects.RoleUser)
	other := newTestUser(t, "other1", valueobjects.RoleUser)
	file := newTestFile(t, "owner1", valueobjects.VisibilityPrivate, valueobjects.EditModeOwner)

	assert.True(t, gate.CanRead(owner, file))
	assert.False(t, gate.CanRead(other, file))
	assert.False(t, gate.CanRead(nil, file))
}
