package queries

import (
	"context"
	"testing"

	"snipvault/domain/config"
	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
	"snipvault/domain/services"
	"snipvault/infrastructure/persistence/memory"
	pkgerrors "snipvault/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type queryEnv struct {
	fileRepo *memory.FileRepository
	userRepo *memory.UserRepository
	gate     *services.PermissionGate
}

func newQueryEnv() *queryEnv {
	return &queryEnv{
		fileRepo: memory.NewFileRepository(),
		userRepo: memory.NewUserRepository(),
		gate:     services.NewPermissionGate(nil),
	}
}

func (e *queryEnv) seedUser(t *testing.T, id string, role valueobjects.Role) {
	t.Helper()
	user, err := entities.NewUser(id, "Test User", id+"@example.com", role)
	require.NoError(t, err)
	require.NoError(t, e.userRepo.Upsert(context.Background(), user))
}

func (e *queryEnv) seedFile(t *testing.T, owner, title string, visibility valueobjects.Visibility, editMode valueobjects.EditMode) *entities.CodeFile {
	t.Helper()
	content, err := valueobjects.NewFileContent(title, "body of "+title)
	require.NoError(t, err)
	file, err := entities.NewCodeFile(owner, content, valueobjects.LanguageJavaScript, visibility, editMode)
	require.NoError(t, err)
	require.NoError(t, e.fileRepo.Insert(context.Background(), file))
	return file
}

func TestGetFileHandler_PublicFileVisibleToAnonymous(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	file := env.seedFile(t, "owner1", "Public File", valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	handler := NewGetFileHandler(env.fileRepo, env.userRepo, env.gate, zap.NewNop())

	result, err := handler.Handle(ctx, GetFileQuery{FileID: file.ID().String()})
	require.NoError(t, err)

	assert.Equal(t, "Public File", result.Title)
	assert.False(t, result.CanEdit, "anonymous readers never get edit access")
	assert.False(t, result.IsOwner)
}

func TestGetFileHandler_PrivateFileHiddenFromOthers(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	env.seedUser(t, "other1", valueobjects.RoleUser)
	file := env.seedFile(t, "owner1", "Secret", valueobjects.VisibilityPrivate, valueobjects.EditModeOwner)
	handler := NewGetFileHandler(env.fileRepo, env.userRepo, env.gate, zap.NewNop())

	// Both anonymous and authenticated non-owners get the same not-found,
	// so existence is never confirmed
	_, err := handler.Handle(ctx, GetFileQuery{FileID: file.ID().String()})
	require.Error(t, err)
	appErr, ok := err.(*pkgerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.ErrorTypeNotFound, appErr.Type)

	_, err = handler.Handle(ctx, GetFileQuery{UserID: "other1", FileID: file.ID().String()})
	require.Error(t, err)
	appErr, ok = err.(*pkgerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.ErrorTypeNotFound, appErr.Type)
}

func TestGetFileHandler_OwnerSeesPrivateFile(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	env.seedUser(t, "owner1", valueobjects.RoleUser)
	file := env.seedFile(t, "owner1", "Secret", valueobjects.VisibilityPrivate, valueobjects.EditModeOwner)
	handler := NewGetFileHandler(env.fileRepo, env.userRepo, env.gate, zap.NewNop())

	result, err := handler.Handle(ctx, GetFileQuery{UserID: "owner1", FileID: file.ID().String()})
	require.NoError(t, err)
	assert.True(t, result.CanEdit)
	assert.True(t, result.IsOwner)
}

func TestGetFileHandler_CollaborativeGrantsEditToReader(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	env.seedUser(t, "other1", valueobjects.RoleUser)
	file := env.seedFile(t, "owner1", "Shared", valueobjects.VisibilityPublic, valueobjects.EditModeCollaborative)
	handler := NewGetFileHandler(env.fileRepo, env.userRepo, env.gate, zap.NewNop())

	result, err := handler.Handle(ctx, GetFileQuery{UserID: "other1", FileID: file.ID().String()})
	require.NoError(t, err)
	assert.True(t, result.CanEdit)
	assert.False(t, result.IsOwner)
}

func TestGetFileHandler_MalformedID(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewGetFileHandler(env.fileRepo, env.userRepo, env.gate, zap.NewNop())

	_, err := handler.Handle(ctx, GetFileQuery{FileID: "not-a-valid-id"})
	assert.Error(t, err)
}

func TestListFilesHandler_NewestFirstWithQuota(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	env.seedUser(t, "user1", valueobjects.RoleUser)
	env.seedFile(t, "user1", "First", valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	second := env.seedFile(t, "user1", "Second", valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	env.seedFile(t, "someone-else", "Not Mine", valueobjects.VisibilityPublic, valueobjects.EditModeOwner)

	// Touch the second file so it sorts first
	content, err := valueobjects.NewFileContent("Second", "edited")
	require.NoError(t, err)
	second.UpdateContent(content)
	require.NoError(t, env.fileRepo.UpdateByID(ctx, second))

	handler := NewListFilesHandler(env.fileRepo, env.userRepo, env.gate, config.DefaultDomainConfig(), zap.NewNop())
	result, err := handler.Handle(ctx, ListFilesQuery{UserID: "user1"})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "Second", result.Files[0].Title)
	assert.Equal(t, "First", result.Files[1].Title)

	assert.Equal(t, 2, result.Quota.Used)
	assert.False(t, result.Quota.Unlimited)
}

func TestListFilesHandler_RequiresUser(t *testing.T) {
	env := newQueryEnv()
	handler := NewListFilesHandler(env.fileRepo, env.userRepo, env.gate, config.DefaultDomainConfig(), zap.NewNop())

	_, err := handler.Handle(context.Background(), ListFilesQuery{})
	require.Error(t, err)
	appErr, ok := err.(*pkgerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.ErrorTypeUnauthorized, appErr.Type)
}
