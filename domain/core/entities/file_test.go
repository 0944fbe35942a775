package entities

import (
	"testing"
	"time"

	"snipvault/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustContent(t *testing.T, title, body string) valueobjects.FileContent {
	t.Helper()
	content, err := valueobjects.NewFileContent(title, body)
	require.NoError(t, err)
	return content
}

func TestNewCodeFile(t *testing.T) {
	file, err := NewCodeFile("user1", mustContent(t, "Title", "body"),
		valueobjects.LanguagePython, valueobjects.VisibilityPrivate, valueobjects.EditModeOwner)
	require.NoError(t, err)

	assert.False(t, file.ID().IsEmpty())
	assert.Equal(t, "user1", file.CreatedBy())
	assert.Equal(t, valueobjects.LanguagePython, file.Language())
	assert.Equal(t, file.CreatedAt(), file.UpdatedAt())
	assert.True(t, file.IsOwnedBy("user1"))
	assert.False(t, file.IsOwnedBy("user2"))
}

func TestNewCodeFile_RejectsInvalidFields(t *testing.T) {
	content := mustContent(t, "Title", "body")

	_, err := NewCodeFile("", content, valueobjects.LanguagePython, valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	assert.Error(t, err)

	_, err = NewCodeFile("user1", content, valueobjects.Language("cobol"), valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	assert.Error(t, err)

	_, err = NewCodeFile("user1", content, valueobjects.LanguagePython, valueobjects.Visibility("unlisted"), valueobjects.EditModeOwner)
	assert.Error(t, err)

	_, err = NewCodeFile("user1", content, valueobjects.LanguagePython, valueobjects.VisibilityPublic, valueobjects.EditMode("anyone"))
	assert.Error(t, err)
}

func TestCodeFile_UpdateContent_BumpsUpdatedAt(t *testing.T) {
	file, err := NewCodeFile("user1", mustContent(t, "Title", "v1"),
		valueobjects.LanguagePython, valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	require.NoError(t, err)

	before := file.UpdatedAt()
	time.Sleep(5 * time.Millisecond)
	file.UpdateContent(mustContent(t, "Title", "v2"))

	assert.Equal(t, "v2", file.Content().Content())
	assert.True(t, file.UpdatedAt().After(before))
}

func TestCodeFile_ApplySettings_PartialUpdate(t *testing.T) {
	file, err := NewCodeFile("user1", mustContent(t, "Title", "body"),
		valueobjects.LanguagePython, valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	require.NoError(t, err)

	lang := valueobjects.LanguageMarkdown
	err = file.ApplySettings(SettingsUpdate{Language: &lang}, nil)
	require.NoError(t, err)

	// Only the supplied field changed
	assert.Equal(t, valueobjects.LanguageMarkdown, file.Language())
	assert.Equal(t, "Title", file.Content().Title())
	assert.Equal(t, valueobjects.VisibilityPublic, file.Visibility())
	assert.Equal(t, valueobjects.EditModeOwner, file.EditMode())
}

func TestCodeFile_ApplySettings_TitleKeepsContent(t *testing.T) {
	file, err := NewCodeFile("user1", mustContent(t, "Old", "body"),
		valueobjects.LanguagePython, valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	require.NoError(t, err)

	title := "New Title"
	err = file.ApplySettings(SettingsUpdate{Title: &title}, nil)
	require.NoError(t, err)

	assert.Equal(t, "New Title", file.Content().Title())
	assert.Equal(t, "body", file.Content().Content())
}

func TestCodeFile_ApplySettings_InvalidTitleRejected(t *testing.T) {
	file, err := NewCodeFile("user1", mustContent(t, "Old", "body"),
		valueobjects.LanguagePython, valueobjects.VisibilityPublic, valueobjects.EditModeOwner)
	require.NoError(t, err)

	empty := "   "
	err = file.ApplySettings(SettingsUpdate{Title: &empty}, nil)
	assert.Error(t, err)
	assert.Equal(t, "Old", file.Content().Title(), "rejected update must not mutate the entity")
}

func TestSettingsUpdate_SharingChanged(t *testing.T) {
	title := "T"
	lang := valueobjects.LanguageJSON
	visibility := valueobjects.VisibilityPrivate
	editMode := valueobjects.EditModeCollaborative

	assert.False(t, SettingsUpdate{}.SharingChanged())
	assert.False(t, SettingsUpdate{Title: &title, Language: &lang}.SharingChanged())
	assert.True(t, SettingsUpdate{Visibility: &visibility}.SharingChanged())
	assert.True(t, SettingsUpdate{EditMode: &editMode}.SharingChanged())
}
