package entities

import (
	"time"

	"snipvault/domain/config"
	"snipvault/domain/core/valueobjects"
	pkgerrors "snipvault/pkg/errors"
)

// CodeFile is the aggregate root for a shared snippet. The owner is
// fixed at creation and never changes; everything else is mutable
// through the entity's update methods.
type CodeFile struct {
	id         valueobjects.FileID
	content    valueobjects.FileContent
	language   valueobjects.Language
	visibility valueobjects.Visibility
	editMode   valueobjects.EditMode
	createdBy  string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewCodeFile creates a new file owned by the given user
func NewCodeFile(createdBy string, content valueobjects.FileContent, language valueobjects.Language, visibility valueobjects.Visibility, editMode valueobjects.EditMode) (*CodeFile, error) {
	if createdBy == "" {
		return nil, pkgerrors.NewValidationError("owner cannot be empty")
	}
	if !language.IsValid() {
		return nil, pkgerrors.NewValidationError("language is not supported")
	}
	if !visibility.IsValid() {
		return nil, pkgerrors.NewValidationError("invalid visibility")
	}
	if !editMode.IsValid() {
		return nil, pkgerrors.NewValidationError("invalid edit mode")
	}

	now := time.Now()
	return &CodeFile{
		id:         valueobjects.NewFileID(),
		content:    content,
		language:   language,
		visibility: visibility,
		editMode:   editMode,
		createdBy:  createdBy,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructCodeFile rebuilds a file from repository data with preserved timestamps
func ReconstructCodeFile(
	id valueobjects.FileID,
	content valueobjects.FileContent,
	language valueobjects.Language,
	visibility valueobjects.Visibility,
	editMode valueobjects.EditMode,
	createdBy string,
	createdAt, updatedAt time.Time,
) *CodeFile {
	return &CodeFile{
		id:         id,
		content:    content,
		language:   language,
		visibility: visibility,
		editMode:   editMode,
		createdBy:  createdBy,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the file identifier
func (f *CodeFile) ID() valueobjects.FileID { return f.id }

// Content returns the title and content value object
func (f *CodeFile) Content() valueobjects.FileContent { return f.content }

// Language returns the file language
func (f *CodeFile) Language() valueobjects.Language { return f.language }

// Visibility returns the file visibility
func (f *CodeFile) Visibility() valueobjects.Visibility { return f.visibility }

// EditMode returns the file edit mode
func (f *CodeFile) EditMode() valueobjects.EditMode { return f.editMode }

// CreatedBy returns the owner's user ID
func (f *CodeFile) CreatedBy() string { return f.createdBy }

// CreatedAt returns the creation timestamp
func (f *CodeFile) CreatedAt() time.Time { return f.createdAt }

// UpdatedAt returns the last update timestamp
func (f *CodeFile) UpdatedAt() time.Time { return f.updatedAt }

// UpdateContent replaces the title/content pair
func (f *CodeFile) UpdateContent(content valueobjects.FileContent) {
	f.content = content
	f.updatedAt = time.Now()
}

// SettingsUpdate carries a partial settings change; nil fields are untouched
type SettingsUpdate struct {
	Title      *string
	Language   *valueobjects.Language
	Visibility *valueobjects.Visibility
	EditMode   *valueobjects.EditMode
}

// SharingChanged reports whether the update alters how the file is
// discoverable or editable by others.
func (u SettingsUpdate) SharingChanged() bool {
	return u.Visibility != nil || u.EditMode != nil
}

// ApplySettings applies a partial settings update, validating only the
// supplied fields.
func (f *CodeFile) ApplySettings(update SettingsUpdate, cfg *config.DomainConfig) error {
	if update.Title != nil {
		content, err := valueobjects.NewFileContentWithConfig(*update.Title, f.content.Content(), cfg)
		if err != nil {
			return err
		}
		f.content = content
	}
	if update.Language != nil {
		if !update.Language.IsValid() {
			return pkgerrors.NewValidationError("language is not supported")
		}
		f.language = *update.Language
	}
	if update.Visibility != nil {
		if !update.Visibility.IsValid() {
			return pkgerrors.NewValidationError("invalid visibility")
		}
		f.visibility = *update.Visibility
	}
	if update.EditMode != nil {
		if !update.EditMode.IsValid() {
			return pkgerrors.NewValidationError("invalid edit mode")
		}
		f.editMode = *update.EditMode
	}
	f.updatedAt = time.Now()
	return nil
}

// IsOwnedBy reports whether the given user created this file
func (f *CodeFile) IsOwnedBy(userID string) bool {
	return f.createdBy == userID
}
