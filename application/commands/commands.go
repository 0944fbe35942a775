// Package commands defines the four authorized write operations exposed
// at the service boundary. Each command is validated, permission-checked
// against the caller, persisted, and followed by a view invalidation
// notification.
package commands

import (
	"snipvault/pkg/utils"
)

// CreateFileCommand creates a new file owned by the caller
type CreateFileCommand struct {
	UserID     string `json:"user_id" validate:"required"`
	Title      string `json:"title" validate:"required,min=1,max=100"`
	Language   string `json:"language" validate:"required"`
	Content    string `json:"content" validate:"max=500000"`
	Visibility string `json:"visibility" validate:"required,oneof=public private"`
	EditMode   string `json:"edit_mode" validate:"required,oneof=owner collaborative"`
}

// Validate checks the command against its schema constraints
func (c CreateFileCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateContentCommand saves new content (and optionally a title) for a file
type UpdateContentCommand struct {
	UserID  string  `json:"user_id" validate:"required"`
	FileID  string  `json:"file_id" validate:"required,len=24,hexadecimal"`
	Content string  `json:"content" validate:"max=500000"`
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`

	// BestEffort marks a save issued during session teardown: empty
	// content must not overwrite a non-empty stored record.
	BestEffort bool `json:"-"`
}

// Validate checks the command against its schema constraints
func (c UpdateContentCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateSettingsCommand applies a partial settings change to a file.
// Only supplied fields are validated and persisted.
type UpdateSettingsCommand struct {
	UserID     string  `json:"user_id" validate:"required"`
	FileID     string  `json:"file_id" validate:"required,len=24,hexadecimal"`
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Language   *string `json:"language,omitempty" validate:"omitempty,min=1"`
	Visibility *string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	EditMode   *string `json:"edit_mode,omitempty" validate:"omitempty,oneof=owner collaborative"`
}

// Validate checks the command against its schema constraints
func (c UpdateSettingsCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// IsEmpty reports whether no field was supplied
func (c UpdateSettingsCommand) IsEmpty() bool {
	return c.Title == nil && c.Language == nil && c.Visibility == nil && c.EditMode == nil
}

// DeleteFileCommand removes a file. Restricted to the owner.
type DeleteFileCommand struct {
	UserID string `json:"user_id" validate:"required"`
	FileID string `json:"file_id" validate:"required,len=24,hexadecimal"`
}

// Validate checks the command against its schema constraints
func (c DeleteFileCommand) Validate() error {
	return utils.ValidateStruct(c)
}
