package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"snipvault/domain/config"
	pkgerrors "snipvault/pkg/errors"
)

// FileContent is a value object holding a file's title and content.
// Construction sanitizes and validates both fields, so a FileContent
// in hand is always within the domain limits.
type FileContent struct {
	title   string
	content string
}

// NewFileContent creates content with validation using default configuration
func NewFileContent(title, content string) (FileContent, error) {
	return NewFileContentWithConfig(title, content, config.DefaultDomainConfig())
}

// NewFileContentWithConfig creates content with validation and configuration
func NewFileContentWithConfig(title, content string, cfg *config.DomainConfig) (FileContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	title = strings.TrimSpace(title)
	content = SanitizeContent(content, cfg.MaxContentLength)

	titleLength := utf8.RuneCountInString(title)
	if titleLength < cfg.MinTitleLength {
		return FileContent{}, pkgerrors.NewValidationError("title is required")
	}
	if titleLength > cfg.MaxTitleLength {
		return FileContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("title must be %d characters or less", cfg.MaxTitleLength))
	}

	return FileContent{title: title, content: content}, nil
}

// ReconstructFileContent rebuilds content from stored data without
// re-validation; stored records already passed through a constructor.
func ReconstructFileContent(title, content string) FileContent {
	return FileContent{title: title, content: content}
}

// SanitizeContent strips NUL bytes and hard-truncates at the length cap
func SanitizeContent(content string, maxLength int) string {
	content = strings.ReplaceAll(content, "\x00", "")
	if len(content) > maxLength {
		content = content[:maxLength]
	}
	return content
}

// ValidateContentLength checks raw content against the cap without mutating it
func ValidateContentLength(content string, cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if len(content) > cfg.MaxContentLength {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("content exceeds maximum length of %d characters", cfg.MaxContentLength))
	}
	return nil
}

// Title returns the file title
func (c FileContent) Title() string {
	return c.title
}

// Content returns the file content
func (c FileContent) Content() string {
	return c.content
}

// IsEmpty checks if both fields are empty
func (c FileContent) IsEmpty() bool {
	return c.title == "" && c.content == ""
}

// Equals checks if two contents are equal
func (c FileContent) Equals(other FileContent) bool {
	return c.title == other.title && c.content == other.content
}
