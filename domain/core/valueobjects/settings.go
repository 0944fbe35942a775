package valueobjects

import pkgerrors "snipvault/pkg/errors"

// Visibility controls who can read a file
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// IsValid reports whether the visibility is a known value
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// EditMode controls who can modify a file's content.
// Visibility and edit mode are independent axes: a private file can
// still be collaborative for anyone who can reach it.
type EditMode string

const (
	EditModeOwner         EditMode = "owner"
	EditModeCollaborative EditMode = "collaborative"
)

// IsValid reports whether the edit mode is a known value
func (m EditMode) IsValid() bool {
	return m == EditModeOwner || m == EditModeCollaborative
}

// Language identifies the syntax a file is written in
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageHTML       Language = "html"
	LanguageCSS        Language = "css"
	LanguageJSON       Language = "json"
	LanguageMarkdown   Language = "markdown"
	LanguagePlainText  Language = "plaintext"
)

var knownLanguages = map[Language]struct{}{
	LanguageJavaScript: {},
	LanguageTypeScript: {},
	LanguagePython:     {},
	LanguageHTML:       {},
	LanguageCSS:        {},
	LanguageJSON:       {},
	LanguageMarkdown:   {},
	LanguagePlainText:  {},
}

// IsValid reports whether the language is supported
func (l Language) IsValid() bool {
	_, ok := knownLanguages[l]
	return ok
}

// Role is a user's authorization role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid reports whether the role is a known value
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseVisibility validates and converts a raw visibility string
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", pkgerrors.NewValidationError("visibility must be one of: public, private")
	}
	return v, nil
}

// ParseEditMode validates and converts a raw edit mode string
func ParseEditMode(s string) (EditMode, error) {
	m := EditMode(s)
	if !m.IsValid() {
		return "", pkgerrors.NewValidationError("editMode must be one of: owner, collaborative")
	}
	return m, nil
}

// ParseLanguage validates and converts a raw language string
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.IsValid() {
		return "", pkgerrors.NewValidationError("language is not supported")
	}
	return l, nil
}
