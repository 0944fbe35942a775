package valueobjects

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"

	pkgerrors "snipvault/pkg/errors"
)

// fileIDPattern matches the 24-hex-char identifiers used on the wire
var fileIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// FileID is a value object representing a unique file identifier
type FileID struct {
	value string
}

// NewFileID creates a new random FileID
func NewFileID() FileID {
	buf := make([]byte, 12)
	rand.Read(buf)
	return FileID{value: hex.EncodeToString(buf)}
}

// NewFileIDFromString creates a FileID from an existing string
func NewFileIDFromString(id string) (FileID, error) {
	if !fileIDPattern.MatchString(id) {
		return FileID{}, pkgerrors.NewValidationError("invalid file ID format")
	}
	return FileID{value: id}, nil
}

// String returns the string representation
func (id FileID) String() string {
	return id.value
}

// IsEmpty checks if the ID is empty
func (id FileID) IsEmpty() bool {
	return id.value == ""
}

// Equals checks if two IDs are equal
func (id FileID) Equals(other FileID) bool {
	return id.value == other.value
}
