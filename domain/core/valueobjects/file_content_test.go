package valueobjects

import (
	"strings"
	"testing"

	"snipvault/domain/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileContent_Valid(t *testing.T) {
	content, err := NewFileContent("My Snippet", "const x = 1")
	require.NoError(t, err)
	assert.Equal(t, "My Snippet", content.Title())
	assert.Equal(t, "const x = 1", content.Content())
}

func TestNewFileContent_TitleTrimmed(t *testing.T) {
	content, err := NewFileContent("  padded  ", "x")
	require.NoError(t, err)
	assert.Equal(t, "padded", content.Title())
}

func TestNewFileContent_EmptyTitleRejected(t *testing.T) {
	_, err := NewFileContent("", "x")
	assert.Error(t, err)

	_, err = NewFileContent("   ", "x")
	assert.Error(t, err, "whitespace-only titles trim to empty")
}

func TestNewFileContent_TitleLengthBoundaries(t *testing.T) {
	_, err := NewFileContent(strings.Repeat("a", 100), "x")
	assert.NoError(t, err)

	_, err = NewFileContent(strings.Repeat("a", 101), "x")
	assert.Error(t, err)
}

func TestNewFileContent_TitleLengthCountsRunes(t *testing.T) {
	// 100 multi-byte runes are within the limit even though the byte
	// count is far larger
	_, err := NewFileContent(strings.Repeat("é", 100), "x")
	assert.NoError(t, err)
}

func TestNewFileContent_EmptyContentAllowed(t *testing.T) {
	content, err := NewFileContent("Title", "")
	require.NoError(t, err)
	assert.Equal(t, "", content.Content())
}

func TestSanitizeContent_StripsNULBytes(t *testing.T) {
	out := SanitizeContent("a\x00b\x00c", 100)
	assert.Equal(t, "abc", out)
}

func TestSanitizeContent_TruncatesAtCap(t *testing.T) {
	out := SanitizeContent(strings.Repeat("a", 50), 10)
	assert.Len(t, out, 10)
}

func TestValidateContentLength(t *testing.T) {
	cfg := &config.DomainConfig{MaxContentLength: 10}

	assert.NoError(t, ValidateContentLength("short", cfg))
	assert.Error(t, ValidateContentLength(strings.Repeat("a", 11), cfg))
}

func TestReconstructFileContent_SkipsValidation(t *testing.T) {
	// Stored records round-trip without re-validation
	content := ReconstructFileContent("", "body")
	assert.Equal(t, "", content.Title())
	assert.Equal(t, "body", content.Content())
}

func TestFileContent_Equals(t *testing.T) {
	a, err := NewFileContent("T", "c")
	require.NoError(t, err)
	b, err := NewFileContent("T", "c")
	require.NoError(t, err)
	c, err := NewFileContent("T", "different")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
