package config

import "time"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// File constraints
	MaxContentLength int
	MaxTitleLength   int
	MinTitleLength   int
	MaxFilesPerUser  int

	// Autosave timing
	SaveDebounce    time.Duration
	MinSaveInterval time.Duration

	// Defaults for new files
	DefaultLanguage   string
	DefaultVisibility string
	DefaultEditMode   string
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxContentLength: 500000,
		MaxTitleLength:   100,
		MinTitleLength:   1,
		MaxFilesPerUser:  5,

		SaveDebounce:    1500 * time.Millisecond,
		MinSaveInterval: 2 * time.Second,

		DefaultLanguage:   "javascript",
		DefaultVisibility: "public",
		DefaultEditMode:   "owner",
	}
}
