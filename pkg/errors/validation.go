package errors

import (
	"strings"
	"unicode"
)

// ValidateSystemName validates a steno system identifier received from a host
// or a command line. Names are free-form ("English Stenotype") but must be
// printable and bounded because they key persisted preferences.
func ValidateSystemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidSystem, "system name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidSystem, "system name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSystem, "system name contains invalid control characters")
		}
	}

	return nil
}

// ValidateLayoutPath validates a user-chosen layout file path before it is
// read or remembered as a preference.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// The extension is not checked; any readable file may hold a layout.
func ValidateLayoutPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidLayoutPath, "layout path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidLayoutPath, "layout path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidLayoutPath, "layout path contains invalid characters")
		}
	}

	return nil
}
