package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateLayoutName validates the name a layout is stored under.
// Names become store keys and file names, so the rules are conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
//   - Only letters, digits, '.', '_', '-' and ':'
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "layout name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "layout name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "layout name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "layout name contains invalid characters: %q", pattern)
		}
	}

	if !layoutNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid layout name: %q", name)
	}

	return nil
}

var layoutNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateLeafID validates a leaf identifier. Leaf ids key persisted UI
// state, so they must be non-empty and free of control characters.
func ValidateLeafID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeConstruction, "leaf id cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeConstruction, "leaf id %q contains control characters", id)
		}
	}
	return nil
}
