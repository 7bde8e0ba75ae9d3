package errors

import (
	"strings"
	"unicode"
)

// MaxUserNameLength bounds user names accepted by the engine.
const MaxUserNameLength = 128

// ValidateUserName validates a user name before it reaches the graph.
//
// User names are opaque, case-sensitive tokens. Because the snapshot format
// is whitespace-delimited, a name must not contain whitespace; the other
// rules keep names printable and bounded:
//   - No empty names
//   - No whitespace
//   - No control characters
//   - Maximum length of MaxUserNameLength bytes
func ValidateUserName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "user name cannot be empty")
	}

	if len(name) > MaxUserNameLength {
		return New(ErrCodeInvalidName, "user name too long (max %d characters)", MaxUserNameLength)
	}

	for _, r := range name {
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "user name cannot contain whitespace: %q", name)
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "user name contains invalid control characters")
		}
	}

	return nil
}

// ValidateUserNames validates every name and returns the first failure.
func ValidateUserNames(names ...string) error {
	for _, n := range names {
		if err := ValidateUserName(n); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath validates a snapshot or export file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty or blank
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
