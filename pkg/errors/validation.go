package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// schemaNameRegex matches catalog display names. Types in the upstream
// object model are CamelCase identifiers (Bar, XAxis, LayoutImage).
var schemaNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateSchemaName validates a catalog display name before it is used for
// registry lookup or URL construction. The rules are intentionally
// conservative:
//   - No empty names
//   - No control characters
//   - Identifier characters only (letters, digits, underscore)
//   - Maximum length of 128 characters
func ValidateSchemaName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSchema, "schema name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidSchema, "schema name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSchema, "schema name contains invalid control characters")
		}
	}

	if !schemaNameRegex.MatchString(name) {
		return New(ErrCodeInvalidSchema, "invalid schema name: %q", name)
	}

	return nil
}

// nodeIDCharsRegex matches the characters allowed in a tree node id: the
// `*`-delimited path of schema property names.
var nodeIDCharsRegex = regexp.MustCompile(`^[A-Za-z0-9_*]+$`)

// ValidateNodeID validates a clicked tree node id before it is split into
// path segments for documentation-link resolution.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > 512 {
		return New(ErrCodeInvalidInput, "node id too long (max 512 characters)")
	}

	if !nodeIDCharsRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid node id: %q", id)
	}

	if strings.HasPrefix(id, "*") || strings.HasSuffix(id, "*") || strings.Contains(id, "**") {
		return New(ErrCodeInvalidInput, "invalid node id: %q", id)
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
