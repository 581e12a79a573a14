package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds catalog record names.
const maxNameLength = 128

// ValidateName validates a catalog record name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidateOrder checks a requested vertex count against an upper limit.
func ValidateOrder(n, limit int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "vertex count must not be negative: %d", n)
	}
	if n > limit {
		return New(ErrCodeTooLarge, "vertex count %d exceeds the limit of %d", n, limit)
	}
	return nil
}

// ValidateEdgeCount checks that a graph is small enough to enumerate all of
// its edge subsets within the configured limit.
func ValidateEdgeCount(edges, limit int) error {
	if edges > limit {
		return New(ErrCodeTooLarge, "%d edges exceed the limit of %d (2^%d subsets)", edges, limit, edges)
	}
	return nil
}

// ValidateOutputPath validates a file path a plot is written to.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No path traversal sequences (..) after cleaning
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}
	return nil
}
