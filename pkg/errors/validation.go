package errors

import (
	"strings"
	"unicode"
)

// ValidateSourcePath validates a program location given as a path or a URL path.
// It mirrors the playground's file-mode checks: the location must be non-empty,
// free of control characters and must not contain ".." segments.
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "missing program path")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "invalid file path %q", path)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !IsURL(rawURL) {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidateProgram checks that program source is present and within maxBytes.
// A maxBytes of zero disables the size check.
func ValidateProgram(src string, maxBytes int) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidProgram, "program is empty")
	}
	if maxBytes > 0 && len(src) > maxBytes {
		return New(ErrCodeInvalidProgram, "program too large (%d bytes, max %d)", len(src), maxBytes)
	}
	return nil
}
