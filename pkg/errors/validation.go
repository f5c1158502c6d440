package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// packageNameRE matches valid Python distribution names (PEP 508).
var packageNameRE = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePackageName rejects names that cannot be a Python distribution
// name, including anything that would change the shape of a request path
// (separators, traversal, control characters).
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "package name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "package name contains invalid control characters")
		}
	}
	if !packageNameRE.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid package name: %q", name)
	}
	return nil
}

// ValidateVersion rejects version strings that cannot be used as a single
// path segment.
func ValidateVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidInput, "version cannot be empty")
	}
	if strings.ContainsAny(version, "/\\?# \t\n") || strings.Contains(version, "..") {
		return New(ErrCodeInvalidInput, "invalid version: %q", version)
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
