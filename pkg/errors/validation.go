package errors

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// slugRegex matches document slugs: lowercase words joined by single dashes.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// ValidateSlug validates a case-study slug for safety and correctness.
// Slugs map 1:1 onto source files, so anything that could escape the
// content directory is rejected before a lookup happens.
//
// The validation rules are intentionally conservative:
//   - No empty slugs
//   - Maximum length of 128 characters
//   - Lowercase letters, digits, single dashes or underscores only
//   - No leading underscore (those documents are drafts)
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSlug, "slug cannot be empty")
	}

	if len(slug) > 128 {
		return New(ErrCodeInvalidSlug, "slug too long (max 128 characters)")
	}

	if strings.HasPrefix(slug, "_") {
		return New(ErrCodeInvalidSlug, "slug %q refers to a draft", slug)
	}

	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidSlug, "invalid slug: %q", slug)
	}

	return nil
}

// ValidatePath validates a site-relative route path such as "/case/seenit".
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must be absolute within the site (start with /)
//   - No path traversal sequences (..)
//   - No backslashes
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return New(ErrCodeInvalidPath, "path must be site-relative (start with a single /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

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

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateEmail validates a bare email address (no display name, no mailto: prefix).
func ValidateEmail(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "email address cannot be empty")
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return New(ErrCodeInvalidInput, "invalid email address: %q", addr)
	}
	return nil
}
