package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSourceRef validates an image source reference (local path or URL).
// It rejects references that could be used for injection or are plainly broken.
//
// The validation rules are intentionally conservative:
//   - No empty references
//   - No control characters or null bytes
//   - Maximum length of 2048 characters
//
// Existence checks are done separately by the image loader.
func ValidateSourceRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidInput, "image source cannot be empty")
	}

	if len(ref) > 2048 {
		return New(ErrCodeInvalidInput, "image source too long (max 2048 characters)")
	}

	for _, r := range ref {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "image source contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a destination path for rendered output.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must end with a supported image extension (.png, .jpg, .jpeg)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".png") && !strings.HasSuffix(lower, ".jpg") && !strings.HasSuffix(lower, ".jpeg") {
		return New(ErrCodeInvalidPath, "output path must end with .png, .jpg or .jpeg")
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

// presetNameRegex matches valid preset names: letters, digits, dash, underscore.
var presetNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidatePresetName validates a preset name for use as a file or document key.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}

	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}

	return nil
}
