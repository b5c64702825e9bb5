package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a manifest identifier (tissue, figure, or parameter
// name) for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
//
// Shape-specific validation is done by the typed wrappers below.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// tissueNameRegex matches valid tissue names: a letter followed by letters,
// digits, underscores, or hyphens. Matches the naming used by segmentation
// datasets (skin, brainbin, l_kidney, ...).
var tissueNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateTissueName validates a tissue name.
func ValidateTissueName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if !tissueNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid tissue name: %q", name)
	}

	return nil
}

// figureNameRegex matches valid figure names. Figures allow spaces so a
// name can read like a caption ("frog posterior").
var figureNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _-]*$`)

// ValidateFigureName validates a figure name.
func ValidateFigureName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if !figureNameRegex.MatchString(name) {
		return New(ErrCodeInvalidFigure, "invalid figure name: %q", name)
	}

	return nil
}

// parameterNameRegex matches valid parameter names: lowercase identifier
// with underscores (density, attenuation_coefficient, ...).
var parameterNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateParameterName validates a tissue parameter name.
func ValidateParameterName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if !parameterNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid parameter name: %q", name)
	}

	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename is a simple basename without path components.
// Used by the HTTP API when accepting uploads.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "manifest filename cannot contain path separators")
	}

	// No hidden files (starting with .)
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "manifest filename cannot be a hidden file")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
// Used before fetching remote manifest or colormap sources.
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
