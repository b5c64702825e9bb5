package manifest

import (
	"path/filepath"
	"strings"

	"github.com/segviz/segviz/pkg/errors"
)

// Format identifies a manifest document encoding.
type Format string

// Supported document encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ValidFormats maps format names to validity for quick lookup.
var ValidFormats = map[Format]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatTOML: true,
}

// ParseFormat resolves a format name. The "yml" spelling is accepted for
// YAML.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "yml" {
		f = FormatYAML
	}
	if !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format: %s", s)
	}
	return f, nil
}

// DetectFormat determines the document encoding from a filename extension.
// Returns an error for unrecognized extensions.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect manifest format: %s has no extension", filepath.Base(path))
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest extension: .%s", ext)
	}
	return f, nil
}
