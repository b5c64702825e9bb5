package colormap

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/segviz/segviz/pkg/errors"
)

// Format identifies a colormap file encoding.
type Format string

// Supported colormap encodings.
const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// DetectFormat determines the colormap encoding from a filename extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect colormap format for %s: want .json or .xml", filepath.Base(path))
}

// Parse reads a colormap document in the given format.
func Parse(data []byte, format Format) (*ColorMap, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatXML:
		return ParseXML(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported colormap format: %s", format)
}

// ParseFile reads a colormap from disk, detecting the format from the
// file extension.
func ParseFile(path string) (*ColorMap, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading colormap %s", path)
	}
	return Parse(data, format)
}
