package geom

import (
	"os"
	"path/filepath"
	"strings"
)

// IsContourFile reports whether path has an extension LoadContours accepts.
func IsContourFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wkt", ".geojson", ".json", ".csv":
		return true
	}
	return false
}

// LoadContours reads pre-extracted pixel-space contours from a file,
// choosing the parser by extension.
func LoadContours(path string) (ContourSet, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseWKT(string(data))
	default:
		return nil, &UnsupportedFileError{Ext: ext}
	}
}

// UnsupportedFileError reports a contour file extension with no parser.
type UnsupportedFileError struct {
	Ext string
}

func (e *UnsupportedFileError) Error() string { return "unsupported contour file: " + e.Ext }
