// Package trace extracts pixel-space contours from raster images.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageLoad is returned when an input image is missing, unreadable or
// cannot be decoded.
var ErrImageLoad = errors.New("image load failed")

// Open reads and decodes the image at path. png, jpeg, gif, bmp, tiff and
// webp are supported. The returned string is the decoder's format name.
func Open(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	if !filetype.IsImage(data) {
		return nil, "", fmt.Errorf("%w: %s: not an image", ErrImageLoad, path)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		kind, _ := filetype.Match(data)
		return nil, "", fmt.Errorf("%w: %s (%s): %w", ErrImageLoad, path, kind.MIME.Value, err)
	}
	return img, format, nil
}

// IsImageFile reports whether path has an extension Open can decode.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}
