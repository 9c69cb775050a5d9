package imageio

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gusrasch/ventii/internal/domain"
)

// mediaTypes maps supported extensions to the content-type tag embedded
// in the data URI sent to the inference service.
var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// SupportedExtension reports whether ext (with leading dot, any case)
// is in the image allow-list.
func SupportedExtension(ext string) bool {
	_, ok := mediaTypes[strings.ToLower(ext)]
	return ok
}

// Load reads an image file and encodes its raw bytes as base64. The
// bytes are passed through untouched; malformed images are left for the
// inference service to reject.
func Load(path string) (domain.EncodedImage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.EncodedImage{}, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return domain.EncodedImage{}, fmt.Errorf("read image %s: %w", path, err)
	}

	return domain.EncodedImage{
		MediaType: MediaType(path),
		Data:      base64.StdEncoding.EncodeToString(raw),
	}, nil
}

// MediaType resolves the content type for a path by extension,
// defaulting to image/png for anything unrecognized.
func MediaType(path string) string {
	if mt, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return "image/png"
}
