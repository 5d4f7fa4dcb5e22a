package images

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	// Registered formats for sniffing uploaded images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/arvandstudio/arvand-server/internal/errors"
)

// MaxImageBytes caps decoded upload size at 10 MiB.
const MaxImageBytes = 10 << 20

// formatExtensions maps image.DecodeConfig format names to file extensions.
var formatExtensions = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

// DecodeDataURL decodes a base64 data URL as produced by a browser file
// reader and returns the raw image bytes with a file extension matching
// the actual content.
//
// The declared media type in the URL is ignored; the bytes themselves
// decide the format.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	const marker = ";base64,"

	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, "", errors.Validation("image must be a data URL")
	}

	idx := strings.Index(dataURL, marker)
	if idx < 0 {
		return nil, "", errors.Validation("image data URL must be base64 encoded")
	}

	payload := dataURL[idx+len(marker):]
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes {
		return nil, "", errors.Validation("image exceeds the 10 MiB upload limit")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Validation("image data URL is not valid base64")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Validation("image data is not a recognized image format")
	}

	ext, ok := formatExtensions[format]
	if !ok {
		return nil, "", errors.Validationf("unsupported image format %q", format)
	}

	return data, ext, nil
}
