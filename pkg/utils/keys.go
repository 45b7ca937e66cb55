package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// extensions by content type for generated object keys. Unknown types get
// "bin" rather than failing the upload.
var contentTypeExtensions = map[string]string{
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"video/quicktime": "mov",
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
}

// RandomObjectKey generates a collision-resistant object key for an upload.
// The key is never derived from client input, so it cannot be used to
// overwrite another object or inject path segments.
func RandomObjectKey(contentType string) string {
	ext, ok := contentTypeExtensions[normalizeContentType(contentType)]
	if !ok {
		ext = "bin"
	}
	return fmt.Sprintf("%s.%s", uuid.New().String(), ext)
}

func normalizeContentType(ct string) string {
	// strip parameters like "; charset=binary"
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
