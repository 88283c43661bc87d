// Package menu holds the catalog helpers shared by the admin and customer
// surfaces: image validation on write and data-URI re-encoding on read.
package menu

import (
	"encoding/base64"
	"errors"
)

// Only webp uploads are accepted; the bytes are stored and served untouched,
// no resizing or transcoding.
const imageMIME = "image/webp"

var ErrBadImage = errors.New("menu image data is required or image type is not webp")

func ValidateImage(contentType string, data []byte) error {
	if len(data) == 0 || contentType != imageMIME {
		return ErrBadImage
	}
	return nil
}

// DataURI re-encodes stored image bytes as an inline data URI for JSON
// responses. Returns "" when the menu row has no image.
func DataURI(image []byte) string {
	if len(image) == 0 {
		return ""
	}
	return "data:" + imageMIME + ";base64," + base64.StdEncoding.EncodeToString(image)
}
