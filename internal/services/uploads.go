package services

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// MaxUploadBytes is the hard ceiling for one uploaded image.
const MaxUploadBytes = 10 << 20

var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ValidateUpload checks the declared MIME type and size before any storage
// call is made. Returns the file extension for the object key.
func ValidateUpload(contentType string, size int64) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrBadRequest("Unsupported file type. Allowed: JPEG, PNG, GIF, WebP, SVG.")
	}
	if size > MaxUploadBytes {
		return "", ErrBadRequest("File is too large. The limit is 10MB.")
	}
	if size <= 0 {
		return "", ErrBadRequest("File is empty.")
	}
	return ext, nil
}

// ObjectKey builds a collision-resistant name: unix millis plus a random
// suffix plus the type extension. Nothing tracks these afterwards; orphaned
// objects are never collected.
func ObjectKey(ext string) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + hex.EncodeToString(suffix) + ext
}
