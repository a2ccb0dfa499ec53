package utils

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// extensions for the data-URI media types the frontend sends.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveBase64Image decodes a "data:image/...;base64,..." payload and writes it
// under mediaRoot/subdir with a generated name. It returns the path relative
// to the media root, as stored on the model.
func SaveBase64Image(mediaRoot, subdir, data string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("image payload is empty")
	}

	mediaType := "image/png"
	if strings.HasPrefix(data, "data:") {
		header, rest, found := strings.Cut(data, ",")
		if !found {
			return "", fmt.Errorf("malformed data URI")
		}
		mediaType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		data = rest
	}

	ext, ok := imageExtensions[mediaType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", mediaType)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	dir := filepath.Join(mediaRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// RemoveImage deletes a previously stored image. A missing file is not an
// error: the row is the source of truth.
func RemoveImage(mediaRoot, relPath string) {
	if relPath == "" {
		return
	}
	_ = os.Remove(filepath.Join(mediaRoot, filepath.FromSlash(relPath)))
}

// MediaURL converts a stored relative path into the URL the API returns.
func MediaURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/media/" + relPath
}
