// Package imageref turns locally picked image files into the string
// references stored on an item. The store and view engine never care which
// acquisition path produced the reference.
package imageref

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var mimeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// IsRef reports whether s is already a displayable reference (http(s), file
// or data URI) rather than a local path.
func IsRef(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "file://") ||
		strings.HasPrefix(s, "data:")
}

// FileURI returns an absolute file:// reference for a local path.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// FromFile reads a local image and returns it embedded as a data URI.
func FromFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	mime, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("unsupported image type: %s", filepath.Ext(path))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

// Resolve normalizes user input for the image field: existing references pass
// through, local paths become file:// (or data: when embed is set), and
// anything that fails resolution is reported so the caller can leave the
// field unchanged.
func Resolve(input string, embed bool) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || IsRef(input) {
		return input, nil
	}
	if embed {
		return FromFile(input)
	}
	return FileURI(input)
}
