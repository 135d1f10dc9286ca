package entities

import (
	"path/filepath"
	"strings"
	"time"
)

// AllowedVideoExtensions lists accepted upload extensions without the dot
var AllowedVideoExtensions = []string{"mp4", "avi", "mov", "mkv"}

// MediaFile is one uploaded asset. It is immutable once stored.
type MediaFile struct {
	Filename   string    `json:"filename"`
	Path       string    `json:"-"`
	Size       int64     `json:"size"`
	UploadTime time.Time `json:"upload_time"`
}

// BaseName returns the artifact key for a stored filename: the name without extension
func BaseName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// IsAllowedVideoExtension reports whether ext (with or without the dot) is accepted
func IsAllowedVideoExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range AllowedVideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
