package utils

import (
	"os"
	"path/filepath"
	"strings"

	"lms/config"
)

// Artifact store adapter backed by the local filesystem. Rendered certificate
// PDFs are written under StorageDir and served statically from /uploads.

// SaveArtifact writes artifact bytes under the configured storage directory and
// returns the storage key (path relative to StorageDir).
func SaveArtifact(data []byte, key string) (string, error) {
	destPath := filepath.Join(config.AppConfig.StorageDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return "", err
	}

	return key, nil
}

// ArtifactURL returns the public URL for a stored artifact key
func ArtifactURL(key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimRight(config.AppConfig.PublicBaseURL, "/") + "/uploads/certificates/" + key
}

// DeleteArtifact removes a stored artifact. Best-effort; the caller logs the
// error and moves on.
func DeleteArtifact(key string) error {
	if key == "" {
		return nil
	}
	return os.Remove(filepath.Join(config.AppConfig.StorageDir, filepath.FromSlash(key)))
}
