// utils/storage.go - Upload path helpers for managed storage
package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicUploadPrefix is the URL prefix under which managed uploads are served.
const PublicUploadPrefix = "/uploads/"

// UploadPath returns the on-disk uploads directory.
func UploadPath() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// StoredFilename builds a collision-free stored filename keeping the original
// extension.
func StoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.NewString(), ext)
}

// PublicURLForFilename maps a stored filename to its public URL.
func PublicURLForFilename(filename string) string {
	return PublicUploadPrefix + filename
}

// IsManagedAssetURL reports whether url points into managed storage.
func IsManagedAssetURL(url string) bool {
	return strings.HasPrefix(url, PublicUploadPrefix)
}

// StoredPathForURL maps a managed public URL back to its on-disk path.
// Returns false when the URL is not managed or escapes the uploads directory.
func StoredPathForURL(url string) (string, bool) {
	if !IsManagedAssetURL(url) {
		return "", false
	}
	name := path.Clean(strings.TrimPrefix(url, PublicUploadPrefix))
	if name == "." || name == ".." || strings.HasPrefix(name, "../") || strings.Contains(name, "/") {
		return "", false
	}
	return filepath.Join(UploadPath(), name), true
}
