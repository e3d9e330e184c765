package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ExportFolderPath returns the folder holding one HTML export
func ExportFolderPath(id string) string {
	return "exports/" + id
}

// ThemeFlagPath is where the persisted dark-theme flag lives
const ThemeFlagPath = "settings/dark-theme"

var contentTypes = map[string]string{
	".json": "application/json",
	".txt":  "text/plain",
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".md":   "text/markdown",
	".yaml": "application/yaml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// cleanPath normalizes a storage path and rejects anything escaping the root
func cleanPath(p string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "." {
		return "", nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path %q escapes the storage root", p)
	}
	return cleaned, nil
}
