package pathutil

import (
	"path/filepath"
	"strings"
)

// DisplayName returns the last element of path, the name shown in the
// browser and playlist panes.
func DisplayName(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	base := filepath.Base(cleaned)
	if base == string(filepath.Separator) || base == "." {
		return cleaned
	}
	return base
}

// StemName returns the display name without its extension.
func StemName(path string) string {
	name := DisplayName(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// IsHidden reports whether a file name is a dot-file.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// SamePath compares two paths after cleaning them.
func SamePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
