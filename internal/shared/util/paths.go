package util

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// NormalizePatternPath converts separators to "/", cleans the path and strips
// a leading "./". The root itself normalizes to "".
func NormalizePatternPath(s string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(s, "\\", "/"))
	if trimmed == "" {
		return ""
	}
	clean := path.Clean(trimmed)
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// HasPathPrefix reports whether p equals prefix or lives below it.
// Comparison is per segment, so "components-old/x" is not under "components".
func HasPathPrefix(p, prefix string) bool {
	p = strings.Trim(NormalizePatternPath(p), "/")
	prefix = strings.Trim(NormalizePatternPath(prefix), "/")
	if prefix == "" {
		return true
	}
	if p == prefix {
		return true
	}
	return strings.HasPrefix(p, prefix+"/")
}

// HasAnyPathPrefix reports whether p lives under at least one prefix.
func HasAnyPathPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if HasPathPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// RelativeSlashPath returns file relative to root using forward slashes.
// Files that are not under root are returned unchanged (slash-converted).
func RelativeSlashPath(file, root string) string {
	if root == "" {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
