package fileapp

import (
	"mime"
	"path/filepath"
	"strings"
)

const defaultContentType = "application/octet-stream"

// TypeResolver maps file extensions to content types: caller overrides
// first, then the platform mime table, then application/octet-stream.
type TypeResolver struct {
	overrides map[string]string
}

// NewTypeResolver builds a resolver with the given extension overrides.
// Keys may be given with or without the leading dot.
func NewTypeResolver(overrides map[string]string) *TypeResolver {
	normalized := make(map[string]string, len(overrides))
	for ext, ct := range overrides {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[strings.ToLower(ext)] = ct
	}
	return &TypeResolver{overrides: normalized}
}

// Lookup resolves the content type for a path by its extension.
func (r *TypeResolver) Lookup(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if r != nil {
		if ct, ok := r.overrides[ext]; ok {
			return ct
		}
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return defaultContentType
}
