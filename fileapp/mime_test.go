package fileapp_test

import (
	"testing"

	"github.com/sagarc03/weft/fileapp"
	"github.com/stretchr/testify/assert"
)

func TestTypeResolver_Lookup(t *testing.T) {
	resolver := fileapp.NewTypeResolver(map[string]string{
		".md":  "text/markdown",
		"wasm": "application/wasm",
		".CSV": "text/csv",
	})

	tests := []struct {
		path string
		want string
	}{
		{"README.md", "text/markdown"},
		{"app.wasm", "application/wasm"},
		{"export.csv", "text/csv"},
		{"EXPORT.CSV", "text/csv"},
		{"page.html", "text/html; charset=utf-8"},
		{"mystery.qqq", "application/octet-stream"},
		{"no-extension", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolver.Lookup(tt.path), tt.path)
	}
}

func TestTypeResolver_NilFallsBackToPlatformTable(t *testing.T) {
	var resolver *fileapp.TypeResolver

	assert.Equal(t, "text/html; charset=utf-8", resolver.Lookup("index.html"))
	assert.Equal(t, "application/octet-stream", resolver.Lookup("blob.qqq"))
}
