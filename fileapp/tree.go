package fileapp

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sagarc03/weft"
)

// FileHandler serves a resolved regular file.
type FileHandler func(ctx context.Context, req *weft.Request, path string, opts *FileOptions) (*weft.Response, error)

// TreeOptions adjusts how a file tree is served. The zero value serves
// regular files off the operating system and 404s everything else.
type TreeOptions struct {
	// NotFound handles misses: paths outside the root, stat failures,
	// and non-file non-directory entries. Default weft.NotFound.
	NotFound weft.App
	// File serves resolved regular files. Default ServeFile.
	File FileHandler
	// Directory serves resolved directories. The default always 404s:
	// directory listing is deliberately not implemented.
	Directory FileHandler
	// ContentType forces one content type for every served file.
	ContentType string
	// RedirectSymlinks redirects to the canonical location instead of
	// serving content reached through a symbolic link.
	RedirectSymlinks bool
	// Permanent makes symlink redirects 301s even without a Permanent
	// decorator upstream.
	Permanent bool
	// FS substitutes the filesystem collaborator (default OS).
	FS FileSystem
	// Types substitutes the content-type resolver.
	Types *TypeResolver
}

// FileTree serves the tree rooted at root. The request's unresolved path
// suffix is joined onto the canonical root, canonicalized, and checked for
// containment before anything is stat'd or opened: a path that resolves
// outside the canonical root is a miss, never an escape. The containment
// check runs on canonical paths; comparing raw strings would let both
// dot-dot traversal and symlink escapes through.
func FileTree(root string, opts *TreeOptions) weft.App {
	if opts == nil {
		opts = &TreeOptions{}
	}
	notFound := opts.NotFound
	if notFound == nil {
		notFound = weft.NotFound
	}
	serveFile := opts.File
	if serveFile == nil {
		serveFile = ServeFile
	}
	serveDir := opts.Directory
	if serveDir == nil {
		serveDir = func(ctx context.Context, req *weft.Request, path string, fileOpts *FileOptions) (*weft.Response, error) {
			return notFound(ctx, req)
		}
	}
	fs := opts.FS
	if fs == nil {
		fs = OS
	}
	fileOpts := &FileOptions{ContentType: opts.ContentType, FS: fs, Types: opts.Types}

	return func(ctx context.Context, req *weft.Request) (*weft.Response, error) {
		canonicalRoot, err := fs.Canonical(root)
		if err != nil {
			return notFound(ctx, req)
		}

		// Build the candidate from the canonical root, so the raw-vs-
		// canonical comparison below only reflects the request's suffix.
		// Joining against a relative or symlinked root would make every
		// candidate differ from its canonical form.
		candidate := fs.Join(canonicalRoot, strings.TrimPrefix(req.PathInfo, "/"))
		canonical, err := fs.Canonical(candidate)
		if err != nil {
			return notFound(ctx, req)
		}

		if !contains(canonicalRoot, canonical) {
			return notFound(ctx, req)
		}

		if opts.RedirectSymlinks && filepath.Clean(candidate) != canonical {
			location := redirectLocation(canonicalRoot, canonical, req)
			status := 0
			if opts.Permanent {
				status = http.StatusMovedPermanently
			}
			return weft.Redirect(req, location, status), nil
		}

		fi, err := fs.Stat(canonical)
		switch {
		case err != nil:
			return notFound(ctx, req)
		case fi.IsFile:
			return serveFile(ctx, req, canonical, fileOpts)
		case fi.IsDir:
			return serveDir(ctx, req, canonical, fileOpts)
		default:
			return notFound(ctx, req)
		}
	}
}

// contains reports whether path is root or a descendant of root. Both must
// already be canonical.
func contains(root, path string) bool {
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}

// redirectLocation maps a canonical target back into the served tree as an
// absolute request path.
func redirectLocation(canonicalRoot, canonical string, req *weft.Request) string {
	rel, err := filepath.Rel(canonicalRoot, canonical)
	if err != nil {
		return req.Path()
	}
	return "/" + req.ScriptName + filepath.ToSlash(rel)
}
