package fileapp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sagarc03/weft"
)

// FileOptions adjusts how a file is served. The zero value serves off the
// operating system with extension-derived content types.
type FileOptions struct {
	// ContentType overrides extension-based resolution when non-empty.
	ContentType string
	// FS substitutes the filesystem collaborator (default OS).
	FS FileSystem
	// Types substitutes the content-type resolver.
	Types *TypeResolver
}

func (o *FileOptions) fs() FileSystem {
	if o != nil && o.FS != nil {
		return o.FS
	}
	return OS
}

func (o *FileOptions) contentType(path string) string {
	if o != nil && o.ContentType != "" {
		return o.ContentType
	}
	var types *TypeResolver
	if o != nil {
		types = o.Types
	}
	return types.Lookup(path)
}

// File builds an app that serves the one file at path.
func File(path string, opts *FileOptions) weft.App {
	return func(ctx context.Context, req *weft.Request) (*weft.Response, error) {
		return ServeFile(ctx, req, path, opts)
	}
}

// ServeFile produces a full, partial, or conditional response for the file
// at path.
//
// A Range header is honored unless an If-Range header disagrees with the
// file's current ETag, in which case the cached-range precondition failed
// and the full content is served. An unparsable Range header is silently
// ignored, like a permissive file server; a parsed range past the end of
// the file is a 416. Without a range, an If-None-Match hit is a 304.
// Missing files translate to the 404 response, indistinguishable from an
// absent route.
func ServeFile(ctx context.Context, req *weft.Request, path string, opts *FileOptions) (*weft.Response, error) {
	fs := opts.fs()

	fi, err := fs.Stat(path)
	if err != nil || !fi.IsFile {
		return weft.NotFound(ctx, req)
	}
	etag := ETag(fi)
	contentType := opts.contentType(path)

	rangeHeader := req.Header.Get("Range")
	if rangeHeader != "" {
		if ifRange := req.Header.Get("If-Range"); ifRange != "" && ifRange != etag {
			rangeHeader = ""
		}
	}

	if rangeHeader != "" {
		if r, ok := weft.InterpretFirstRange(rangeHeader, fi.Size); ok {
			if r.End > fi.Size || r.Begin >= r.End {
				return weft.RangeNotSatisfiable(ctx, req)
			}
			return servePartial(ctx, req, path, fs, fi, r, contentType, etag)
		}
		// Unparsable range: fall through to the full response.
	}

	if req.Header.Get("If-None-Match") == etag {
		return &weft.Response{Status: http.StatusNotModified, Header: make(http.Header)}, nil
	}

	resp := &weft.Response{Status: http.StatusOK, Header: make(http.Header)}
	resp.Header.Set("Content-Type", contentType)
	resp.Header.Set("Content-Length", strconv.FormatInt(fi.Size, 10))
	resp.Header.Set("Etag", etag)
	resp.Header.Set("Accept-Ranges", "bytes")
	if req.Method == http.MethodHead {
		return resp, nil
	}
	body, err := fs.Open(path, nil)
	if err != nil {
		return weft.NotFound(ctx, req)
	}
	resp.Body = body
	return resp, nil
}

func servePartial(ctx context.Context, req *weft.Request, path string, fs FileSystem, fi FileInfo, r weft.ByteRange, contentType, etag string) (*weft.Response, error) {
	resp := &weft.Response{Status: http.StatusPartialContent, Header: make(http.Header)}
	resp.Header.Set("Content-Type", contentType)
	resp.Header.Set("Content-Length", strconv.FormatInt(r.Len(), 10))
	resp.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", r.Begin, r.End-1, fi.Size))
	resp.Header.Set("Etag", etag)
	if req.Method == http.MethodHead {
		return resp, nil
	}
	body, err := fs.Open(path, &r)
	if err != nil {
		return weft.NotFound(ctx, req)
	}
	resp.Body = body
	return resp, nil
}
