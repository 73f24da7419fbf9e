package weft

import (
	"context"
	"net/http"
	"sort"
	"strings"
)

// Mapping is the lookup capability Branch routes through. Any container
// that can answer "which app owns this segment?" qualifies; PathMap is the
// stock implementation.
type Mapping interface {
	Lookup(key string) (App, bool)
}

// PathMap is a flat mapping from single path segments to sub-apps.
type PathMap map[string]App

// Lookup implements Mapping.
func (m PathMap) Lookup(key string) (App, bool) {
	app, ok := m[key]
	return app, ok
}

// MethodMap maps HTTP method names to sub-apps.
type MethodMap map[string]App

// Branch routes on the next path segment. It consumes exactly one decoded
// segment, advancing the request's ScriptName/PathInfo cursor, and
// dispatches to the mapped sub-app. Requests whose PathInfo does not start
// with "/", or whose segment is not in the mapping, go to notFound
// (default NotFound).
func Branch(paths Mapping, notFound App) App {
	if notFound == nil {
		notFound = NotFound
	}
	return func(ctx context.Context, req *Request) (*Response, error) {
		segment, shifted, err := req.Shift()
		if err != nil {
			return notFound(ctx, req)
		}
		app, ok := paths.Lookup(segment)
		if !ok {
			return notFound(ctx, req)
		}
		return app(ctx, shifted)
	}
}

// Cap guards a terminal app: it only dispatches when routing has consumed
// the whole path (PathInfo empty or "/"), otherwise notFound (default
// NotFound). Use it to mark "no more routing expected here".
func Cap(app App, notFound App) App {
	if notFound == nil {
		notFound = NotFound
	}
	return func(ctx context.Context, req *Request) (*Response, error) {
		if !req.AtEnd() {
			return notFound(ctx, req)
		}
		return app(ctx, req)
	}
}

// Method dispatches on the request method. Unmatched methods go to
// methodNotAllowed (default MethodNotAllowed), which also receives an Allow
// header listing the supported methods.
func Method(methods MethodMap, methodNotAllowed App) App {
	allow := make([]string, 0, len(methods))
	for m := range methods {
		allow = append(allow, m)
	}
	sort.Strings(allow)
	if methodNotAllowed == nil {
		methodNotAllowed = MethodNotAllowed
	}
	allowed := strings.Join(allow, ", ")
	return func(ctx context.Context, req *Request) (*Response, error) {
		if app, ok := methods[req.Method]; ok {
			return app(ctx, req)
		}
		resp, err := methodNotAllowed(ctx, req)
		if err == nil && resp != nil && allowed != "" {
			if resp.Header == nil {
				resp.Header = make(http.Header)
			}
			if resp.Header.Get("Allow") == "" {
				resp.Header.Set("Allow", allowed)
			}
		}
		return resp, err
	}
}

// FirstFound tries apps in order, advancing only past responses whose
// status is exactly 404. The first non-404 response wins; if every app
// 404s, the last 404 is returned. Each attempt sees the same request.
func FirstFound(cascade []App) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		var resp *Response
		var err error
		for _, app := range cascade {
			resp, err = app(ctx, req)
			if err != nil {
				return nil, err
			}
			if resp == nil || resp.Status != http.StatusNotFound {
				return resp, nil
			}
		}
		if resp == nil {
			return NotFound(ctx, req)
		}
		return resp, nil
	}
}

// Select defers app choice to a selector evaluated per request, the
// dynamic-dispatch escape hatch for routing that has no static map. A nil
// app from the selector is a failure (ErrNoApp), not a miss.
func Select(selector func(ctx context.Context, req *Request) (App, error)) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		app, err := selector(ctx, req)
		if err != nil {
			return nil, err
		}
		if app == nil {
			return nil, ErrNoApp
		}
		return app(ctx, req)
	}
}
