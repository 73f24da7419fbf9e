package weft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Content builds a response carrying the given body and content type.
// Bodiless statuses get no body and no entity headers regardless of the
// arguments.
func Content(status int, contentType string, body []byte) *Response {
	resp := &Response{
		Status: status,
		Header: make(http.Header),
	}
	if BodilessStatus(status) {
		return resp
	}
	resp.Header.Set("Content-Type", contentType)
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	resp.Body = bytes.NewReader(body)
	return resp
}

// OK builds a 200 response with the given content type and body.
func OK(contentType string, body []byte) *Response {
	return Content(http.StatusOK, contentType, body)
}

// JSON encodes v as an application/json response.
func JSON(status int, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json response: %w", err)
	}
	return Content(status, "application/json", body), nil
}

// Redirect builds a redirect to location, resolved against the request's
// path. A zero status selects via the precedence chain in redirectStatus,
// with 307 as the final default.
func Redirect(req *Request, location string, status int) *Response {
	status = redirectStatus(status, req, 0)
	resolved := location
	if req != nil {
		if u, err := url.Parse(location); err == nil {
			base := &url.URL{Path: req.Path()}
			resolved = base.ResolveReference(u).String()
		}
	}
	body := fmt.Appendf(nil, "See %s\n", resolved)
	resp := Content(status, "text/plain; charset=utf-8", body)
	resp.Header.Set("Location", resolved)
	return resp
}

// PermanentRedirect builds a redirect that defaults to 301 when neither an
// explicit status nor a request permanence flag decides otherwise.
func PermanentRedirect(req *Request, location string, status int) *Response {
	return Redirect(req, location, redirectStatus(status, req, http.StatusMovedPermanently))
}

// TemporaryRedirect builds a redirect that defaults to 307.
func TemporaryRedirect(req *Request, location string, status int) *Response {
	return Redirect(req, location, redirectStatus(status, req, http.StatusTemporaryRedirect))
}

// redirectStatus resolves the redirect status precedence chain in one place:
// an explicit status wins, then the request's inherited permanence flag,
// then the caller-implied default, then 307.
func redirectStatus(explicit int, req *Request, fallback int) int {
	switch {
	case explicit != 0:
		return explicit
	case req != nil && req.permanent:
		return http.StatusMovedPermanently
	case fallback != 0:
		return fallback
	default:
		return http.StatusTemporaryRedirect
	}
}

// StatusResponse builds a plain-text response for a standard status code.
func StatusResponse(status int) *Response {
	text := http.StatusText(status)
	if text == "" {
		text = "Unknown Status"
	}
	return Content(status, "text/plain; charset=utf-8", fmt.Appendf(nil, "%d %s\n", status, text))
}

// Stock status apps. Each is App-shaped so it can terminate a routing chain
// directly, e.g. as a Branch's notFound.

// NotFound responds 404.
func NotFound(_ context.Context, _ *Request) (*Response, error) {
	return StatusResponse(http.StatusNotFound), nil
}

// BadRequest responds 400.
func BadRequest(_ context.Context, _ *Request) (*Response, error) {
	return StatusResponse(http.StatusBadRequest), nil
}

// MethodNotAllowed responds 405.
func MethodNotAllowed(_ context.Context, _ *Request) (*Response, error) {
	return StatusResponse(http.StatusMethodNotAllowed), nil
}

// NotAcceptable responds 406.
func NotAcceptable(_ context.Context, _ *Request) (*Response, error) {
	return StatusResponse(http.StatusNotAcceptable), nil
}

// RangeNotSatisfiable responds 416.
func RangeNotSatisfiable(_ context.Context, _ *Request) (*Response, error) {
	return StatusResponse(http.StatusRequestedRangeNotSatisfiable), nil
}

// ServerError responds 500.
func ServerError(_ context.Context, _ *Request) (*Response, error) {
	return StatusResponse(http.StatusInternalServerError), nil
}
