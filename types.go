package weft

import (
	"context"
	"io"
	"net/http"
)

// App is a unit of request handling. An App returns a response for every
// routable request; routing misses are 404/405/406 responses. The error
// return is the failure channel: a non-nil error means the app failed, and
// the failure propagates to the nearest enclosing Error decorator or to the
// caller.
type App func(ctx context.Context, req *Request) (*Response, error)

// Decorator transforms an app into a new app with behavior wrapped around it.
type Decorator func(App) App

// Request is an inbound HTTP request as seen by apps. The routing cursor is
// split into ScriptName (resolved prefix) and PathInfo (unresolved suffix);
// joined they reconstruct the original path. PathInfo always starts with "/"
// or is empty.
//
// Requests are treated as immutable by the toolkit: routing steps and
// decorators derive new requests with Shift, WithPermanent, and WithSession
// rather than mutating in place.
type Request struct {
	Method     string
	ScriptName string
	PathInfo   string
	Header     http.Header
	Body       io.Reader
	Host       string
	Proto      string
	RemoteAddr string

	path      string // original path, fixed at construction
	permanent bool
	session   *Session
}

// Response is an outbound HTTP response. Body is nil when the response has
// no entity; statuses defined as bodiless (1xx, 204, 304) must have a nil
// Body and no content-length or content-type headers.
type Response struct {
	Status int
	Header http.Header
	Body   io.Reader
}

// ByteRange is a half-open byte interval [Begin, End) over a resource.
type ByteRange struct {
	Begin int64
	End   int64
}

// Len returns the number of bytes the range covers.
func (r ByteRange) Len() int64 { return r.End - r.Begin }

// BodilessStatus reports whether a status code forbids an entity body.
func BodilessStatus(status int) bool {
	return (status >= 100 && status < 200) ||
		status == http.StatusNoContent ||
		status == http.StatusNotModified
}
