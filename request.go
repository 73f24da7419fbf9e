package weft

import (
	"net/http"
	"net/url"
	"strings"
)

// NewRequest constructs a request for the given method and absolute path.
// The routing cursor starts fully unresolved: ScriptName is empty and
// PathInfo is the whole path.
func NewRequest(method, path string) *Request {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &Request{
		Method:   method,
		PathInfo: path,
		Header:   make(http.Header),
		Proto:    "HTTP/1.1",
		path:     path,
	}
}

// Path returns the original request path, independent of routing progress.
func (r *Request) Path() string {
	if r.path != "" {
		return r.path
	}
	return r.ScriptName + r.PathInfo
}

// Permanent reports whether an enclosing Permanent decorator has marked the
// request, asking redirect producers to prefer 301 over 307.
func (r *Request) Permanent() bool { return r.permanent }

// Session returns the session attached by a session router, or nil.
func (r *Request) Session() *Session { return r.session }

// clone returns a shallow copy. Header and Body are shared; routing steps
// only ever change the cursor and context fields.
func (r *Request) clone() *Request {
	r2 := *r
	return &r2
}

// WithPermanent derives a request with the permanence flag set.
func (r *Request) WithPermanent(permanent bool) *Request {
	r2 := r.clone()
	r2.permanent = permanent
	return r2
}

// WithSession derives a request carrying the given session.
func (r *Request) WithSession(s *Session) *Request {
	r2 := r.clone()
	r2.session = s
	return r2
}

// Shift consumes the next path segment, returning the decoded segment and a
// derived request whose cursor has advanced: the raw segment and its slash
// move from PathInfo onto ScriptName. Shift fails when PathInfo does not
// start with "/" or the segment does not percent-decode.
func (r *Request) Shift() (string, *Request, error) {
	if !strings.HasPrefix(r.PathInfo, "/") {
		return "", nil, ErrNoSegment
	}
	rest := r.PathInfo[1:]
	raw := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		raw = rest[:i]
	}
	segment, err := url.PathUnescape(raw)
	if err != nil {
		return "", nil, ErrBadSegment
	}
	r2 := r.clone()
	r2.ScriptName = r.ScriptName + raw + "/"
	r2.PathInfo = rest[len(raw):]
	return segment, r2, nil
}

// AtEnd reports whether routing has consumed the whole path: PathInfo is
// empty or a bare "/".
func (r *Request) AtEnd() bool {
	return r.PathInfo == "" || r.PathInfo == "/"
}
