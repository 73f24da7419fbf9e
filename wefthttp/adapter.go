// Package wefthttp bridges weft apps onto net/http, so a composed app can
// sit behind any stock mux or server.
package wefthttp

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/sagarc03/weft"
)

// NewRequest translates an inbound net/http request into a weft request
// with a fully unresolved routing cursor. The escaped path is carried, not
// the decoded one: segment decoding happens when the cursor shifts.
func NewRequest(r *http.Request) *weft.Request {
	req := weft.NewRequest(r.Method, r.URL.EscapedPath())
	req.Header = r.Header
	req.Body = r.Body
	req.Host = r.Host
	req.Proto = r.Proto
	req.RemoteAddr = r.RemoteAddr
	return req
}

// Handler serves a weft app as an http.Handler. App failures that escape
// without an Error decorator become plain 500s here, after logging.
func Handler(app weft.App) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := app(r.Context(), NewRequest(r))
		if err != nil {
			slog.Error("unhandled app failure", "method", r.Method, "path", r.URL.Path, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if resp == nil {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		WriteResponse(w, resp)
	})
}

// WriteResponse writes a weft response to a net/http response writer,
// streaming the body and closing it when the app handed over a closer.
func WriteResponse(w http.ResponseWriter, resp *weft.Response) {
	header := w.Header()
	for name, values := range resp.Header {
		header[name] = values
	}
	w.WriteHeader(resp.Status)
	if resp.Body == nil {
		return
	}
	if closer, ok := resp.Body.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are out; nothing to send the client. The connection
		// is likely gone.
		slog.Debug("response body copy interrupted", "err", err)
	}
}
