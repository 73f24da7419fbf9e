package weft

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Decorators applies decorator constructors to app in reverse order, so the
// first element ends up outermost: it sees the request first and the
// response last.
func Decorators(list []Decorator, app App) App {
	for i := len(list) - 1; i >= 0; i-- {
		app = list[i](app)
	}
	return app
}

// Tap consults tap before the app: a non-nil response from tap is returned
// immediately and the app is never invoked. A nil response falls through.
func Tap(app App, tap App) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		resp, err := tap(ctx, req)
		if err != nil || resp != nil {
			return resp, err
		}
		return app(ctx, req)
	}
}

// Trap passes the app's response through trap, which may mutate it in place
// (returning nil) or return a replacement. The response's header map is
// guaranteed non-nil before trap runs. Failures bypass the trap.
func Trap(app App, trap func(resp *Response) *Response) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		resp, err := app(ctx, req)
		if err != nil || resp == nil {
			return resp, err
		}
		if resp.Header == nil {
			resp.Header = make(http.Header)
		}
		if replacement := trap(resp); replacement != nil {
			resp = replacement
		}
		return resp, nil
	}
}

// Error converts failures from app, including panics, into 500 responses.
// The failure's detail reaches the body only when debug is set; debug must
// stay off in production, since it leaks internals to the client.
func Error(app App, debug bool) App {
	return func(ctx context.Context, req *Request) (resp *Response, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				resp, err = errorResponse(req, fmt.Errorf("panic: %v", recovered), debug), nil
			}
		}()
		resp, err = app(ctx, req)
		if err != nil {
			return errorResponse(req, err, debug), nil
		}
		return resp, nil
	}
}

func errorResponse(req *Request, cause error, debug bool) *Response {
	slog.Error("app failed", "method", req.Method, "path", req.Path(), "err", cause)
	if debug {
		body := fmt.Appendf(nil, "500 Internal Server Error\n\n%v\n", cause)
		return Content(http.StatusInternalServerError, "text/plain; charset=utf-8", body)
	}
	return StatusResponse(http.StatusInternalServerError)
}

// Log emits a line when the request arrives and another when the response
// (or failure) leaves. A nil logger uses slog.Default.
func Log(app App, logger *slog.Logger) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		log := logger
		if log == nil {
			log = slog.Default()
		}
		log.Info("request received",
			"method", req.Method,
			"path", req.Path(),
			"proto", req.Proto,
			"remote", req.RemoteAddr,
		)
		resp, err := app(ctx, req)
		if err != nil {
			log.Error("request failed",
				"method", req.Method,
				"path", req.Path(),
				"remote", req.RemoteAddr,
				"err", err,
			)
			return nil, err
		}
		// "-" stands in for streaming or absent lengths, as in common
		// access-log formats.
		contentLength := "-"
		status := 0
		if resp != nil {
			status = resp.Status
			if cl := resp.Header.Get("Content-Length"); cl != "" {
				contentLength = cl
			}
		}
		log.Info("response sent",
			"method", req.Method,
			"path", req.Path(),
			"remote", req.RemoteAddr,
			"status", status,
			"content_length", contentLength,
		)
		return resp, nil
	}
}

// Time stamps the response with the elapsed wall-clock time of the app's
// completion, excluding any time spent streaming the body afterward.
func Time(app App) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		start := time.Now()
		resp, err := app(ctx, req)
		if err != nil || resp == nil {
			return resp, err
		}
		if resp.Header == nil {
			resp.Header = make(http.Header)
		}
		elapsed := time.Since(start)
		resp.Header.Set("X-Response-Time", strconv.FormatInt(elapsed.Milliseconds(), 10)+"ms")
		return resp, nil
	}
}

// Headers merges extra headers into the response, but only under names the
// app's own response left unset: app-supplied headers always win.
func Headers(app App, headers http.Header) App {
	return Trap(app, func(resp *Response) *Response {
		for name, values := range headers {
			if _, present := resp.Header[http.CanonicalHeaderKey(name)]; present {
				continue
			}
			for _, v := range values {
				resp.Header.Add(name, v)
			}
		}
		return nil
	})
}

// Date sets the response Date header, if the app did not.
func Date(app App) App {
	return Trap(app, func(resp *Response) *Response {
		if resp.Header.Get("Date") == "" {
			resp.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
		}
		return nil
	})
}

// Permanent marks requests as permanently routed, so redirect producers
// below prefer 301 over 307, and stamps responses with a far-future Expires
// header. future overrides the default horizon of ten years out.
func Permanent(app App, future func() time.Time) App {
	if future == nil {
		future = func() time.Time { return time.Now().AddDate(10, 0, 0) }
	}
	inner := func(ctx context.Context, req *Request) (*Response, error) {
		return app(ctx, req.WithPermanent(true))
	}
	return Trap(inner, func(resp *Response) *Response {
		resp.Header.Set("Expires", future().UTC().Format(http.TimeFormat))
		return nil
	})
}

// ContentLength materializes a Content-Length header for responses that
// stream a body without one, by buffering the body. Bodiless statuses are
// left alone.
func ContentLength(app App) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		resp, err := app(ctx, req)
		if err != nil || resp == nil || resp.Body == nil || BodilessStatus(resp.Status) {
			return resp, err
		}
		if resp.Header == nil {
			resp.Header = make(http.Header)
		}
		if resp.Header.Get("Content-Length") != "" {
			return resp, nil
		}
		body, readErr := io.ReadAll(resp.Body)
		if closer, ok := resp.Body.(io.Closer); ok {
			_ = closer.Close()
		}
		if readErr != nil {
			return nil, fmt.Errorf("buffer response body: %w", readErr)
		}
		resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
		resp.Body = bytes.NewReader(body)
		return resp, nil
	}
}
