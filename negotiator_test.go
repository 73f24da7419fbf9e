package weft_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/sagarc03/weft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeNegotiator_ExactMatch(t *testing.T) {
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/html":        constant(http.StatusOK),
		"application/json": constant(http.StatusCreated),
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Accept", "application/json")

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestContentTypeNegotiator_QualityOrdering(t *testing.T) {
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/html":        constant(http.StatusOK),
		"application/json": constant(http.StatusCreated),
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Accept", "application/json;q=0.2, text/html;q=0.9")

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestContentTypeNegotiator_Wildcards(t *testing.T) {
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/plain": constant(http.StatusOK),
	}, nil)

	for _, accept := range []string{"*/*", "text/*"} {
		req := weft.NewRequest("GET", "/")
		req.Header.Set("Accept", accept)

		resp, err := app(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status, accept)
	}
}

func TestContentTypeNegotiator_NotAcceptable(t *testing.T) {
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/html": constant(http.StatusOK),
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Accept", "image/png")

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotAcceptable, resp.Status)
}

func TestContentTypeNegotiator_EmptyHeaderAcceptsAnything(t *testing.T) {
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/html": constant(http.StatusOK),
	}, nil)

	resp, err := app(t.Context(), weft.NewRequest("GET", "/"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestContentTypeNegotiator_EmptyHeaderDefaultIsStable(t *testing.T) {
	// Candidates are ordered lexically, so the empty-header default is the
	// same app on every run.
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/html":        constant(http.StatusOK),
		"application/json": constant(http.StatusCreated),
		"text/plain":       constant(http.StatusAccepted),
	}, nil)

	for range 5 {
		resp, err := app(t.Context(), weft.NewRequest("GET", "/"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	}
}

func TestContentTypeNegotiator_ZeroQualityExcludes(t *testing.T) {
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/html": constant(http.StatusOK),
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Accept", "text/html;q=0")

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotAcceptable, resp.Status)
}

func TestContentTypeNegotiator_AppHeaderWins(t *testing.T) {
	app := weft.ContentTypeNegotiator(map[string]weft.App{
		"text/html": func(ctx context.Context, req *weft.Request) (*weft.Response, error) {
			return weft.OK("text/html; charset=utf-8", []byte("<p>hi</p>")), nil
		},
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Accept", "text/html")

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestLanguageNegotiator_AnnotatesResponse(t *testing.T) {
	app := weft.LanguageNegotiator(map[string]weft.App{
		"en": constant(http.StatusOK),
		"fr": constant(http.StatusOK),
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Accept-Language", "fr;q=0.9, en;q=0.2")

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, "fr", resp.Header.Get("Content-Language"))
}

func TestHostNegotiator_NeverAnnotates(t *testing.T) {
	app := weft.HostNegotiator(map[string]weft.App{
		"example.com": constant(http.StatusOK),
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Host = "example.com:8080"

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	// Host negotiation has no response header to tag.
	assert.Empty(t, resp.Header.Get("Host"))
}

func TestHostNegotiator_Unmatched(t *testing.T) {
	app := weft.HostNegotiator(map[string]weft.App{
		"example.com": constant(http.StatusOK),
	}, nil)

	req := weft.NewRequest("GET", "/")
	req.Host = "other.test"

	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotAcceptable, resp.Status)
}
