package weft_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/sagarc03/weft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionEcho reports the session identifier it was dispatched under.
func sessionEcho(s *weft.Session) weft.App {
	return func(ctx context.Context, req *weft.Request) (*weft.Response, error) {
		resp := weft.StatusResponse(http.StatusOK)
		resp.Header.Set("X-Session", s.ID)
		return resp, nil
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := weft.NewStore(sessionEcho)

	s := store.Create()
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Route)
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = store.Get("no-such-session")
	assert.False(t, ok)
}

func TestStore_DistinctIdentifiers(t *testing.T) {
	store := weft.NewStore(sessionEcho)

	a := store.Create()
	b := store.Create()

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, store.Len())
}

func TestCookieSessions_FreshClientGetsCookie(t *testing.T) {
	store := weft.NewStore(sessionEcho)
	app := weft.CookieSessions(store, "sid")

	resp, err := app(t.Context(), weft.NewRequest("GET", "/"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, 1, store.Len())

	setCookie := resp.Header.Get("Set-Cookie")
	require.NotEmpty(t, setCookie)
	assert.Contains(t, setCookie, "sid="+resp.Header.Get("X-Session"))
}

func TestCookieSessions_RecognizedCookieReusesSession(t *testing.T) {
	store := weft.NewStore(sessionEcho)
	app := weft.CookieSessions(store, "sid")

	s := store.Create()

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Cookie", (&http.Cookie{Name: "sid", Value: s.ID}).String())
	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, s.ID, resp.Header.Get("X-Session"))
	// Dispatching to a live session must not mint another one or re-set
	// the cookie.
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, resp.Header.Get("Set-Cookie"))
}

func TestCookieSessions_StaleCookieMintsFreshSession(t *testing.T) {
	store := weft.NewStore(sessionEcho)
	app := weft.CookieSessions(store, "sid")

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Cookie", (&http.Cookie{Name: "sid", Value: "expired"}).String())
	resp, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.NotEmpty(t, resp.Header.Get("Set-Cookie"))
}

func TestCookieSessions_TouchesLastAccess(t *testing.T) {
	store := weft.NewStore(sessionEcho)
	app := weft.CookieSessions(store, "sid")

	s := store.Create()
	before := s.LastAccess()

	req := weft.NewRequest("GET", "/")
	req.Header.Set("Cookie", (&http.Cookie{Name: "sid", Value: s.ID}).String())
	_, err := app(t.Context(), req)

	require.NoError(t, err)
	assert.False(t, s.LastAccess().Before(before))
}

func TestPathSessions_FreshClientRedirectsIntoSubtree(t *testing.T) {
	store := weft.NewStore(sessionEcho)
	app := weft.PathSessions(store)

	resp, err := app(t.Context(), weft.NewRequest("GET", "/"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.Status)
	assert.Equal(t, 1, store.Len())

	location := resp.Header.Get("Location")
	require.True(t, strings.HasSuffix(location, "/"))
}

func TestPathSessions_RecognizedSegmentDispatches(t *testing.T) {
	store := weft.NewStore(func(s *weft.Session) weft.App {
		return echoCursor
	})
	app := weft.PathSessions(store)

	s := store.Create()

	resp, err := app(t.Context(), weft.NewRequest("GET", "/"+s.ID+"/files"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	// The identifier segment is consumed before the session route runs.
	assert.Equal(t, s.ID+"/", resp.Header.Get("X-Script-Name"))
	assert.Equal(t, "/files", resp.Header.Get("X-Path-Info"))
	assert.Equal(t, 1, store.Len())
}

func TestPathSessions_UnknownSegmentMintsFreshSession(t *testing.T) {
	store := weft.NewStore(sessionEcho)
	app := weft.PathSessions(store)

	resp, err := app(t.Context(), weft.NewRequest("GET", "/deadbeef/files"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.Status)
	assert.Equal(t, 1, store.Len())
}

func TestSessionAccessor(t *testing.T) {
	store := weft.NewStore(func(s *weft.Session) weft.App {
		return func(ctx context.Context, req *weft.Request) (*weft.Response, error) {
			require.NotNil(t, req.Session())
			assert.Equal(t, s.ID, req.Session().ID)
			return weft.StatusResponse(http.StatusOK), nil
		}
	})
	app := weft.CookieSessions(store, "sid")

	_, err := app(t.Context(), weft.NewRequest("GET", "/"))
	require.NoError(t, err)
}
