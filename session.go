package weft

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one client's registry entry: a random identifier, a
// last-access timestamp, and a sub-app created once when the session was.
type Session struct {
	ID    string
	Route App

	mu         sync.Mutex
	lastAccess time.Time
}

// LastAccess returns the time the session was last dispatched to.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastAccess = time.Now()
	s.mu.Unlock()
}

// Store is a process-lifetime session registry. Sessions are created on
// first sight of a client and live until the store is discarded; there is
// no expiry. Two cookie-less requests racing can each mint a session: the
// registry itself is guarded, but creation is not deduplicated, matching
// the at-most-one-cookie-wins behavior of the clients themselves.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	newRoute func(*Session) App
}

// NewStore builds a session store. newRoute constructs each session's owned
// sub-app at creation time.
func NewStore(newRoute func(*Session) App) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		newRoute: newRoute,
	}
}

// Create mints a session with a fresh identifier, collision-checked against
// the live registry.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	var id string
	for {
		id = uuid.NewString()
		if _, taken := st.sessions[id]; !taken {
			break
		}
	}
	s := &Session{ID: id, lastAccess: time.Now()}
	s.Route = st.newRoute(s)
	st.sessions[id] = s
	return s
}

// Get looks up a live session and touches its last-access time.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// CookieSessions keys sessions on a cookie. A request carrying a recognized
// cookie dispatches to its session's route; anything else gets a fresh
// session and a Set-Cookie on the way out.
func CookieSessions(store *Store, cookieName string) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		if id, ok := requestCookie(req, cookieName); ok {
			if s, live := store.Get(id); live {
				return s.Route(ctx, req.WithSession(s))
			}
		}
		s := store.Create()
		resp, err := s.Route(ctx, req.WithSession(s))
		if err != nil || resp == nil {
			return resp, err
		}
		if resp.Header == nil {
			resp.Header = make(http.Header)
		}
		cookie := &http.Cookie{Name: cookieName, Value: s.ID, Path: "/"}
		resp.Header.Add("Set-Cookie", cookie.String())
		return resp, nil
	}
}

// PathSessions keys sessions on the leading path segment. A recognized
// session identifier is consumed like a Branch segment; anything else gets
// a fresh session and a redirect into its subtree.
func PathSessions(store *Store) App {
	return func(ctx context.Context, req *Request) (*Response, error) {
		if segment, shifted, err := req.Shift(); err == nil {
			if s, live := store.Get(segment); live {
				return s.Route(ctx, shifted.WithSession(s))
			}
		}
		s := store.Create()
		return Redirect(req, s.ID+"/", 0), nil
	}
}

// requestCookie reads one cookie out of the request's Cookie header, using
// the stock cookie codec.
func requestCookie(req *Request, name string) (string, bool) {
	carrier := http.Request{Header: req.Header}
	cookie, err := carrier.Cookie(name)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}
