// Package weft is a toolkit of composable HTTP request-handling units.
//
// The central abstraction is the App: a function that accepts a request and
// produces a response. Apps compose into routing trees, content-negotiation
// dispatchers, cascades, and decorated middleware chains, and terminate at
// producers (Content, JSON, Redirect, or the fileapp package's file and
// file-tree servers).
//
// # Key Components
//
//   - App / Decorator: the composition algebra (Branch, Cap, Method,
//     FirstFound, Select, the negotiator family)
//   - Decorators: Error, Log, Time, Headers, Tap, Trap, Permanent, Date,
//     ContentLength
//   - InterpretFirstRange: Range header interpretation (first continuous run)
//   - Store: cookie- or path-keyed session registries owning per-session apps
//
// # Routing Model
//
// A request carries a routing cursor split into ScriptName (the resolved
// prefix) and PathInfo (the unresolved suffix). Each Branch step consumes one
// decoded path segment, moving it from PathInfo onto ScriptName. Requests are
// never mutated in place; routing steps return shallow copies.
//
// # Example Usage
//
//	app := weft.Decorators([]weft.Decorator{
//	    func(a weft.App) weft.App { return weft.Log(a, nil) },
//	    func(a weft.App) weft.App { return weft.Error(a, false) },
//	}, weft.Branch(weft.PathMap{
//	    "static": fileapp.FileTree("/srv/www", nil),
//	    "status": weft.Cap(func(ctx context.Context, req *weft.Request) (*weft.Response, error) {
//	        return weft.OK("text/plain", []byte("ok\n")), nil
//	    }, nil),
//	}, nil))
//
// Routing misses are ordinary responses (404, 405, 406), never errors; the
// error return of an App carries genuine failures, which reach the nearest
// Error decorator or the caller.
//
// See the fileapp package for the file responder and file-tree router, and
// the wefthttp package for serving an App behind net/http.
package weft
