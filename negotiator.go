package weft

import (
	"context"
	"net/http"
	"sort"
)

// negotiator dispatches on the best match between a request-derived
// preference header and the mapped candidate values. The winner is recorded
// on the outgoing response under annotate, unless annotate is empty.
func negotiator(header func(*Request) string, candidates map[string]App, annotate string, notAcceptable App) App {
	if notAcceptable == nil {
		notAcceptable = NotAcceptable
	}
	offered := make([]string, 0, len(candidates))
	for value := range candidates {
		offered = append(offered, value)
	}
	// Fixed candidate order keeps tie-breaks, and the empty-header default,
	// stable across runs.
	sort.Strings(offered)
	return func(ctx context.Context, req *Request) (*Response, error) {
		winner, ok := bestMatch(header(req), offered)
		if !ok {
			return notAcceptable(ctx, req)
		}
		resp, err := candidates[winner](ctx, req)
		if err != nil || resp == nil || annotate == "" {
			return resp, err
		}
		if resp.Header == nil {
			resp.Header = make(http.Header)
		}
		if !BodilessStatus(resp.Status) && resp.Header.Get(annotate) == "" {
			resp.Header.Set(annotate, winner)
		}
		return resp, nil
	}
}

// ContentTypeNegotiator dispatches on the Accept header and tags the
// response's Content-Type with the negotiated value.
func ContentTypeNegotiator(candidates map[string]App, notAcceptable App) App {
	return negotiator(func(r *Request) string {
		return r.Header.Get("Accept")
	}, candidates, "Content-Type", notAcceptable)
}

// LanguageNegotiator dispatches on Accept-Language and tags Content-Language.
func LanguageNegotiator(candidates map[string]App, notAcceptable App) App {
	return negotiator(func(r *Request) string {
		return r.Header.Get("Accept-Language")
	}, candidates, "Content-Language", notAcceptable)
}

// CharsetNegotiator dispatches on Accept-Charset.
func CharsetNegotiator(candidates map[string]App, notAcceptable App) App {
	return negotiator(func(r *Request) string {
		return r.Header.Get("Accept-Charset")
	}, candidates, "Charset", notAcceptable)
}

// EncodingNegotiator dispatches on Accept-Encoding and tags Content-Encoding.
func EncodingNegotiator(candidates map[string]App, notAcceptable App) App {
	return negotiator(func(r *Request) string {
		return r.Header.Get("Accept-Encoding")
	}, candidates, "Content-Encoding", notAcceptable)
}

// HostNegotiator dispatches on the request host (port stripped when the map
// key carries none). Host negotiation never annotates the response.
func HostNegotiator(candidates map[string]App, notAcceptable App) App {
	return negotiator(func(r *Request) string {
		return hostOnly(r.Host)
	}, candidates, "", notAcceptable)
}

// hostOnly strips a :port suffix, leaving IPv6 literals intact.
func hostOnly(host string) string {
	for i := len(host) - 1; i >= 0; i-- {
		switch host[i] {
		case ':':
			return host[:i]
		case ']':
			return host
		}
		if host[i] < '0' || host[i] > '9' {
			return host
		}
	}
	return host
}
