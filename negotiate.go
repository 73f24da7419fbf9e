package weft

import (
	"sort"
	"strconv"
	"strings"
)

// preference is one term of a weighted Accept-style header.
type preference struct {
	value string
	q     float64
	order int
}

// parsePreferences parses an Accept-style header ("text/html;q=0.8, */*;q=0.1")
// into its weighted terms. Terms with unparsable or zero q are dropped; a
// missing q defaults to 1. Parameter handling is limited to q: other media
// type parameters are ignored for matching.
func parsePreferences(header string) []preference {
	var prefs []preference
	for i, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		value := strings.TrimSpace(fields[0])
		if value == "" {
			continue
		}
		q := 1.0
		for _, param := range fields[1:] {
			name, raw, found := strings.Cut(strings.TrimSpace(param), "=")
			if !found || !strings.EqualFold(strings.TrimSpace(name), "q") {
				continue
			}
			parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				q = 0
				break
			}
			q = parsed
		}
		if q <= 0 {
			continue
		}
		prefs = append(prefs, preference{value: strings.ToLower(value), q: q, order: i})
	}
	// Highest quality first; header order breaks ties.
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].q != prefs[j].q {
			return prefs[i].q > prefs[j].q
		}
		return prefs[i].order < prefs[j].order
	})
	return prefs
}

// fitness scores how specifically a client term matches an offered value:
// exact > subtype wildcard > full wildcard > no match.
func fitness(clientTerm, offered string) int {
	switch {
	case clientTerm == offered:
		return 3
	case strings.HasSuffix(clientTerm, "/*") &&
		strings.HasPrefix(offered, strings.TrimSuffix(clientTerm, "*")):
		return 2
	case clientTerm == "*/*" || clientTerm == "*":
		return 1
	default:
		return 0
	}
}

// bestMatch picks the offered value the header's weighted preference list
// likes best, using standard quality-value matching. ok is false when
// nothing acceptable is offered. An empty header accepts anything: the
// first offered value wins.
func bestMatch(header string, offered []string) (string, bool) {
	if len(offered) == 0 {
		return "", false
	}
	if strings.TrimSpace(header) == "" {
		return offered[0], true
	}

	best, bestFit := "", 0
	for _, pref := range parsePreferences(header) {
		for _, candidate := range offered {
			if fit := fitness(pref.value, strings.ToLower(candidate)); fit > bestFit {
				best, bestFit = candidate, fit
			}
		}
		if bestFit > 0 {
			// Preferences are sorted by quality, so the first
			// term with any match decides.
			return best, true
		}
	}
	return "", false
}
