package ratelimit

import "strings"

// MatchEndpoint resolves a request to its endpoint budget. The health check
// endpoint is never limited. Exact path and method matches win over prefix rules; a
// rule whose path ends in "/" covers the whole subtree, which is how one
// entry budgets all of /api/data/. A nil return means the caller's default
// budget applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
