package mcp

import (
	"fmt"
	"strings"
)

// cacheKey joins a tool name and its arguments.
func cacheKey(tool string, args ...any) string {
	var sb strings.Builder
	sb.WriteString(tool)
	for _, a := range args {
		sb.WriteByte(0)
		fmt.Fprint(&sb, a)
	}
	return sb.String()
}

// foldKeyword matches the engine's keyword normalization so equivalent
// searches share a cache entry.
func foldKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// cachedSearch returns the cached result for key or computes and stores it.
// The index never changes after load, so entries never go stale; failed
// searches are not cached. The second result reports a cache hit.
func cachedSearch[T any](s *Server, key string, compute func() (T, error)) (T, bool) {
	if s.searchCache != nil {
		if v, ok := s.searchCache.Get(key); ok {
			if res, ok := v.(T); ok {
				return res, true
			}
		}
	}

	res, err := compute()
	if err == nil && s.searchCache != nil {
		s.searchCache.Add(key, res)
	}
	return res, false
}
