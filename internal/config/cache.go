package config

import (
	"strings"
	"time"
)

// CacheConfig drives the Redis cache in front of GET /api/entries and
// GET /api/stats.  Every cache key embeds the generation counter stored at
// Prefix+":gen"; each successful write (add, delete, clear) bumps it, so a
// write retires every cached list and stats body at once and the old keys
// age out after TTL.  Methods not listed here count as writes.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // cached methods, upper-case
	TTL          time.Duration   // lifetime of one cached body
	KeyStrategy  string          // route | route_query | method_route | method_route_query
	Prefix       string          // namespace for body keys and the generation counter
	MaxBodyBytes int             // larger responses are served but not cached
}

// LoadCacheConfig reads the CACHE_* variables.  The entry list grows with
// the log, so MaxBodyBytes bounds what a long history can pin in Redis.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "logbook:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1048576),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
