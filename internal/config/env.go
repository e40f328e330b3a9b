package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// coalesce returns the raw environment value when the key is set and not
// blank, otherwise the default.
func coalesce(key string, def interface{}) interface{} {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func envStr(k, d string) string { return cast.ToString(coalesce(k, d)) }

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

// envList splits a comma-separated variable, dropping blank items.
func envList(k string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envInt(k string, d int) int {
	n, err := cast.ToIntE(coalesce(k, d))
	if err != nil {
		return d
	}
	return n
}

func envDur(k string, d time.Duration) time.Duration {
	dur, err := cast.ToDurationE(coalesce(k, d))
	if err != nil {
		return d
	}
	return dur
}
