// Package config handles application configuration via environment variables,
// optionally layered over a flat YAML file
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"domamarket/internal/platform/logger"
	str "domamarket/internal/platform/strings"
)

// Conf is a namespaced view over environment variables (e.g., "DOMA_", "DOMA_API_")
// Use New() for global access, or Prefix("DOMA_API_") for module scopes.
type Conf struct {
	prefix string
	file   map[string]string
}

// New creates a root Conf (no prefix, env only)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, file: c.file} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the env value, falling back to the file overlay
func (c Conf) lookup(k string) string {
	full := c.key(k)
	if v := strings.TrimSpace(os.Getenv(full)); v != "" {
		return v
	}
	return strings.TrimSpace(c.file[full])
}

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MustURL panics if the given key is missing, empty, or not a valid absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid absolute URL")
	}
	return u
}

// Require ensures that all given keys are present (non-empty). Panics otherwise.
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.lookup(k) == "" {
			logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
		}
	}
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayURL returns the value when it parses as an absolute URL; logs and returns def otherwise
func (c Conf) MayURL(key, def string) string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if u, err := url.Parse(s); err == nil && u.IsAbs() {
		return s
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Str("default", def).Msg("invalid URL; using default")
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid.
// Bare integers are read as milliseconds so DOMA_TIMEOUT=15000 keeps working.
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(s); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV returns a slice of strings from a comma-separated env var; def if missing/empty
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	out := str.SplitCSV(s)
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum ensures value is one of allowed; returns def if empty; panics if invalid.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return "" // unreachable
}

// MayPort returns a Go net/http addr like ":4001"; accepts "4001" or ":4001"
func (c Conf) MayPort(key string, def int) string {
	s := strings.TrimPrefix(c.lookup(key), ":")
	if s == "" {
		return ":" + strconv.Itoa(def)
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid TCP port; using default")
		return ":" + strconv.Itoa(def)
	}
	return ":" + s
}
