// Package raw reads bootstrap settings straight from the environment.
// It must not import the logger: the logger reads its own options through it.
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed env view used before logging exists (e.g. "LOG_")
type Conf struct{ prefix string }

// New returns a root view
func New() Conf { return Conf{} }

// Prefix nests a prefix under the current one
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(k string) string { return strings.TrimSpace(os.Getenv(c.prefix + k)) }

// Get returns the trimmed value or def
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1/true/yes/on, anything else set is false
func (c Conf) GetBool(key string, def bool) bool {
	switch v := strings.ToLower(c.value(key)); v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt returns a non-negative integer or def
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
