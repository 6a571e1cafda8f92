// Package strings provides small string helpers shared by modules and handlers
package strings

import std "strings"

// MustString returns s if it has non whitespace content otherwise panics.
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path like /cart: one leading slash, no trailing slash.
// Panics when nothing is left after trimming
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// SplitCSV splits on commas, trims parts and drops blanks
func SplitCSV(s string) []string {
	if std.TrimSpace(s) == "" {
		return nil
	}
	parts := std.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = std.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dedupe keeps the first occurrence of each value, preserving order
func Dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// FirstNonEmpty returns the first argument with non whitespace content
func FirstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if std.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Truncate cuts s to at most n bytes, appending "..." when cut
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
