// Package descriptor turns a free-text query into (sld, tld) search descriptors.
// Pipeline order
// 1 drop invalid UTF-8 and control characters
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove leftover combining marks and format chars
// 5 Width fold fullwidth to ASCII
// 6 Trim, drop any scheme, path and trailing dot
package descriptor

import (
	"strings"
	"sync"
	"unicode"

	perr "domamarket/internal/platform/errors"
	str "domamarket/internal/platform/strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Descriptor identifies a domain by its second and top level parts
type Descriptor struct {
	SLD string `json:"sld" validate:"required"`
	TLD string `json:"tld" validate:"required"`
}

// String returns sld.tld
func (d Descriptor) String() string { return d.SLD + "." + d.TLD }

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cc)),
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF
			width.Fold,
		)
	},
}

// Normalize canonicalizes a query or a TLD
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = strings.Join(strings.Fields(ns), "")
	if i := strings.Index(ns, "://"); i >= 0 {
		ns = ns[i+3:]
	}
	if i := strings.IndexAny(ns, "/?#"); i >= 0 {
		ns = ns[:i]
	}
	return strings.TrimSuffix(ns, ".")
}

// TLDs normalizes a candidate list, dropping blanks, leading dots and repeats, keeping order
func TLDs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimPrefix(Normalize(t), "."); t != "" {
			out = append(out, t)
		}
	}
	return str.Dedupe(out)
}

// Expand builds the descriptors for query. A dotted query is one descriptor split at
// the first dot; a bare label becomes one descriptor per candidate TLD, in order.
func Expand(query string, tlds []string) ([]Descriptor, error) {
	q := Normalize(query)
	if q == "" {
		return nil, perr.WithField(perr.Validationf("query is required"), "query")
	}
	if strings.Contains(q, ".") {
		d, err := Parse(q)
		if err != nil {
			return nil, err
		}
		return []Descriptor{d}, nil
	}
	cands := TLDs(tlds)
	if len(cands) == 0 {
		return nil, perr.WithField(perr.Validationf("no candidate TLDs for %q", q), "tlds")
	}
	out := make([]Descriptor, len(cands))
	for i, t := range cands {
		out[i] = Descriptor{SLD: q, TLD: t}
	}
	return out, nil
}

// Parse splits a full domain name at its first dot
func Parse(name string) (Descriptor, error) {
	n := Normalize(name)
	sld, tld, ok := strings.Cut(n, ".")
	if !ok || sld == "" || tld == "" || strings.HasPrefix(tld, ".") {
		return Descriptor{}, perr.WithField(perr.Validationf("%q is not a domain name", name), "name")
	}
	return Descriptor{SLD: sld, TLD: tld}, nil
}

// ExpandAll expands each query and drops repeated descriptors
func ExpandAll(queries []string, tlds []string) ([]Descriptor, error) {
	var out []Descriptor
	seen := map[Descriptor]struct{}{}
	for _, q := range queries {
		ds, err := Expand(q, tlds)
		if err != nil {
			return nil, err
		}
		for _, d := range ds {
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, perr.WithField(perr.Validationf("at least one name is required"), "names")
	}
	return out, nil
}
