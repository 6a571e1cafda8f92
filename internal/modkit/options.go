package modkit

import (
	"net/http"

	"domamarket/internal/modkit/httpkit"
	str "domamarket/internal/platform/strings"
)

// Option mutates build configuration for a module
type Option func(*buildCfg)

// buildCfg is internal wiring state for options
type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// WithName sets a module name used in logs
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix mounts a module under a path prefix such as /cart; it panics on an empty or root prefix
func WithPrefix(prefix string) Option {
	p := str.MustPrefix(prefix)
	return func(c *buildCfg) { c.prefix = p }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithRegister adds endpoints to the module router after its own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(c *buildCfg) { c.register = fn }
}

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Register func(httpkit.Router)
}

// Build applies Option funcs and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Register: c.register,
	}
}

// Mount routes own under the built prefix with the built middleware, then the external register
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	httpkit.MountUnder(r, b.Prefix, b.Mw, func(rr httpkit.Router) {
		own(rr)
		b.Register(rr)
	})
}
