// Package module wires the domain routes into the API
package module

import (
	modkit "domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	str "domamarket/internal/platform/strings"

	domainshttp "domamarket/internal/services/api/domains/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps modkit.Deps
}

// New constructs the domains module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("domains"),
		modkit.WithPrefix("/domains"),
	}, opts...)...)
	return &Module{b: b, deps: deps}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { domainshttp.Register(rr, m.deps.Resolver, m.deps.Whois) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "domains") }

// Docs implements the modkit.Module interface
func (m *Module) Docs() []swaggerkit.Op { return domainshttp.Docs(m.b.Prefix) }
