// Package module wires the marketplace routes into the API
package module

import (
	modkit "domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	str "domamarket/internal/platform/strings"

	markethttp "domamarket/internal/services/api/market/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps modkit.Deps
}

// New constructs the market module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("market"),
		modkit.WithPrefix("/market"),
	}, opts...)...)
	return &Module{b: b, deps: deps}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		markethttp.Register(rr, m.deps.Resolver, m.deps.SearchTLDs)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "market") }

// Docs implements the modkit.Module interface
func (m *Module) Docs() []swaggerkit.Op { return markethttp.Docs(m.b.Prefix) }
