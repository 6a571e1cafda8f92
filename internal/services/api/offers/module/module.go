// Package module wires the offers route into the API
package module

import (
	modkit "domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	str "domamarket/internal/platform/strings"

	offershttp "domamarket/internal/services/api/offers/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps modkit.Deps
}

// New constructs the offers module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("offers"),
		modkit.WithPrefix("/offers"),
	}, opts...)...)
	return &Module{b: b, deps: deps}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { offershttp.Register(rr, m.deps.Resolver) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "offers") }

// Docs implements the modkit.Module interface
func (m *Module) Docs() []swaggerkit.Op { return offershttp.Docs(m.b.Prefix) }
