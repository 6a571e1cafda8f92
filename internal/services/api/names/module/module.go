// Package module wires the names route into the API
package module

import (
	modkit "domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	str "domamarket/internal/platform/strings"

	nameshttp "domamarket/internal/services/api/names/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps modkit.Deps
}

// New constructs the names module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("names"),
		modkit.WithPrefix("/names"),
	}, opts...)...)
	return &Module{b: b, deps: deps}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { nameshttp.Register(rr, m.deps.Resolver) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "names") }

// Docs implements the modkit.Module interface
func (m *Module) Docs() []swaggerkit.Op { return nameshttp.Docs(m.b.Prefix) }
