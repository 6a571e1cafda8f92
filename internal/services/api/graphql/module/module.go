// Package module wires the GraphQL passthrough into the API
package module

import (
	modkit "domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	str "domamarket/internal/platform/strings"

	gqlhttp "domamarket/internal/services/api/graphql/http"
)

// Paths the passthrough answers on, relative to the module prefix
var Paths = []string{"/doma/graphql", "/graphql"}

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps modkit.Deps
}

// New constructs the passthrough module; it has no prefix of its own
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("graphql")}, opts...)...)
	return &Module{b: b, deps: deps}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { gqlhttp.Register(rr, m.deps.Resolver, Paths...) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "graphql") }

// Docs implements the modkit.Module interface
func (m *Module) Docs() []swaggerkit.Op {
	full := make([]string, len(Paths))
	for i, p := range Paths {
		full[i] = m.b.Prefix + p
	}
	return gqlhttp.Docs(full...)
}
