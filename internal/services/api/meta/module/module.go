// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/repokit"
	"domamarket/internal/modkit/swaggerkit"
	str "domamarket/internal/platform/strings"

	metahttp "domamarket/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	checks := map[string]repokit.Pinger{}
	if deps.PG != nil {
		checks["pg"] = deps.PG
	}
	return &Module{
		b: b,
		deps: metahttp.Deps{
			ServiceName: deps.Cfg.MayString("SERVICE", "doma-api"),
			StartedAt:   time.Now(),
			Checks:      checks,
			Order:       []string{"pg"},
		},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Docs implements the modkit.Module interface
func (m *Module) Docs() []swaggerkit.Op { return metahttp.Docs(m.b.Prefix) }
