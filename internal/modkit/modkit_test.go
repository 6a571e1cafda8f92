package modkit

import (
	"testing"

	"domamarket/internal/modkit/swaggerkit"
	phttp "domamarket/internal/platform/net/http"
)

// stub module that satisfies Module and records calls
type stub struct {
	mounted bool
	name    string
}

func (s *stub) MountRoutes(_ phttp.Router) { s.mounted = true }
func (s *stub) Name() string               { return s.name }
func (s *stub) Docs() []swaggerkit.Op {
	return []swaggerkit.Op{{Method: "GET", Path: "/stub"}}
}

var _ Module = (*stub)(nil)

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	var b Builder = func(d Deps, opts ...Option) Module {
		return &stub{name: Build(opts...).Name}
	}

	m := b(Deps{}, WithName("stub"))
	if m.Name() != "stub" {
		t.Fatalf("unexpected name: %q", m.Name())
	}
	m.MountRoutes(nil)
	if !m.(*stub).mounted {
		t.Fatal("expected MountRoutes to be called")
	}
	if len(m.Docs()) != 1 {
		t.Fatal("expected docs")
	}
}
