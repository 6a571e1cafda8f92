// Package module wires the cart routes into the API
package module

import (
	"domamarket/internal/core/cart"
	modkit "domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	str "domamarket/internal/platform/strings"

	carthttp "domamarket/internal/services/api/cart/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	carts *carthttp.Carts
}

// New constructs the cart module; without a store in deps carts live in memory
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("cart"),
		modkit.WithPrefix("/cart"),
	}, opts...)...)
	store := deps.Carts
	if store == nil {
		store = cart.NewMemoryStore()
	}
	return &Module{b: b, carts: carthttp.NewCarts(store)}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { carthttp.Register(rr, m.carts) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "cart") }

// Docs implements the modkit.Module interface
func (m *Module) Docs() []swaggerkit.Op { return carthttp.Docs(m.b.Prefix) }
