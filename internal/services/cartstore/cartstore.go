// Package cartstore picks the cart backend from configuration
package cartstore

import (
	"context"

	"domamarket/internal/core/cart"
	"domamarket/internal/core/cart/repo"
	"domamarket/internal/modkit/repokit"
	"domamarket/internal/platform/config"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
	"domamarket/internal/platform/store"
)

// Backend is an opened cart store
type Backend struct {
	Carts cart.Store
	// PG is nil for the memory backend
	PG repokit.Pinger

	st *store.Store
}

// Close releases the database pool, if any
func (b *Backend) Close() error { return b.st.Close() }

// Open reads DOMA_CART_BACKEND (memory or pg) and DOMA_PG_* from the unprefixed root
func Open(ctx context.Context, root config.Conf) (*Backend, error) {
	d := root.Prefix("DOMA_")
	log := logger.Named("cart")

	switch d.MayEnum("CART_BACKEND", "memory", "memory", "pg") {
	case "pg":
		cfg := store.FromConf(d, "doma-api")
		if !cfg.PG.Enabled {
			return nil, perr.WithField(perr.Validationf("DOMA_CART_BACKEND=pg needs DOMA_PG_DBURL"), "DOMA_PG_DBURL")
		}
		st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Named("store")))
		if err != nil {
			return nil, err
		}
		pg := repokit.MustBind(repo.NewPG(nil), st.PG)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
		b := &Backend{Carts: pg, st: st}
		if p, ok := st.PG.(repokit.Pinger); ok {
			b.PG = p
		}
		log.Info().Msg("carts in postgres")
		return b, nil
	default:
		log.Info().Msg("carts in memory")
		return &Backend{Carts: cart.NewMemoryStore()}, nil
	}
}
