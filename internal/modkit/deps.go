package modkit

import (
	"domamarket/internal/adapters/whois"
	"domamarket/internal/core/cart"
	"domamarket/internal/core/resolver"
	"domamarket/internal/modkit/repokit"
	"domamarket/internal/platform/config"
	"domamarket/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log        logger.Logger
	Cfg        config.Conf
	Resolver   *resolver.Resolver
	Whois      *whois.Checker
	Carts      cart.Store
	SearchTLDs []string

	// PG is nil when carts live in memory
	PG repokit.Pinger
}
