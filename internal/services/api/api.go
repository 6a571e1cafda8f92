// Package api provides the local HTTP facade over the Doma clients
package api

import (
	"net/http"
	"time"

	"domamarket/internal/core/version"
	"domamarket/internal/platform/config"
	phttp "domamarket/internal/platform/net/http"

	"domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"

	cartmod "domamarket/internal/services/api/cart/module"
	domainsmod "domamarket/internal/services/api/domains/module"
	graphqlmod "domamarket/internal/services/api/graphql/module"
	marketmod "domamarket/internal/services/api/market/module"
	metamod "domamarket/internal/services/api/meta/module"
	namesmod "domamarket/internal/services/api/names/module"
	offersmod "domamarket/internal/services/api/offers/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Deps           modkit.Deps
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	// RequestTimeout bounds upstream-backed routes; zero means 60s
	RequestTimeout time.Duration
}

// Modules returns the facade modules in mount order
func Modules(opt Options) []modkit.Module {
	timeout := opt.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	bounded := modkit.WithMiddlewares(httpkit.Timeout(timeout))
	deps := opt.Deps
	deps.Cfg = opt.Config

	return []modkit.Module{
		metamod.New(deps),
		graphqlmod.New(deps, bounded),
		domainsmod.New(deps, bounded),
		marketmod.New(deps, bounded),
		offersmod.New(deps, bounded),
		namesmod.New(deps, bounded),
		cartmod.New(deps),
	}
}

// Mount mounts the API service onto the given router and returns its OpenAPI document
func Mount(r phttp.Router, opt Options) *swaggerkit.Doc {
	doc := swaggerkit.New("Doma marketplace API", version.Info("doma-api").Version)
	mods := Modules(opt)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		phttp.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		SlowRequest: opt.Config.MayDuration("HTTP_SLOW", 2*time.Second),
	})
	httpkit.MountAPI(r, "", stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			for _, op := range m.Docs() {
				op.Path = "/api" + op.Path
				doc.Add(op)
			}
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger, doc)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	return doc
}
