// @title         Doma marketplace API
// @description   Local facade over the Doma GraphQL API

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"domamarket/internal/modkit"
	"domamarket/internal/platform/config"
	"domamarket/internal/platform/logger"
	phttp "domamarket/internal/platform/net/http"

	"domamarket/internal/services/api"
	"domamarket/internal/services/cartstore"
	"domamarket/internal/services/upstream"
)

func main() {
	root, cfgErr := config.FromEnvOrFile("DOMA_CONFIG_FILE")

	// bring up logging early
	lo := logger.FromEnv()
	lo.Service = "doma-api"
	logger.Init(lo)
	l := logger.Get()
	if cfgErr != nil {
		l.Warn().Err(cfgErr).Msg("config file ignored")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	up, err := upstream.Build(upstream.FromConfig(root))
	if err != nil {
		l.Fatal().Err(err).Msg("upstream setup failed")
	}

	carts, err := cartstore.Open(ctx, root)
	if err != nil {
		l.Fatal().Err(err).Msg("cart store setup failed")
	}
	defer func() {
		if err := carts.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close cart store")
		}
	}()

	// http server (reads DOMA_API_PORT)
	apiCfg := root.Prefix("DOMA_API_")
	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Config: apiCfg,
		Deps: modkit.Deps{
			Log:        *l,
			Resolver:   up.Resolver,
			Whois:      up.Whois,
			Carts:      carts.Carts,
			SearchTLDs: up.SearchTLDs,
			PG:         carts.PG,
		},
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		RequestTimeout: apiCfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
	})

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
