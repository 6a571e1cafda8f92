package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"domamarket/internal/platform/config"
	"domamarket/internal/platform/logger"

	"domamarket/internal/services/upstream"
	"domamarket/internal/services/watch"
)

func main() {
	root, cfgErr := config.FromEnvOrFile("DOMA_CONFIG_FILE")

	lo := logger.FromEnv()
	lo.Service = "doma-watch"
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

	w, err := watch.New(up.Resolver, watch.FromConfig(root))
	if err != nil {
		l.Fatal().Err(err).Msg("watch setup failed")
	}
	if err := w.Run(ctx); err != nil {
		l.Error().Err(err).Msg("watch stopped")
	}
}
