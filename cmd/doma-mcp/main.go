package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"domamarket/internal/platform/config"
	"domamarket/internal/platform/logger"

	"domamarket/internal/services/mcptools"
	"domamarket/internal/services/upstream"
)

func main() {
	root, cfgErr := config.FromEnvOrFile("DOMA_CONFIG_FILE")

	lo := logger.FromEnv()
	lo.Service = "doma-mcp"
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

	s := mcptools.NewServer(mcptools.Deps{Resolver: up.Resolver, Whois: up.Whois, SearchTLDs: up.SearchTLDs})
	addr := root.Prefix("DOMA_MCP_").MayPort("PORT", 4002)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           server.NewStreamableHTTPServer(s),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		l.Info().Str("addr", addr).Msg("mcp listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("mcp server failed")
			stop()
		}
	}()

	<-ctx.Done()
	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		l.Error().Err(err).Msg("graceful shutdown failed")
	}
	l.Info().Msg("mcp stopped")
}
