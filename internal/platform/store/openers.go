package store

import (
	"context"
	"fmt"
	"time"

	"domamarket/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seam
var sleep = time.Sleep

// openPG opens the pool and publishes the adapter once a ping succeeds
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, func(pc *pgxpool.Config) {
		if cfg.AppName != "" {
			pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
		}
	})
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectAttempts
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	backoff := 150 * time.Millisecond
	var lastErr error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")
		sleep(backoff)
		backoff = min(backoff*2, 2*time.Second)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
