package store

import (
	"time"

	"domamarket/internal/platform/config"
)

// Config aggregates backend settings
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures Postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectAttempts int           // default 20
	PingTimeout     time.Duration // default 3s
}

// FromConf reads PG_* keys under cfg, e.g. DOMA_PG_DBURL.
// Postgres is enabled when a URL is present.
func FromConf(cfg config.Conf, appName string) Config {
	pg := cfg.Prefix("PG_")
	url := pg.MayString("DBURL", "")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:     url != "",
			URL:         url,
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:      pg.MayBool("LOG_SQL", false),
			SlowQueryMs: pg.MayInt("SLOW_MS", 200),
			PingTimeout: pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
}
