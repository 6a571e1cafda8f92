// Package upstream turns configuration into the Doma transports and the resolver
// shared by the API, the watcher and the MCP server.
package upstream

import (
	"time"

	"domamarket/internal/adapters/doma"
	"domamarket/internal/adapters/whois"
	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	"domamarket/internal/core/version"
	"domamarket/internal/platform/config"
	"domamarket/internal/platform/logger"
	str "domamarket/internal/platform/strings"
)

// Config is everything needed to reach upstream
type Config struct {
	Subgraph doma.Options
	// MarketplaceEndpoint defaults to the subgraph endpoint
	MarketplaceEndpoint string
	SearchTLDs          []string
	WhoisTimeout        time.Duration
}

// FromConfig reads DOMA_* keys from cfg, which must be the unprefixed root
func FromConfig(cfg config.Conf) Config {
	d := cfg.Prefix("DOMA_")
	endpoint := d.MayString("GRAPHQL_ENDPOINT", doma.DefaultEndpoint)
	return Config{
		Subgraph: doma.Options{
			Endpoint:     endpoint,
			APIKey:       d.MayString("API_KEY", ""),
			APIKeyHeader: d.MayString("API_KEY_HEADER", doma.DefaultAPIKeyHeader),
			Timeout:      d.MayDuration("TIMEOUT", doma.DefaultTimeout),
			UserAgent:    version.UserAgent(),
		},
		MarketplaceEndpoint: d.MayString("MARKETPLACE_ENDPOINT", ""),
		SearchTLDs:          d.MayCSV("SEARCH_TLDS", []string{"com", "ai", "io", "xyz"}),
		WhoisTimeout:        d.MayDuration("WHOIS_TIMEOUT", 10*time.Second),
	}
}

// Upstream is the wired set of clients
type Upstream struct {
	Pool       *doma.Pool
	Resolver   *resolver.Resolver
	Whois      *whois.Checker
	SearchTLDs []string
	Subgraph   *doma.Client
}

// Build constructs the clients. An explicit marketplace endpoint equal to the
// subgraph one is allowed but logged, since marketplace operations then hit the subgraph.
func Build(c Config) (*Upstream, error) {
	log := logger.Named("upstream")

	sub, err := doma.NewClient(c.Subgraph)
	if err != nil {
		return nil, err
	}

	var market doma.Transport
	if c.MarketplaceEndpoint != "" {
		mo := c.Subgraph
		mo.Endpoint = c.MarketplaceEndpoint
		mc, err := doma.NewClient(mo)
		if err != nil {
			return nil, err
		}
		if mc.Endpoint() == sub.Endpoint() {
			log.Warn().Str("endpoint", sub.Endpoint()).
				Msg("DOMA_MARKETPLACE_ENDPOINT equals the subgraph endpoint; marketplace operations will hit the subgraph")
		}
		market = mc
	}

	if c.Subgraph.APIKey == "" {
		log.Warn().Msg("DOMA_API_KEY is not set; authenticated operations will fail with 401")
	}

	pool := doma.NewPool(sub, market)
	log.Info().
		Str("subgraph", sub.Endpoint()).
		Str("marketplace", str.FirstNonEmpty(c.MarketplaceEndpoint, sub.Endpoint())).
		Dur("timeout", sub.Timeout()).
		Msg("upstream ready")

	return &Upstream{
		Pool:       pool,
		Resolver:   resolver.New(registry.Default(), pool),
		Whois:      whois.New(c.WhoisTimeout),
		SearchTLDs: c.SearchTLDs,
		Subgraph:   sub,
	}, nil
}
