// Package watch polls the offers on a set of tokens and reports the ones it has not seen
package watch

import (
	"context"
	"errors"
	"sync"
	"time"

	"domamarket/internal/core/mapper"
	"domamarket/internal/core/paging"
	"domamarket/internal/core/price"
	"domamarket/internal/platform/config"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
	"domamarket/internal/platform/poll"
)

// Config is read from DOMA_WATCH_*
type Config struct {
	Tokens []string
	Every  time.Duration
	// Take is the page size; Limit caps the offers read per token and poll
	Take  int
	Limit int
}

// FromConfig reads DOMA_WATCH_{TOKENS,EVERY,TAKE,LIMIT} from the unprefixed root
func FromConfig(cfg config.Conf) Config {
	w := cfg.Prefix("DOMA_WATCH_")
	return Config{
		Tokens: w.MayCSV("TOKENS", nil),
		Every:  w.MayDuration("EVERY", 15*time.Second),
		Take:   w.MayInt("TAKE", 10),
		Limit:  w.MayInt("LIMIT", 100),
	}
}

// Source pages the offers on a token; *resolver.Resolver satisfies it
type Source interface {
	Offers(ctx context.Context, tokenID string, w mapper.Window) (mapper.Page[mapper.Offer], error)
}

// Watcher diffs offer ids per token between polls
type Watcher struct {
	src   Source
	cfg   Config
	log   *logger.Logger
	onNew func(token string, o mapper.Offer)

	mu   sync.Mutex
	seen map[string]map[string]struct{}
}

// Option configures a Watcher
type Option func(*Watcher)

// OnNew is called once per offer first seen after the initial poll of its token
func OnNew(fn func(token string, o mapper.Offer)) Option {
	return func(w *Watcher) { w.onNew = fn }
}

// New returns a Watcher; it does nothing until Tick or Run
func New(src Source, cfg Config, opts ...Option) (*Watcher, error) {
	if len(cfg.Tokens) == 0 {
		return nil, perr.WithField(perr.Validationf("no tokens to watch"), "DOMA_WATCH_TOKENS")
	}
	if cfg.Take <= 0 {
		cfg.Take = 10
	}
	w := &Watcher{
		src:  src,
		cfg:  cfg,
		log:  logger.Named("watch"),
		seen: map[string]map[string]struct{}{},
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Tick polls every token once. The first poll of a token only records what exists.
// A failing token does not stop the others.
func (w *Watcher) Tick(ctx context.Context) error {
	var errs []error
	for _, tok := range w.cfg.Tokens {
		if err := ctx.Err(); err != nil {
			return err
		}
		offers, err := paging.Collect(ctx, w.cfg.Take, w.cfg.Limit, func(ctx context.Context, win mapper.Window) (mapper.Page[mapper.Offer], error) {
			return w.src.Offers(ctx, tok, win)
		})
		if err != nil {
			errs = append(errs, perr.WithOp(err, "watch "+tok))
			continue
		}
		w.diff(tok, offers)
	}
	return errors.Join(errs...)
}

func (w *Watcher) diff(tok string, offers []mapper.Offer) {
	w.mu.Lock()
	known, primed := w.seen[tok]
	if !primed {
		known = make(map[string]struct{}, len(offers))
		w.seen[tok] = known
	}
	var fresh []mapper.Offer
	for _, o := range offers {
		if _, ok := known[o.ID]; ok {
			continue
		}
		known[o.ID] = struct{}{}
		if primed {
			fresh = append(fresh, o)
		}
	}
	w.mu.Unlock()

	if !primed {
		w.log.Info().Str("token", tok).Int("offers", len(offers)).Msg("watching token")
		return
	}
	for _, o := range fresh {
		w.log.Info().
			Str("token", tok).
			Str("offer", o.ID).
			Str("from", o.From()).
			Str("price", Display(o)).
			Msg("new offer")
		if w.onNew != nil {
			w.onNew(tok, o)
		}
	}
}

// Run polls until ctx ends
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info().Strs("tokens", w.cfg.Tokens).Dur("every", w.cfg.Every).Msg("watch started")
	task := poll.Start(ctx, w.cfg.Every, w.Tick, poll.WithName("watch"))
	defer task.Stop()
	<-ctx.Done()
	w.log.Info().Msg("watch stopped")
	return nil
}

// Display renders an offer price. Amounts quoted with currency decimals are base units.
func Display(o mapper.Offer) string {
	if dec, ok := o.Currency.Decimals.Get(); ok {
		if d, err := price.FromWei(o.Price.String(), dec); err == nil {
			return price.Format(d.String(), o.Currency.Symbol)
		}
	}
	return price.Format(o.Price.String(), o.Currency.Symbol)
}
