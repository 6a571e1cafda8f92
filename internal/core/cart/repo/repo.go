// Package repo provides the Postgres cart store.
package repo

import (
	"context"
	"encoding/json"
	"slices"

	"domamarket/internal/core/cart"
	"domamarket/internal/modkit/repokit"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/store"
)

// Schema creates the carts table; EnsureSchema runs it
const Schema = `CREATE TABLE IF NOT EXISTS carts (
	key        TEXT PRIMARY KEY,
	items      JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type binder struct{ n *cart.Notifier }

// NewPG returns a binder for the Postgres store; events fan out through n
func NewPG(n *cart.Notifier) repokit.Binder[*PGStore] {
	if n == nil {
		n = cart.NewNotifier()
	}
	return binder{n: n}
}

// Bind implements repokit.Binder
func (b binder) Bind(q repokit.Queryer) *PGStore { return &PGStore{q: q, n: b.n} }

// PGStore keeps each cart as one jsonb row
type PGStore struct {
	q repokit.Queryer
	n *cart.Notifier
}

var _ cart.Store = (*PGStore)(nil)

// EnsureSchema creates the table when missing
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.q.Exec(ctx, Schema)
	return perr.FromPostgres(err, "create carts table")
}

// Get returns the items under key; a missing row is an empty cart
func (s *PGStore) Get(ctx context.Context, key string) ([]cart.Item, error) {
	docs, err := store.Many(ctx, s.q, func(r store.Row) ([]byte, error) {
		var b []byte
		err := r.Scan(&b)
		return b, err
	}, `SELECT items FROM carts WHERE key = $1`, key)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load cart %s", key)
	}
	items := []cart.Item{}
	if len(docs) == 0 || len(docs[0]) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(docs[0], &items); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode cart %s", key)
	}
	return items, nil
}

// Set upserts the items under key, then publishes one event
func (s *PGStore) Set(ctx context.Context, key string, items []cart.Item) error {
	if items == nil {
		items = []cart.Item{}
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode cart %s", key)
	}
	err = store.ExecOne(ctx, s.q, `
		INSERT INTO carts (key, items, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET items = EXCLUDED.items, updated_at = now()`,
		key, string(doc))
	if err != nil {
		return perr.FromPostgresf(err, "save cart %s", key)
	}
	s.n.Publish(key, slices.Clone(items))
	return nil
}

// Subscribe implements cart.Store
func (s *PGStore) Subscribe(key string, fn func(cart.Event)) (cancel func()) {
	return s.n.Subscribe(key, fn)
}
