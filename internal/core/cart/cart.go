// Package cart keeps a per-key list of names queued for purchase and
// notifies subscribers after every change.
package cart

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"domamarket/internal/core/price"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/validate"
)

const (
	// DefaultKey is the cart used when no id is given
	DefaultKey = "doma_cart"
	// EventUpdated is the name of every change event
	EventUpdated = "cart_updated"
)

// Key scopes a cart id under the default key; an empty id is the default cart
func Key(id string) string {
	if id == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + id
}

// Item is one queued purchase
type Item struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=PRIMARY SECONDARY"`
	Price    string `json:"price,omitempty"`
	Currency string `json:"currency,omitempty"`
	// AddedAt is unix milliseconds
	AddedAt int64 `json:"addedAt"`
}

// Event is published once per Set
type Event struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Store persists item lists by key
type Store interface {
	Get(ctx context.Context, key string) ([]Item, error)
	Set(ctx context.Context, key string, items []Item) error
	Subscribe(key string, fn func(Event)) (cancel func())
}

// Total is the summed price of one currency
type Total struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
	Display  string `json:"display"`
	Count    int    `json:"count"`
}

// Cart is a view over one key of a Store; mutations are serialized
type Cart struct {
	store Store
	key   string
	now   func() time.Time
	mu    sync.Mutex
}

// New returns the cart stored under key
func New(store Store, key string) *Cart {
	if key == "" {
		key = DefaultKey
	}
	return &Cart{store: store, key: key, now: time.Now}
}

// Key returns the store key
func (c *Cart) Key() string { return c.key }

// List returns the items, newest first
func (c *Cart) List(ctx context.Context) ([]Item, error) {
	return c.store.Get(ctx, c.key)
}

// Add puts it at index 0
func (c *Cart) Add(ctx context.Context, it Item) ([]Item, error) {
	if err := validate.Struct(it); err != nil {
		return nil, err
	}
	if it.AddedAt == 0 {
		it.AddedAt = c.now().UnixMilli()
	}
	return c.mutate(ctx, func(items []Item) ([]Item, error) {
		return append([]Item{it}, items...), nil
	})
}

// Remove drops the item at index i
func (c *Cart) Remove(ctx context.Context, i int) ([]Item, error) {
	return c.mutate(ctx, func(items []Item) ([]Item, error) {
		if i < 0 || i >= len(items) {
			return nil, perr.WithField(perr.NotFoundf("no cart item at index %d", i), "index")
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) error {
	_, err := c.mutate(ctx, func([]Item) ([]Item, error) { return []Item{}, nil })
	return err
}

// Subscribe registers fn for this cart's events
func (c *Cart) Subscribe(fn func(Event)) (cancel func()) {
	return c.store.Subscribe(c.key, fn)
}

func (c *Cart) mutate(ctx context.Context, fn func([]Item) ([]Item, error)) ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	next, err := fn(slices.Clone(items))
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, c.key, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Totals sums priced items per currency, ordered by currency.
// Items without a parsable price are skipped.
func Totals(items []Item) []Total {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	for _, it := range items {
		if it.Price == "" {
			continue
		}
		d, err := price.Parse(it.Price)
		if err != nil {
			continue
		}
		cur := it.Currency
		if cur == "" {
			cur = price.DefaultSymbol
		}
		sums[cur] = sums[cur].Add(d)
		counts[cur]++
	}
	out := make([]Total, 0, len(sums))
	for cur, d := range sums {
		out = append(out, Total{
			Currency: cur,
			Amount:   d.String(),
			Display:  price.Format(d.String(), cur),
			Count:    counts[cur],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}
