package cart

import (
	"context"
	"slices"
	"sync"
)

// Notifier fans events out to per-key subscribers synchronously
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(Event)
}

// NewNotifier returns an empty Notifier
func NewNotifier() *Notifier {
	return &Notifier{subs: map[string]map[int]func(Event){}}
}

// Subscribe registers fn under key; cancel is idempotent
func (n *Notifier) Subscribe(key string, fn func(Event)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	if n.subs[key] == nil {
		n.subs[key] = map[int]func(Event){}
	}
	n.subs[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[key], id)
			if len(n.subs[key]) == 0 {
				delete(n.subs, key)
			}
		})
	}
}

// Publish calls every subscriber of key outside the lock, in subscription order
func (n *Notifier) Publish(key string, items []Item) {
	n.mu.Lock()
	ids := make([]int, 0, len(n.subs[key]))
	for id := range n.subs[key] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, n.subs[key][id])
	}
	n.mu.Unlock()

	ev := Event{Key: key, Name: EventUpdated, Items: items}
	for _, fn := range fns {
		fn(ev)
	}
}

// MemoryStore is the default in-process Store
type MemoryStore struct {
	*Notifier
	mu    sync.RWMutex
	items map[string][]Item
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Notifier: NewNotifier(), items: map[string][]Item{}}
}

// Get returns a copy of the items under key
func (m *MemoryStore) Get(_ context.Context, key string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.items[key])
	if out == nil {
		out = []Item{}
	}
	return out, nil
}

// Set replaces the items under key and publishes one event
func (m *MemoryStore) Set(ctx context.Context, key string, items []Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := slices.Clone(items)
	if cp == nil {
		cp = []Item{}
	}
	m.mu.Lock()
	m.items[key] = cp
	m.mu.Unlock()
	m.Publish(key, slices.Clone(cp))
	return nil
}
