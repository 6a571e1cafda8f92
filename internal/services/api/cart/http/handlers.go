// Package http provides the cart routes and the cart change stream
package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"domamarket/internal/core/cart"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
)

// Heartbeat is how often an idle event stream writes a comment line
var Heartbeat = 25 * time.Second

// View is a cart listing with per-currency totals
type View struct {
	ID     string       `json:"id"`
	Items  []cart.Item  `json:"items"`
	Totals []cart.Total `json:"totals"`
}

// Carts hands out one cart.Cart per key so concurrent requests share its lock
type Carts struct {
	store cart.Store
	carts sync.Map
}

// NewCarts returns a Carts over store
func NewCarts(store cart.Store) *Carts { return &Carts{store: store} }

// Open returns the shared cart for id, creating it; mutations go through Open
func (c *Carts) Open(id string) *cart.Cart {
	key := cart.Key(id)
	if v, ok := c.carts.Load(key); ok {
		return v.(*cart.Cart)
	}
	v, _ := c.carts.LoadOrStore(key, cart.New(c.store, key))
	return v.(*cart.Cart)
}

// View returns the shared cart for id when one exists, else a cart that is
// not retained. Reads never grow the set.
func (c *Carts) View(id string) *cart.Cart {
	key := cart.Key(id)
	if v, ok := c.carts.Load(key); ok {
		return v.(*cart.Cart)
	}
	return cart.New(c.store, key)
}

// Register mounts the cart routes
func Register(r httpkit.Router, carts *Carts) {
	h := &handlers{carts: carts}

	httpkit.Post(r, "/", h.create)
	httpkit.Get(r, "/{id}", h.list)
	httpkit.PostJSON(r, "/{id}/items", h.add)
	httpkit.Delete(r, "/{id}/items/{index}", h.remove)
	httpkit.Delete(r, "/{id}", h.clear)
	r.Get("/{id}/events", h.events)
}

// Docs describes the cart routes under prefix
func Docs(prefix string) []swaggerkit.Op {
	id := swaggerkit.Param{Name: "id", In: "path"}
	return []swaggerkit.Op{
		{Method: "POST", Path: prefix, Tag: "Cart", Summary: "Create a cart id"},
		{Method: "GET", Path: prefix + "/{id}", Tag: "Cart", Summary: "Items, newest first, with totals per currency",
			Params: []swaggerkit.Param{id}},
		{Method: "POST", Path: prefix + "/{id}/items", Tag: "Cart", Summary: "Add an item at the front", Body: true,
			Params: []swaggerkit.Param{id}},
		{Method: "DELETE", Path: prefix + "/{id}/items/{index}", Tag: "Cart", Summary: "Remove the item at index",
			Params: []swaggerkit.Param{id, {Name: "index", In: "path", Type: "integer"}}},
		{Method: "DELETE", Path: prefix + "/{id}", Tag: "Cart", Summary: "Empty the cart", Params: []swaggerkit.Param{id}},
		{Method: "GET", Path: prefix + "/{id}/events", Tag: "Cart", Verbatim: true,
			Summary: "Server-sent cart_updated events, starting with a snapshot", Params: []swaggerkit.Param{id}},
	}
}

type handlers struct{ carts *Carts }

func cartID(r *stdhttp.Request) (string, error) {
	id, err := uuid.Parse(httpkit.URLParam(r, "id"))
	if err != nil {
		return "", perr.WithField(perr.Validationf("cart id must be a uuid"), "id")
	}
	return id.String(), nil
}

func view(id string, items []cart.Item) View {
	return View{ID: id, Items: items, Totals: cart.Totals(items)}
}

func (h *handlers) create(*stdhttp.Request) (any, error) {
	return httpkit.Created(map[string]string{"id": uuid.NewString()}), nil
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	id, err := cartID(r)
	if err != nil {
		return nil, err
	}
	items, err := h.carts.View(id).List(r.Context())
	if err != nil {
		return nil, err
	}
	return view(id, items), nil
}

func (h *handlers) add(r *stdhttp.Request, it cart.Item) (any, error) {
	id, err := cartID(r)
	if err != nil {
		return nil, err
	}
	items, err := h.carts.Open(id).Add(r.Context(), it)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(view(id, items)), nil
}

func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := cartID(r)
	if err != nil {
		return nil, err
	}
	i, err := strconv.Atoi(httpkit.URLParam(r, "index"))
	if err != nil {
		return nil, perr.WithField(perr.Validationf("index must be an integer"), "index")
	}
	items, err := h.carts.Open(id).Remove(r.Context(), i)
	if err != nil {
		return nil, err
	}
	return view(id, items), nil
}

func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	id, err := cartID(r)
	if err != nil {
		return nil, err
	}
	if err := h.carts.Open(id).Clear(r.Context()); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// events streams a snapshot and then one frame per change until the client leaves.
// A slow reader drops frames; every frame carries the full list.
func (h *handlers) events(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	fail := func(err error) { httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r) }

	id, err := cartID(r)
	if err != nil {
		fail(err)
		return
	}
	fl, ok := w.(stdhttp.Flusher)
	if !ok {
		fail(perr.Internalf("streaming unsupported"))
		return
	}

	c := h.carts.View(id)
	ch := make(chan cart.Event, 8)
	cancel := c.Subscribe(func(ev cart.Event) {
		select {
		case ch <- ev:
		default:
		}
	})
	defer cancel()

	items, err := c.List(r.Context())
	if err != nil {
		fail(err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(stdhttp.StatusOK)

	log := logger.C(r.Context())
	write := func(name string, v any) bool {
		b, err := json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Str("cart", id).Msg("cart event encode failed")
			return false
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, b); err != nil {
			return false
		}
		fl.Flush()
		return true
	}

	if !write("snapshot", view(id, items)) {
		return
	}

	tick := time.NewTicker(Heartbeat)
	defer tick.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			if !write(ev.Name, view(id, ev.Items)) {
				return
			}
		case <-tick.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			fl.Flush()
		}
	}
}
