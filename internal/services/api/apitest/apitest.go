// Package apitest holds fakes shared by the API module tests
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"domamarket/internal/adapters/doma"
	"domamarket/internal/adapters/whois"
	"domamarket/internal/core/cart"
	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	"domamarket/internal/modkit"
	"domamarket/internal/modkit/httpkit"
	phttp "domamarket/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Transport is a doma.Transport that records requests and answers through Reply
type Transport struct {
	Reply func(doma.Request) (json.RawMessage, error)

	mu   sync.Mutex
	reqs []doma.Request
}

// Execute implements doma.Transport
func (t *Transport) Execute(ctx context.Context, req doma.Request) (json.RawMessage, error) {
	t.mu.Lock()
	t.reqs = append(t.reqs, req)
	t.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.Reply == nil {
		return json.RawMessage(`{}`), nil
	}
	return t.Reply(req)
}

// Requests returns what Execute saw, in order
func (t *Transport) Requests() []doma.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]doma.Request(nil), t.reqs...)
}

// Data answers every request with data
func Data(data string) func(doma.Request) (json.RawMessage, error) {
	return func(doma.Request) (json.RawMessage, error) { return json.RawMessage(data), nil }
}

// ByDocument answers with the first entry whose key occurs in the query document
func ByDocument(replies map[string]string) func(doma.Request) (json.RawMessage, error) {
	return func(req doma.Request) (json.RawMessage, error) {
		for k, v := range replies {
			if strings.Contains(req.Query, k) {
				return json.RawMessage(v), nil
			}
		}
		return nil, &doma.HTTPError{Status: http.StatusBadRequest, Body: "no reply scripted"}
	}
}

// Deps returns module deps over t with an in-memory cart store and a scripted whois
func Deps(t *Transport) modkit.Deps {
	return modkit.Deps{
		Resolver:   resolver.New(registry.Default(), doma.NewPool(t, nil)),
		Carts:      cart.NewMemoryStore(),
		SearchTLDs: []string{"com", "ai"},
		Whois: whois.NewWithLookup(func(d string) (string, error) {
			if strings.HasPrefix(d, "taken") {
				return "Domain Name: " + strings.ToUpper(d) + "\nRegistrar: Example", nil
			}
			return "No match for \"" + strings.ToUpper(d) + "\".", nil
		}, time.Second),
	}
}

// Router mounts mods under /api on a fresh chi mux
func Router(mods ...modkit.Module) http.Handler {
	mux := chi.NewRouter()
	httpkit.MountAPI(phttp.AdaptChi(mux), "", nil, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	return mux
}

// Do performs one request against h
func Do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
