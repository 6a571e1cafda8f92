package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	phttp "domamarket/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestDoc_JSON(t *testing.T) {
	t.Parallel()
	d := New("domamarket API", "1.2.3")
	d.Add(
		Op{Method: "GET", Path: "/api/offers", Tag: "Offers", Summary: "list offers",
			Params: []Param{{Name: "tokenId", In: "query", Required: true}, {Name: "take", In: "query", Type: "integer"}}},
		Op{Method: "POST", Path: "/api/graphql", Summary: "passthrough", Body: true, Verbatim: true},
		Op{Method: "GET", Path: "/api/domains/{name}", Params: []Param{{Name: "name", In: "path"}}},
	)

	b, err := d.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct{ Title, Version string }
		Paths   map[string]map[string]struct {
			Tags       []string `json:"tags"`
			Parameters []struct {
				Name     string `json:"name"`
				Required bool   `json:"required"`
				Schema   struct{ Type string }
			} `json:"parameters"`
			RequestBody *struct{} `json:"requestBody"`
			Responses   map[string]struct{ Description string }
		}
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.OpenAPI != "3.0.3" || doc.Info.Title != "domamarket API" || doc.Info.Version != "1.2.3" {
		t.Fatalf("header = %+v", doc)
	}
	offers := doc.Paths["/api/offers"]["get"]
	if offers.Tags[0] != "Offers" || len(offers.Parameters) != 2 || !offers.Parameters[0].Required {
		t.Fatalf("offers = %+v", offers)
	}
	if offers.Parameters[1].Schema.Type != "integer" || offers.Parameters[1].Required {
		t.Fatalf("take = %+v", offers.Parameters[1])
	}
	gql := doc.Paths["/api/graphql"]["post"]
	if gql.RequestBody == nil || gql.Responses["default"].Description != "{error, details}" {
		t.Fatalf("graphql = %+v", gql)
	}
	if !doc.Paths["/api/domains/{name}"]["get"].Parameters[0].Required {
		t.Fatal("path params are always required")
	}
}

func TestDoc_ConcurrentAdd(t *testing.T) {
	t.Parallel()
	d := New("x", "0")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Add(Op{Method: "GET", Path: "/p"})
		}()
	}
	wg.Wait()
	if len(d.Ops()) != 10 {
		t.Fatalf("ops = %d", len(d.Ops()))
	}
}

func TestMount(t *testing.T) {
	t.Parallel()
	d := New("domamarket API", "dev")
	d.Add(Op{Method: "GET", Path: "/health"})

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true, d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("doc.json = %d %v", rec.Code, rec.Header())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect = %d", rec.Code)
	}

	off := chi.NewRouter()
	Mount(phttp.AdaptChi(off), false, d)
	rec = httptest.NewRecorder()
	off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled = %d", rec.Code)
	}
}
