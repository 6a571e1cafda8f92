package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "domamarket/internal/platform/errors"
	phttp "domamarket/internal/platform/net/http"
	kit "domamarket/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type queryIn struct {
	Query string `json:"query" validate:"required"`
}

func mount(t *testing.T) phttp.Router {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())

	phttp.GetJSON(r, "/env", func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil })
	phttp.DeleteJSON(r, "/env", func(*http.Request) (any, error) { return nil, perr.NotFoundf("gone") })
	phttp.PostJSON(r, "/env", func(_ *http.Request, in queryIn) (any, error) { return in.Query, nil })

	phttp.GetRaw(r, "/raw/{name}", func(req *http.Request) (any, error) {
		return map[string]string{"name": phttp.URLParam(req, "name")}, nil
	})
	phttp.PostRaw(r, "/raw", func(_ *http.Request, in queryIn) (any, error) {
		if in.Query == "fail" {
			return nil, errors.New("upstream down")
		}
		return map[string]string{"echo": in.Query}, nil
	})
	return r
}

func do(r phttp.Router, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	r.Mux().ServeHTTP(rec, req)
	return rec
}

func TestSugar_Enveloped(t *testing.T) {
	t.Parallel()
	r := mount(t)

	rec := do(r, "GET", "/env", "")
	env := kit.MustJSON[phttp.Envelope](t, rec.Body.Bytes())
	if rec.Code != 200 || env.Data == nil {
		t.Fatalf("GET = %d %+v", rec.Code, env)
	}

	if rec := do(r, "DELETE", "/env", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("DELETE = %d", rec.Code)
	}

	rec = do(r, "POST", "/env", `{"query":"{ names { totalCount } }"}`)
	env = kit.MustJSON[phttp.Envelope](t, rec.Body.Bytes())
	if env.Data != "{ names { totalCount } }" {
		t.Fatalf("POST data = %#v", env.Data)
	}
}

func TestSugar_Raw(t *testing.T) {
	t.Parallel()
	r := mount(t)

	rec := do(r, "GET", "/raw/example.com", "")
	if strings.TrimSpace(rec.Body.String()) != `{"name":"example.com"}` {
		t.Fatalf("GET raw = %s", rec.Body.String())
	}

	rec = do(r, "POST", "/raw", `{"variables":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field should be 400, got %d", rec.Code)
	}

	rec = do(r, "POST", "/raw", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing query should be 400, got %d", rec.Code)
	}
	body := kit.MustJSON[map[string]any](t, rec.Body.Bytes())
	kit.MustContain(t, body["error"].(string), "query")

	rec = do(r, "POST", "/raw", `{"query":"fail"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("failure = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `"error":"upstream down"`)
}

func TestAdaptChi_GroupRouteUse(t *testing.T) {
	t.Parallel()
	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Root", "1")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api", func(sr phttp.Router) {
		sr.Group(func(g phttp.Router) {
			g.Put("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		})
		sr.Handle("/h", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }))
		if sr.Mux() == nil {
			t.Fatal("sub Mux() nil")
		}
	})

	rec := do(r, "PUT", "/api/x", "")
	if rec.Code != http.StatusAccepted || rec.Header().Get("X-Root") != "1" {
		t.Fatalf("PUT = %d %v", rec.Code, rec.Header())
	}
	if rec := do(r, "GET", "/api/h", ""); rec.Code != http.StatusTeapot {
		t.Fatalf("Handle = %d", rec.Code)
	}
}
