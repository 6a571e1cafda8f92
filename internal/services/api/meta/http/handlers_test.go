package http

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"domamarket/internal/modkit/repokit"
	phttp "domamarket/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pingFunc func(stdctx.Context) error

func (f pingFunc) Ping(ctx stdctx.Context) error { return f(ctx) }

func serve(t *testing.T, d Deps, path string) (int, phttp.Envelope) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s: %v body=%s", path, err, rec.Body)
	}
	return rec.Code, env
}

func TestReady(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		checks map[string]repokit.Pinger
		want   string
		pg     string
	}{
		{"memory carts", map[string]repokit.Pinger{}, "ok", "skipped"},
		{"pg up", map[string]repokit.Pinger{"pg": pingFunc(func(stdctx.Context) error { return nil })}, "ok", "ok"},
		{"pg down", map[string]repokit.Pinger{"pg": pingFunc(func(stdctx.Context) error { return errors.New("refused") })}, "fail", "fail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, env := serve(t, Deps{ServiceName: "doma-api", Checks: tc.checks, Order: []string{"pg"}}, "/ready")
			if code != http.StatusOK {
				t.Fatalf("code = %d", code)
			}
			b, _ := json.Marshal(env.Data)
			var rr ReadyResponse
			_ = json.Unmarshal(b, &rr)
			if rr.Status != tc.want || len(rr.Checks) != 1 || rr.Checks[0].Status != tc.pg {
				t.Fatalf("ready = %+v", rr)
			}
			if tc.pg == "fail" && rr.Checks[0].Error == "" {
				t.Fatal("failed check should carry the error")
			}
		})
	}
}

func TestHealthVersionService(t *testing.T) {
	t.Parallel()
	d := Deps{ServiceName: "doma-api", StartedAt: time.Now().Add(-time.Minute)}

	code, env := serve(t, d, "/health")
	if code != http.StatusOK || env.Data.(map[string]any)["ok"] != true {
		t.Fatalf("health = %d %+v", code, env)
	}
	_, env = serve(t, d, "/version")
	if env.Data.(map[string]any)["service"] != "doma-api" {
		t.Fatalf("version = %+v", env.Data)
	}
	_, env = serve(t, d, "/service")
	if up := env.Data.(map[string]any)["uptime"].(float64); up < 59 {
		t.Fatalf("uptime = %v", up)
	}
}

func TestDocs(t *testing.T) {
	t.Parallel()
	ops := Docs("/meta")
	if len(ops) != 4 || ops[0].Path != "/meta/health" {
		t.Fatalf("docs = %+v", ops)
	}
}
