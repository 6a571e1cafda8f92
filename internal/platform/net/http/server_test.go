package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"domamarket/internal/platform/config"
	phttp "domamarket/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_Addr(t *testing.T) {
	t.Setenv("SRV_PORT", "5001")
	called := false
	srv := phttp.NewServer(config.New().Prefix("SRV_"), func(*chi.Mux) { called = true })
	if !called {
		t.Fatal("option not invoked")
	}
	if srv.Addr() != ":5001" {
		t.Fatalf("addr = %q", srv.Addr())
	}
	if phttp.NewServer(config.New().Prefix("NOPE_")).Addr() != ":4001" {
		t.Fatal("default port should be 4001")
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv := phttp.NewServer(config.New())
	srv.Router().Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != `{"ok":true}` {
		t.Fatalf("body = %s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()
	on := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(on, "/debug", true)
	rec := httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("enabled = %d", rec.Code)
	}

	off := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled = %d", rec.Code)
	}
}
