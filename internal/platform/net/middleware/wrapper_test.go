package middleware_test

import (
	"compress/flate"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"domamarket/internal/platform/logger"
	pnet "domamarket/internal/platform/net"
	"domamarket/internal/platform/net/middleware"
	kit "domamarket/internal/platform/testkit"
)

func TestRequestID_PropagatesToLoggerAndHeader(t *testing.T) {
	t.Parallel()
	var seen, logged string
	h := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
		logged = logger.RequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != "abc-1" || logged != "abc-1" {
		t.Fatalf("ids = %q / %q", seen, logged)
	}
	if rr.Header().Get("X-Request-ID") != "abc-1" {
		t.Fatal("response should echo X-Request-ID")
	}
}

func TestCompress_WhenAccepted(t *testing.T) {
	t.Parallel()
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(strings.Repeat(`{"name":"example.com"}`, 100)))
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("encoding = %q", rr.Header().Get("Content-Encoding"))
	}
}

func TestCORS_DefaultsAllowAll(t *testing.T) {
	t.Parallel()
	h := middleware.CORS(middleware.CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestSimpleWrappers(t *testing.T) {
	t.Parallel()
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	for _, mw := range []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.NoCache(),
		middleware.StripSlashes(),
		middleware.Timeout(time.Second),
		middleware.Heartbeat("/ping"),
	} {
		kit.MustNotPanic(t, func() {
			rr := httptest.NewRecorder()
			mw(ok).ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("code = %d", rr.Code)
			}
		})
	}
}

func TestRecoverJSON(t *testing.T) {
	t.Parallel()
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), "panic recovered")
	kit.MustContain(t, rr.Body.String(), "request_id")
}
