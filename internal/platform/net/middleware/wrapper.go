// Package middleware adapts chi middleware without leaking chi types and hosts the in house ones
package middleware

import (
	"net/http"
	"time"

	pnet "domamarket/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID assigns or propagates X-Request-ID and exposes it to chi and the logger
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chimw.GetReqID(r.Context())
			if id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
		}))
	}
}

// RealIP sets RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress wraps chi's compressor; level is a compress/flate level
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// StripSlashes strips a trailing slash from the request path
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors; empty origins allow all
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	origins := o.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := o.AllowedMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	headers := o.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Accept", "Content-Type", "X-Request-ID", "Last-Event-ID"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
