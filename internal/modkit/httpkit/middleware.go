package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"domamarket/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
}

// CommonStack returns the baseline middleware for the API scope.
// Timeouts are applied per module so streaming routes stay open.
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: o.SlowRequest,
			Skip: []string{"/health"},
		}),

		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
	}
}

// Timeout bounds a module's handlers
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return middleware.Timeout(d)
}
