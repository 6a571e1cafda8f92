package swaggerkit

import (
	"net/http"

	phttp "domamarket/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the Swagger UI and the JSON document under /api/docs when enabled
func Mount(r phttp.Router, enabled bool, d *Doc) {
	if !enabled || d == nil {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", d.Handler())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("domamarket"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
