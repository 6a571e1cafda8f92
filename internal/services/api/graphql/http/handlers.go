// Package http provides the GraphQL passthrough
package http

import (
	stdhttp "net/http"

	"domamarket/internal/adapters/doma"
	"domamarket/internal/core/resolver"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
)

// Register mounts the passthrough on every path given
func Register(r httpkit.Router, res *resolver.Resolver, paths ...string) {
	h := &handlers{res: res}
	for _, p := range paths {
		httpkit.PostRaw(r, p, h.forward)
	}
}

// Docs describes the passthrough paths
func Docs(paths ...string) []swaggerkit.Op {
	ops := make([]swaggerkit.Op, 0, len(paths))
	for _, p := range paths {
		ops = append(ops, swaggerkit.Op{
			Method: "POST", Path: p, Tag: "GraphQL", Body: true, Verbatim: true,
			Summary: "Forward {query, variables} to the subgraph and return its data object",
		})
	}
	return ops
}

type handlers struct{ res *resolver.Resolver }

func (h *handlers) forward(r *stdhttp.Request, in doma.Request) (any, error) {
	return h.res.Passthrough(r.Context(), in)
}
