// Package http provides the offers route
package http

import (
	stdhttp "net/http"

	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	"domamarket/internal/platform/net/http/bind"
)

// page bounds
const (
	DefaultTake = 10
	MaxTake     = 100
)

// Register mounts the offers route
func Register(r httpkit.Router, res *resolver.Resolver) {
	h := &handlers{res: res}
	httpkit.GetRaw(r, "/", h.list)
}

// Docs describes the offers route under prefix
func Docs(prefix string) []swaggerkit.Op {
	return []swaggerkit.Op{{
		Method: "GET", Path: prefix, Tag: "Offers", Verbatim: true,
		Summary: "Offers on a token, newest first",
		Params: []swaggerkit.Param{
			{Name: "tokenId", In: "query", Required: true},
			{Name: "take", In: "query", Type: "integer"},
			{Name: "skip", In: "query", Type: "integer"},
		},
	}}
}

type handlers struct{ res *resolver.Resolver }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	tokenID, err := bind.Required(r, "tokenId")
	if err != nil {
		return nil, err
	}
	take := bind.QueryIntClamp(r, "take", DefaultTake, 1, MaxTake)
	skip := bind.QueryIntClamp(r, "skip", 0, 0, 0)
	out, err := h.res.ResolveArgs(r.Context(), registry.OpOffers, map[string]any{
		"tokenId": tokenID,
		"take":    take,
		"skip":    skip,
	})
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}
