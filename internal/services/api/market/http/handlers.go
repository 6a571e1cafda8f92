// Package http provides the marketplace routes: metrics, recommendations, search and listings
package http

import (
	stdhttp "net/http"

	"domamarket/internal/core/descriptor"
	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	"domamarket/internal/platform/net/http/bind"
	"domamarket/internal/platform/validate"
)

// listings bounds
const (
	DefaultTake = 20
	MaxTake     = 100
)

// RecommendBody is the recommendations payload: names, or a query expanded over tlds
type RecommendBody struct {
	resolver.RecommendInput `validate:"-"`
	Query                   string   `json:"query,omitempty"`
	TLDs                    []string `json:"tlds,omitempty"`
}

// SearchBody is the search payload: filters plus names, or a query expanded over tlds
type SearchBody struct {
	resolver.SearchInput `validate:"-"`
	Query                string   `json:"query,omitempty"`
	TLDs                 []string `json:"tlds,omitempty"`
}

// Register mounts the marketplace routes
func Register(r httpkit.Router, res *resolver.Resolver, searchTLDs []string) {
	h := &handlers{res: res, tlds: searchTLDs}

	httpkit.GetRaw(r, "/metrics", h.metrics)
	httpkit.PostRaw(r, "/recommendations", h.recommend)
	httpkit.PostRaw(r, "/search", h.search)
	httpkit.GetRaw(r, "/listings", h.listings)
}

// Docs describes the marketplace routes under prefix
func Docs(prefix string) []swaggerkit.Op {
	q := func(name, typ string) swaggerkit.Param { return swaggerkit.Param{Name: name, In: "query", Type: typ} }
	return []swaggerkit.Op{
		{Method: "GET", Path: prefix + "/metrics", Tag: "Market", Verbatim: true,
			Summary: "Marketplace metrics, optionally for one TLD", Params: []swaggerkit.Param{q("tld", "")}},
		{Method: "POST", Path: prefix + "/recommendations", Tag: "Market", Verbatim: true, Body: true,
			Summary: "Recommended names; falls back to search when recommendations are unavailable"},
		{Method: "POST", Path: prefix + "/search", Tag: "Market", Verbatim: true, Body: true,
			Summary: "Search names by descriptor or free-text query"},
		{Method: "GET", Path: prefix + "/listings", Tag: "Market", Verbatim: true,
			Summary: "Fixed-price listings",
			Params:  []swaggerkit.Param{q("take", "integer"), q("skip", "integer"), q("tlds", ""), q("sld", "")}},
	}
}

type handlers struct {
	res  *resolver.Resolver
	tlds []string
}

// descriptors returns names as given, or the expansion of query
func (h *handlers) descriptors(names []descriptor.Descriptor, query string, tlds []string) ([]descriptor.Descriptor, error) {
	if len(names) > 0 {
		return names, nil
	}
	if len(tlds) == 0 {
		tlds = h.tlds
	}
	return descriptor.Expand(query, tlds)
}

func (h *handlers) metrics(r *stdhttp.Request) (any, error) {
	args := map[string]any{}
	if tld := descriptor.Normalize(r.URL.Query().Get("tld")); tld != "" {
		args["tld"] = tld
	}
	out, err := h.res.ResolveArgs(r.Context(), registry.OpMarketplaceMetrics, args)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (h *handlers) recommend(r *stdhttp.Request, in RecommendBody) (any, error) {
	names, err := h.descriptors(in.Names, in.Query, in.TLDs)
	if err != nil {
		return nil, err
	}
	args := in.RecommendInput
	args.Names = names
	if err := validate.Struct(args); err != nil {
		return nil, err
	}
	out, err := h.res.ResolveArgs(r.Context(), registry.OpRecommendDomains, args)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (h *handlers) search(r *stdhttp.Request, in SearchBody) (any, error) {
	names, err := h.descriptors(in.Names, in.Query, in.TLDs)
	if err != nil {
		return nil, err
	}
	args := in.SearchInput
	args.Names = names
	if err := validate.Struct(args); err != nil {
		return nil, err
	}
	out, err := h.res.ResolveArgs(r.Context(), registry.OpSearchDomains, args)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (h *handlers) listings(r *stdhttp.Request) (any, error) {
	take, err := bind.QueryInt(r, "take", DefaultTake, 1, MaxTake)
	if err != nil {
		return nil, err
	}
	skip, err := bind.QueryInt(r, "skip", 0, 0, 0)
	if err != nil {
		return nil, err
	}
	f := resolver.ListingsFilter{
		Take: take,
		Skip: skip,
		TLDs: descriptor.TLDs(bind.QueryCSV(r, "tlds")),
		SLD:  descriptor.Normalize(r.URL.Query().Get("sld")),
	}
	out, err := h.res.ResolveArgs(r.Context(), registry.OpListings, f)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}
