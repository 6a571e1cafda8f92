// Package http provides the per-domain routes: detail, activity feed and whois
package http

import (
	stdhttp "net/http"

	"domamarket/internal/adapters/whois"
	"domamarket/internal/core/descriptor"
	"domamarket/internal/core/mapper"
	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/net/http/bind"
)

// activity feed bounds
const (
	DefaultTake = 50
	MaxTake     = 200
)

// Register mounts the domain routes
func Register(r httpkit.Router, res *resolver.Resolver, w *whois.Checker) {
	h := &handlers{res: res, whois: w}

	httpkit.GetRaw(r, "/{name}", h.info)
	httpkit.GetRaw(r, "/{name}/activities", h.activities)
	httpkit.Get(r, "/{name}/whois", h.availability)
}

// Docs describes the domain routes under prefix
func Docs(prefix string) []swaggerkit.Op {
	name := swaggerkit.Param{Name: "name", In: "path"}
	return []swaggerkit.Op{
		{Method: "GET", Path: prefix + "/{name}", Tag: "Domains", Verbatim: true,
			Summary: "Name detail with fractional token info; 404 when the name is unknown", Params: []swaggerkit.Param{name}},
		{Method: "GET", Path: prefix + "/{name}/activities", Tag: "Domains", Verbatim: true,
			Summary: "Newest activities first",
			Params:  []swaggerkit.Param{name, {Name: "take", In: "query", Type: "integer"}}},
		{Method: "GET", Path: prefix + "/{name}/whois", Tag: "Domains",
			Summary: "WHOIS availability probe", Params: []swaggerkit.Param{name}},
	}
}

type handlers struct {
	res   *resolver.Resolver
	whois *whois.Checker
}

func nameParam(r *stdhttp.Request) (string, error) {
	name := descriptor.Normalize(httpkit.URLParam(r, "name"))
	if name == "" {
		return "", perr.WithField(perr.Validationf("name is required"), "name")
	}
	return name, nil
}

func (h *handlers) info(r *stdhttp.Request) (any, error) {
	name, err := nameParam(r)
	if err != nil {
		return nil, err
	}
	out, err := h.res.ResolveArgs(r.Context(), registry.OpDomainInfo, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if mapper.IsNull(out.Value) {
		return nil, perr.NotFoundf("name %s not found", name)
	}
	return out.Data, nil
}

func (h *handlers) activities(r *stdhttp.Request) (any, error) {
	name, err := nameParam(r)
	if err != nil {
		return nil, err
	}
	take := bind.QueryIntClamp(r, "take", DefaultTake, 1, MaxTake)
	out, err := h.res.ResolveArgs(r.Context(), registry.OpNameActivityFeed, map[string]any{"name": name, "take": take})
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (h *handlers) availability(r *stdhttp.Request) (any, error) {
	name, err := nameParam(r)
	if err != nil {
		return nil, err
	}
	if h.whois == nil {
		return nil, perr.Unavailablef("whois is not configured")
	}
	if _, err := descriptor.Parse(name); err != nil {
		return nil, err
	}
	return h.whois.Check(r.Context(), name), nil
}
