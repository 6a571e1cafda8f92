// Package http provides the names route
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"

	"domamarket/internal/core/descriptor"
	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/swaggerkit"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/net/http/bind"
	"domamarket/internal/platform/validate"
)

// DefaultTake is the page size when take is absent
const DefaultTake = 20

// Register mounts the names route
func Register(r httpkit.Router, res *resolver.Resolver) {
	h := &handlers{res: res}
	httpkit.GetRaw(r, "/", h.list)
}

// Docs describes the names route under prefix
func Docs(prefix string) []swaggerkit.Op {
	q := func(name, typ string) swaggerkit.Param { return swaggerkit.Param{Name: name, In: "query", Type: typ} }
	return []swaggerkit.Op{{
		Method: "GET", Path: prefix, Tag: "Names", Verbatim: true,
		Summary: "Tokenized names; list params take comma separated values",
		Params: []swaggerkit.Param{
			q("name", ""), q("tlds", ""), q("take", "integer"), q("skip", "integer"), q("sortOrder", ""),
			q("ownedBy", ""), q("networkIds", ""), q("registrarIanaIds", ""), q("claimStatus", ""),
		},
	}}
}

type handlers struct{ res *resolver.Resolver }

// Filter reads a NamesFilter from the query string
func Filter(r *stdhttp.Request) (resolver.NamesFilter, error) {
	q := r.URL.Query()
	take, err := bind.QueryInt(r, "take", DefaultTake, 1, 100)
	if err != nil {
		return resolver.NamesFilter{}, err
	}
	skip, err := bind.QueryInt(r, "skip", 0, 0, 0)
	if err != nil {
		return resolver.NamesFilter{}, err
	}
	f := resolver.NamesFilter{
		Name:        descriptor.Normalize(q.Get("name")),
		TLDs:        descriptor.TLDs(bind.QueryCSV(r, "tlds")),
		Take:        take,
		Skip:        skip,
		SortOrder:   strings.ToUpper(strings.TrimSpace(q.Get("sortOrder"))),
		OwnedBy:     bind.QueryCSV(r, "ownedBy"),
		NetworkIDs:  bind.QueryCSV(r, "networkIds"),
		ClaimStatus: strings.ToUpper(strings.TrimSpace(q.Get("claimStatus"))),
	}
	for _, s := range bind.QueryCSV(r, "registrarIanaIds") {
		id, err := strconv.Atoi(s)
		if err != nil {
			return resolver.NamesFilter{}, perr.WithField(perr.Validationf("registrarIanaIds must be integers"), "registrarIanaIds")
		}
		f.RegistrarIanaIDs = append(f.RegistrarIanaIDs, id)
	}
	return f, validate.Struct(f)
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	f, err := Filter(r)
	if err != nil {
		return nil, err
	}
	out, err := h.res.ResolveArgs(r.Context(), registry.OpNames, f)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}
