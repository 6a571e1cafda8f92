package resolver

import (
	"context"
	"encoding/json"

	"domamarket/internal/adapters/doma"
	"domamarket/internal/core/descriptor"
	"domamarket/internal/core/mapper"
	"domamarket/internal/core/registry"
	perr "domamarket/internal/platform/errors"
)

// NamesFilter are the names query arguments; zero values are omitted
type NamesFilter struct {
	Name             string   `json:"name,omitempty"`
	TLDs             []string `json:"tlds,omitempty"`
	Take             int      `json:"take,omitempty" validate:"min=0,max=100"`
	Skip             int      `json:"skip,omitempty" validate:"min=0"`
	SortOrder        string   `json:"sortOrder,omitempty" validate:"omitempty,oneof=ASC DESC"`
	OwnedBy          []string `json:"ownedBy,omitempty"`
	NetworkIDs       []string `json:"networkIds,omitempty"`
	RegistrarIanaIDs []int    `json:"registrarIanaIds,omitempty"`
	ClaimStatus      string   `json:"claimStatus,omitempty" validate:"omitempty,oneof=CLAIMED UNCLAIMED ALL"`
}

// ListingsFilter are the listings query arguments; take and skip are always sent
type ListingsFilter struct {
	Take int      `json:"take"`
	Skip int      `json:"skip"`
	TLDs []string `json:"tlds,omitempty"`
	SLD  string   `json:"sld,omitempty"`
}

// RecommendInput are the recommendDomains arguments
type RecommendInput struct {
	Names    []descriptor.Descriptor `json:"names" validate:"required,min=1,dive"`
	MinPrice json.Number             `json:"minPrice,omitempty"`
	MaxPrice json.Number             `json:"maxPrice,omitempty"`
	Type     string                  `json:"type,omitempty"`
}

// SearchInput are the searchDomains arguments
type SearchInput struct {
	Names             []descriptor.Descriptor `json:"names" validate:"required,min=1,dive"`
	Page              int                     `json:"page,omitempty" validate:"min=0"`
	Size              int                     `json:"size,omitempty" validate:"min=0,max=100"`
	SortByPrice       string                  `json:"sortByPrice,omitempty" validate:"omitempty,oneof=ASC DESC"`
	SortByDate        string                  `json:"sortByDate,omitempty" validate:"omitempty,oneof=ASC DESC"`
	AvailableForOffer *bool                   `json:"availableForOffer,omitempty"`
	ListedForSale     *bool                   `json:"listedForSale,omitempty"`
	New               *bool                   `json:"new,omitempty"`
	MaxChars          int                     `json:"maxChars,omitempty"`
	MinChars          int                     `json:"minChars,omitempty"`
	MaxPrice          json.Number             `json:"maxPrice,omitempty"`
	MinPrice          json.Number             `json:"minPrice,omitempty"`
	PremiumNames      *bool                   `json:"premiumNames,omitempty"`
	Type              string                  `json:"type,omitempty"`
}

// Window returns the skip/take the page number and size imply; pages are 1-based
func (s SearchInput) Window() mapper.Window {
	w := mapper.Window{Take: s.Size}
	if s.Page > 1 && s.Size > 0 {
		w.Skip = (s.Page - 1) * s.Size
	}
	return w
}

// Vars encodes any argument struct into GraphQL variables, honoring omitempty
func Vars(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "encode variables")
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "encode variables")
	}
	return out, nil
}

// ResolveArgs encodes args with Vars, then resolves op
func (r *Resolver) ResolveArgs(ctx context.Context, op string, args any) (Outcome, error) {
	vars, err := Vars(args)
	if err != nil {
		return Outcome{}, err
	}
	return r.Resolve(ctx, op, vars)
}

func page[T any](ctx context.Context, r *Resolver, op string, args any, w mapper.Window) (mapper.Page[T], error) {
	out, err := r.ResolveArgs(ctx, op, args)
	if err != nil {
		return mapper.Page[T]{}, err
	}
	return mapper.DecodePage[T](op, out.Value, w)
}

// Names lists tokenized names
func (r *Resolver) Names(ctx context.Context, f NamesFilter) (mapper.Page[mapper.Name], error) {
	return page[mapper.Name](ctx, r, registry.OpNames, f, mapper.Window{Skip: f.Skip, Take: f.Take})
}

// Name returns one name; NotFound when upstream has none
func (r *Resolver) Name(ctx context.Context, name string) (mapper.Name, error) {
	out, err := r.Resolve(ctx, registry.OpName, map[string]any{"name": name})
	if err != nil {
		return mapper.Name{}, err
	}
	n, found, err := mapper.DecodeEntity[mapper.Name](registry.OpName, out.Value)
	if err == nil && !found {
		err = perr.NotFoundf("name %s not found", name)
	}
	return n, err
}

// DomainInfo returns the extended name detail; NotFound when upstream has none
func (r *Resolver) DomainInfo(ctx context.Context, name string) (mapper.NameDetail, error) {
	out, err := r.Resolve(ctx, registry.OpDomainInfo, map[string]any{"name": name})
	if err != nil {
		return mapper.NameDetail{}, err
	}
	d, found, err := mapper.DecodeEntity[mapper.NameDetail](registry.OpDomainInfo, out.Value)
	if err == nil && !found {
		err = perr.NotFoundf("name %s not found", name)
	}
	return d, err
}

// Activities pages a name's activity history
func (r *Resolver) Activities(ctx context.Context, name string, w mapper.Window) (mapper.Page[mapper.Activity], error) {
	args := map[string]any{"name": name, "take": w.Take, "skip": w.Skip}
	return page[mapper.Activity](ctx, r, registry.OpNameActivities, args, w)
}

// ActivityFeed returns the newest take activities of a name
func (r *Resolver) ActivityFeed(ctx context.Context, name string, take int) ([]mapper.Activity, error) {
	p, err := page[mapper.Activity](ctx, r, registry.OpNameActivityFeed, map[string]any{"name": name, "take": take}, mapper.Window{Take: take})
	return p.Items, err
}

// Listings pages marketplace listings
func (r *Resolver) Listings(ctx context.Context, f ListingsFilter) (mapper.Page[mapper.Listing], error) {
	return page[mapper.Listing](ctx, r, registry.OpListings, f, mapper.Window{Skip: f.Skip, Take: f.Take})
}

// Offers pages the offers on a token
func (r *Resolver) Offers(ctx context.Context, tokenID string, w mapper.Window) (mapper.Page[mapper.Offer], error) {
	if tokenID == "" {
		return mapper.Page[mapper.Offer]{}, perr.WithField(perr.Validationf("tokenId is required"), "tokenId")
	}
	args := map[string]any{"tokenId": tokenID, "take": w.Take, "skip": w.Skip}
	return page[mapper.Offer](ctx, r, registry.OpOffers, args, w)
}

// Metrics returns marketplace metrics, optionally for one TLD
func (r *Resolver) Metrics(ctx context.Context, tld string) ([]mapper.Metric, error) {
	args := map[string]any{}
	if tld != "" {
		args["tld"] = tld
	}
	p, err := page[mapper.Metric](ctx, r, registry.OpMarketplaceMetrics, args, mapper.Window{})
	return p.Items, err
}

// Recommend runs the recommend chain, falling back to search
func (r *Resolver) Recommend(ctx context.Context, in RecommendInput) ([]mapper.Candidate, error) {
	out, err := r.ResolveArgs(ctx, registry.OpRecommendDomains, in)
	if err != nil {
		return nil, err
	}
	return mapper.DecodeList[mapper.Candidate](registry.OpRecommendDomains, out.Value)
}

// Search runs the search chain, falling back to searchNames
func (r *Resolver) Search(ctx context.Context, in SearchInput) (mapper.Page[mapper.Candidate], error) {
	return page[mapper.Candidate](ctx, r, registry.OpSearchDomains, in, in.Window())
}

// Passthrough forwards an arbitrary request to the subgraph transport
func (r *Resolver) Passthrough(ctx context.Context, req doma.Request) (json.RawMessage, error) {
	if req.Query == "" {
		return nil, perr.WithField(perr.Validationf("query is required"), "query")
	}
	return r.pool.For(doma.Subgraph).Execute(ctx, req)
}
