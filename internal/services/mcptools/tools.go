package mcptools

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"domamarket/internal/adapters/doma"
	"domamarket/internal/adapters/whois"
	"domamarket/internal/core/descriptor"
	"domamarket/internal/core/mapper"
	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/validate"
)

// tool names
const (
	ToolSearchDomains      = "search_domains"
	ToolRecommendDomains   = "recommend_domains"
	ToolDomainInfo         = "domain_info"
	ToolDomainActivities   = "domain_activities"
	ToolListOffers         = "list_offers"
	ToolListListings       = "list_listings"
	ToolMarketplaceMetrics = "marketplace_metrics"
	ToolDomainAvailability = "domain_availability"
	ToolGraphQLQuery       = "graphql_query"
)

// Deps are what the tools call into
type Deps struct {
	Resolver   *resolver.Resolver
	Whois      *whois.Checker
	SearchTLDs []string
}

// Tools returns every registration; the whois tool is left out when no checker is set
func Tools(d Deps) []Registration {
	regs := []Registration{
		searchDomains(d),
		recommendDomains(d),
		domainInfo(d),
		domainActivities(d),
		listOffers(d),
		listListings(d),
		marketplaceMetrics(d),
		graphqlQuery(d),
	}
	if d.Whois != nil {
		regs = append(regs, domainAvailability(d))
	}
	return regs
}

// resolved runs op and answers with its data object
func resolved(ctx context.Context, res *resolver.Resolver, op string, args any) *mcp.CallToolResult {
	out, err := res.ResolveArgs(ctx, op, args)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(out.Data)
}

// descriptors reads names, or expands query over tlds (falling back to the default list)
func descriptors(req mcp.CallToolRequest, defTLDs []string) ([]descriptor.Descriptor, error) {
	var out []descriptor.Descriptor
	for _, n := range req.GetStringSlice("names", nil) {
		d, err := descriptor.Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if len(out) > 0 {
		return out, nil
	}
	tlds := req.GetStringSlice("tlds", nil)
	if len(tlds) == 0 {
		tlds = defTLDs
	}
	return descriptor.Expand(req.GetString("query", ""), tlds)
}

func number(req mcp.CallToolRequest, key string) json.Number {
	f := req.GetFloat(key, 0)
	if f <= 0 {
		return ""
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func optBool(req mcp.CallToolRequest, key string) *bool {
	if _, ok := req.GetArguments()[key]; !ok {
		return nil
	}
	v := req.GetBool(key, false)
	return &v
}

var nameOpts = []mcp.ToolOption{
	mcp.WithString("query", mcp.Description("A label to try across TLDs, or a full name like example.ai.")),
	mcp.WithArray("names", mcp.WithStringItems(), mcp.Description("Full names to check; takes precedence over query.")),
	mcp.WithArray("tlds", mcp.WithStringItems(), mcp.Description("TLDs to expand a bare label over.")),
}

func searchDomains(d Deps) Registration {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Search Doma names by label or full name with marketplace filters. Returns the raw searchDomains page."),
		mcp.WithNumber("page", mcp.Description("1-based page.")),
		mcp.WithNumber("size", mcp.Description("Page size, at most 100.")),
		mcp.WithString("sortByPrice", mcp.Enum("ASC", "DESC")),
		mcp.WithBoolean("listedForSale"),
		mcp.WithBoolean("availableForOffer"),
		mcp.WithNumber("minPrice"),
		mcp.WithNumber("maxPrice"),
	}, nameOpts...)
	tool := mcp.NewTool(ToolSearchDomains, opts...)

	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := descriptors(req, d.SearchTLDs)
		if err != nil {
			return errorResult(err), nil
		}
		in := resolver.SearchInput{
			Names:             names,
			Page:              req.GetInt("page", 0),
			Size:              req.GetInt("size", 0),
			SortByPrice:       strings.ToUpper(req.GetString("sortByPrice", "")),
			ListedForSale:     optBool(req, "listedForSale"),
			AvailableForOffer: optBool(req, "availableForOffer"),
			MinPrice:          number(req, "minPrice"),
			MaxPrice:          number(req, "maxPrice"),
		}
		if err := validate.Struct(in); err != nil {
			return errorResult(err), nil
		}
		return resolved(ctx, d.Resolver, registry.OpSearchDomains, in), nil
	}}
}

func recommendDomains(d Deps) Registration {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Recommend names similar to the given ones. Falls back to search when recommendations are unavailable."),
		mcp.WithNumber("minPrice"),
		mcp.WithNumber("maxPrice"),
	}, nameOpts...)
	tool := mcp.NewTool(ToolRecommendDomains, opts...)

	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := descriptors(req, d.SearchTLDs)
		if err != nil {
			return errorResult(err), nil
		}
		in := resolver.RecommendInput{Names: names, MinPrice: number(req, "minPrice"), MaxPrice: number(req, "maxPrice")}
		if err := validate.Struct(in); err != nil {
			return errorResult(err), nil
		}
		return resolved(ctx, d.Resolver, registry.OpRecommendDomains, in), nil
	}}
}

func requiredName(req mcp.CallToolRequest) (string, error) {
	name := descriptor.Normalize(req.GetString("name", ""))
	if name == "" {
		return "", perr.WithField(perr.Validationf("name is required"), "name")
	}
	return name, nil
}

func domainInfo(d Deps) Registration {
	tool := mcp.NewTool(ToolDomainInfo,
		mcp.WithDescription("Name detail: tokens, registrar, DS keys and fractional token info."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name, for example example.ai.")),
	)
	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := requiredName(req)
		if err != nil {
			return errorResult(err), nil
		}
		out, err := d.Resolver.ResolveArgs(ctx, registry.OpDomainInfo, map[string]any{"name": name})
		if err != nil {
			return errorResult(err), nil
		}
		if mapper.IsNull(out.Value) {
			return errorResult(perr.NotFoundf("name %s not found", name)), nil
		}
		return jsonResult(out.Data), nil
	}}
}

func domainActivities(d Deps) Registration {
	tool := mcp.NewTool(ToolDomainActivities,
		mcp.WithDescription("Activity feed for a name, newest first."),
		mcp.WithString("name", mcp.Required()),
		mcp.WithNumber("take", mcp.Description("At most 200; default 50.")),
	)
	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := requiredName(req)
		if err != nil {
			return errorResult(err), nil
		}
		take := min(max(req.GetInt("take", 50), 1), 200)
		return resolved(ctx, d.Resolver, registry.OpNameActivityFeed, map[string]any{"name": name, "take": take}), nil
	}}
}

func listOffers(d Deps) Registration {
	tool := mcp.NewTool(ToolListOffers,
		mcp.WithDescription("Offers on a token."),
		mcp.WithString("tokenId", mcp.Required()),
		mcp.WithNumber("take", mcp.Description("At most 100; default 10.")),
		mcp.WithNumber("skip"),
	)
	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tok := strings.TrimSpace(req.GetString("tokenId", ""))
		if tok == "" {
			return errorResult(perr.WithField(perr.Validationf("tokenId is required"), "tokenId")), nil
		}
		args := map[string]any{
			"tokenId": tok,
			"take":    min(max(req.GetInt("take", 10), 1), 100),
			"skip":    max(req.GetInt("skip", 0), 0),
		}
		return resolved(ctx, d.Resolver, registry.OpOffers, args), nil
	}}
}

func listListings(d Deps) Registration {
	tool := mcp.NewTool(ToolListListings,
		mcp.WithDescription("Fixed-price marketplace listings."),
		mcp.WithNumber("take"),
		mcp.WithNumber("skip"),
		mcp.WithArray("tlds", mcp.WithStringItems()),
		mcp.WithString("sld"),
	)
	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := resolver.ListingsFilter{
			Take: min(max(req.GetInt("take", 20), 1), 100),
			Skip: max(req.GetInt("skip", 0), 0),
			TLDs: descriptor.TLDs(req.GetStringSlice("tlds", nil)),
			SLD:  descriptor.Normalize(req.GetString("sld", "")),
		}
		return resolved(ctx, d.Resolver, registry.OpListings, f), nil
	}}
}

func marketplaceMetrics(d Deps) Registration {
	tool := mcp.NewTool(ToolMarketplaceMetrics,
		mcp.WithDescription("Marketplace volume and sales metrics, optionally for one TLD."),
		mcp.WithString("tld"),
	)
	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}
		if tld := strings.TrimPrefix(descriptor.Normalize(req.GetString("tld", "")), "."); tld != "" {
			args["tld"] = tld
		}
		return resolved(ctx, d.Resolver, registry.OpMarketplaceMetrics, args), nil
	}}
}

func domainAvailability(d Deps) Registration {
	tool := mcp.NewTool(ToolDomainAvailability,
		mcp.WithDescription("WHOIS availability for one or more names: available, taken or unknown."),
		mcp.WithArray("names", mcp.Required(), mcp.WithStringItems()),
	)
	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var names []string
		for _, n := range req.GetStringSlice("names", nil) {
			dd, err := descriptor.Parse(n)
			if err != nil {
				return errorResult(err), nil
			}
			names = append(names, dd.String())
		}
		if len(names) == 0 {
			return errorResult(perr.WithField(perr.Validationf("names is required"), "names")), nil
		}
		return jsonResult(d.Whois.CheckMany(ctx, names)), nil
	}}
}

func graphqlQuery(d Deps) Registration {
	tool := mcp.NewTool(ToolGraphQLQuery,
		mcp.WithDescription("Run a GraphQL document against the Doma API. Use when no other tool covers the query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("GraphQL document.")),
		mcp.WithString("variables", mcp.Description("Optional JSON object of variables.")),
	)
	return Registration{Tool: tool, Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r := doma.Request{Query: req.GetString("query", "")}
		if s := strings.TrimSpace(req.GetString("variables", "")); s != "" {
			if err := json.Unmarshal([]byte(s), &r.Variables); err != nil {
				return errorResult(perr.Wrapf(err, perr.ErrorCodeJSON, "parse variables")), nil
			}
		}
		data, err := d.Resolver.Passthrough(ctx, r)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(data), nil
	}}
}
