package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"domamarket/internal/adapters/doma"
	"domamarket/internal/adapters/whois"
	"domamarket/internal/core/registry"
	"domamarket/internal/core/resolver"
	"domamarket/internal/services/api/apitest"
)

func deps(tr *apitest.Transport) Deps {
	return Deps{
		Resolver:   resolver.New(registry.Default(), doma.NewPool(tr, nil)),
		SearchTLDs: []string{"com", "ai"},
		Whois: whois.NewWithLookup(func(d string) (string, error) {
			if strings.HasPrefix(d, "taken") {
				return "Registrar: Example", nil
			}
			return "No match for " + d, nil
		}, time.Second),
	}
}

func call(t *testing.T, d Deps, name string, args map[string]any) (string, bool) {
	t.Helper()
	for _, r := range Tools(d) {
		if r.Tool.Name != name {
			continue
		}
		req := mcp.CallToolRequest{}
		req.Params.Name = name
		req.Params.Arguments = args
		res, err := r.Handler(context.Background(), req)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(res.Content) == 0 {
			t.Fatalf("%s: empty result", name)
		}
		tc, ok := mcp.AsTextContent(res.Content[0])
		if !ok {
			t.Fatalf("%s: content is %T", name, res.Content[0])
		}
		return tc.Text, res.IsError
	}
	t.Fatalf("no tool %s", name)
	return "", false
}

func TestToolsRegistered(t *testing.T) {
	t.Parallel()
	want := []string{
		ToolSearchDomains, ToolRecommendDomains, ToolDomainInfo, ToolDomainActivities, ToolListOffers,
		ToolListListings, ToolMarketplaceMetrics, ToolGraphQLQuery, ToolDomainAvailability,
	}
	regs := Tools(deps(&apitest.Transport{}))
	if len(regs) != len(want) {
		t.Fatalf("tools = %d, want %d", len(regs), len(want))
	}
	for i, r := range regs {
		if r.Tool.Name != want[i] || r.Tool.Description == "" {
			t.Fatalf("tool %d = %q", i, r.Tool.Name)
		}
	}
	if _, ok := regs[2].Tool.InputSchema.Properties["name"]; !ok {
		t.Fatal("domain_info has no name property")
	}

	d := deps(&apitest.Transport{})
	d.Whois = nil
	for _, r := range Tools(d) {
		if r.Tool.Name == ToolDomainAvailability {
			t.Fatal("availability registered without a checker")
		}
	}
	NewServer(d)
}

func TestSearchExpandsQuery(t *testing.T) {
	t.Parallel()
	tr := &apitest.Transport{Reply: apitest.Data(`{"searchDomains":{"items":[],"totalCount":0}}`)}
	text, isErr := call(t, deps(tr), ToolSearchDomains, map[string]any{"query": "Example", "listedForSale": true, "minPrice": 2.5})
	if isErr {
		t.Fatalf("search failed: %s", text)
	}
	if !strings.Contains(text, "\n  \"searchDomains\"") {
		t.Fatalf("result not indented: %s", text)
	}
	vars := tr.Requests()[0].Variables
	names, _ := vars["names"].([]any)
	if len(names) != 2 || vars["listedForSale"] != true || vars["minPrice"] != 2.5 {
		t.Fatalf("vars = %+v", vars)
	}
	if _, sent := vars["availableForOffer"]; sent {
		t.Fatalf("unset bool sent: %+v", vars)
	}
}

func TestErrorsAreResults(t *testing.T) {
	t.Parallel()
	tr := &apitest.Transport{Reply: apitest.Data(`{"name":null}`)}
	d := deps(tr)

	cases := []struct {
		tool string
		args map[string]any
		want string
	}{
		{ToolDomainInfo, map[string]any{"name": "gone.ai"}, "not_found"},
		{ToolDomainInfo, map[string]any{}, "name is required"},
		{ToolListOffers, map[string]any{}, "tokenId is required"},
		{ToolSearchDomains, map[string]any{"names": []any{"nodot"}}, "not a domain name"},
		{ToolGraphQLQuery, map[string]any{"query": "{ x }", "variables": "{bad"}, "parse variables"},
	}
	for _, tc := range cases {
		text, isErr := call(t, d, tc.tool, tc.args)
		if !isErr || !strings.Contains(strings.ToLower(text), tc.want) {
			t.Fatalf("%s %v = %q (error %v)", tc.tool, tc.args, text, isErr)
		}
	}
}

func TestAvailability(t *testing.T) {
	t.Parallel()
	text, isErr := call(t, deps(&apitest.Transport{}), ToolDomainAvailability, map[string]any{"names": []any{"free.ai", "taken.com"}})
	if isErr {
		t.Fatal(text)
	}
	var got []whois.Result
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Status != whois.StatusAvailable || got[1].Status != whois.StatusTaken {
		t.Fatalf("results = %+v", got)
	}
}

func TestGraphQLQuery(t *testing.T) {
	t.Parallel()
	tr := &apitest.Transport{Reply: apitest.Data(`{"a":1}`)}
	text, isErr := call(t, deps(tr), ToolGraphQLQuery, map[string]any{"query": "query($n:String){ a }", "variables": `{"n":"x"}`})
	if isErr || !strings.Contains(text, `"a": 1`) {
		t.Fatalf("graphql = %q", text)
	}
	if tr.Requests()[0].Variables["n"] != "x" {
		t.Fatalf("vars = %+v", tr.Requests()[0].Variables)
	}
}
