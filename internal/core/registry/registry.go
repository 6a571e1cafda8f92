// Package registry holds the named GraphQL operations and their schema variants.
// Variant order is significant: earlier variants target newer schemas and are tried first.
package registry

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"

	"domamarket/internal/adapters/doma"
)

// Operation names
const (
	OpNames              = "names"
	OpName               = "name"
	OpDomainInfo         = "domainInfo"
	OpNameActivities     = "nameActivities"
	OpNameActivityFeed   = "nameActivityFeed"
	OpListings           = "listings"
	OpOffers             = "offers"
	OpMarketplaceMetrics = "marketplaceMetrics"
	OpRecommendDomains   = "recommendDomains"
	OpSearchDomains      = "searchDomains"
	OpSearchNames        = "searchNames"
)

// Shape is the JSON kind a variant's field must decode to
type Shape int

const (
	// ShapeEntity is an object or null
	ShapeEntity Shape = iota
	// ShapePage is an object carrying items
	ShapePage
	// ShapeList is a bare array
	ShapeList
)

func (s Shape) String() string {
	switch s {
	case ShapePage:
		return "page"
	case ShapeList:
		return "list"
	default:
		return "entity"
	}
}

// Variant is one wire-level attempt at an operation
type Variant struct {
	Name     string
	Document string
	Field    string
	Shape    Shape

	// Remap rewrites the field value into the operation's canonical shape
	Remap func(json.RawMessage) (json.RawMessage, error)
	// Vars adapts the caller's variables for this variant
	Vars func(map[string]any) map[string]any
}

// Operation is a logical query with its ordered variants
type Operation struct {
	Name   string
	Target doma.Kind
	// Field is the key the resolved value is published under
	Field    string
	Shape    Shape
	Variants []Variant

	fallbacks []Variant
}

// WithFallbacks returns o with lower-priority variants appended to its chain
func (o Operation) WithFallbacks(v ...Variant) Operation {
	o.fallbacks = append(slices.Clone(o.fallbacks), v...)
	return o
}

// Registry maps operation names to operations; immutable once built
type Registry struct {
	ops map[string]Operation
}

// New validates and indexes ops
func New(ops ...Operation) (*Registry, error) {
	r := &Registry{ops: make(map[string]Operation, len(ops))}
	for _, op := range ops {
		if op.Name == "" || op.Field == "" {
			return nil, fmt.Errorf("registry: operation needs a name and a field")
		}
		if len(op.Variants) == 0 {
			return nil, fmt.Errorf("registry: %s has no variants", op.Name)
		}
		if _, dup := r.ops[op.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate operation %s", op.Name)
		}
		seen := map[string]bool{}
		for _, v := range slices.Concat(op.Variants, op.fallbacks) {
			if v.Name == "" || v.Document == "" || v.Field == "" {
				return nil, fmt.Errorf("registry: %s has an incomplete variant", op.Name)
			}
			if seen[v.Name] {
				return nil, fmt.Errorf("registry: %s repeats variant %s", op.Name, v.Name)
			}
			seen[v.Name] = true
		}
		r.ops[op.Name] = op
	}
	return r, nil
}

// Lookup returns a copy of the named operation
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.ops[name]
	if !ok {
		return Operation{}, false
	}
	op.Variants = slices.Clone(op.Variants)
	op.fallbacks = nil
	return op, true
}

// Fallbacks returns the lower-priority variants tried after op's own variants fail.
// They read differently named upstream fields and remap into op's canonical shape.
func (r *Registry) Fallbacks(name string) []Variant {
	return slices.Clone(r.ops[name].fallbacks)
}

// Names lists registered operations, sorted
func (r *Registry) Names() []string {
	out := slices.Collect(maps.Keys(r.ops))
	sort.Strings(out)
	return out
}

// Default is the registry for the public Doma schema
func Default() *Registry {
	r, err := New(defaultOperations()...)
	if err != nil {
		panic(err)
	}
	return r
}

func single(name, doc, field string, shape Shape) []Variant {
	return []Variant{{Name: name, Document: doc, Field: field, Shape: shape}}
}

func defaultOperations() []Operation {
	searchVariants := []Variant{
		{Name: "searchDomains/NameDescriptorInput", Document: docSearchInput, Field: OpSearchDomains, Shape: ShapePage},
		{Name: "searchDomains/NameDescriptorArg", Document: docSearchArg, Field: OpSearchDomains, Shape: ShapePage},
	}

	recommendViaSearch := make([]Variant, len(searchVariants))
	for i, v := range searchVariants {
		v.Name = "recommendDomains/" + v.Name
		v.Remap = pageToCandidateList
		v.Vars = recommendSearchVars
		recommendViaSearch[i] = v
	}

	return []Operation{
		{Name: OpNames, Target: doma.Subgraph, Field: "names", Shape: ShapePage,
			Variants: single("names", docNames, "names", ShapePage)},
		{Name: OpName, Target: doma.Subgraph, Field: "name", Shape: ShapeEntity,
			Variants: single("name", docName, "name", ShapeEntity)},
		{Name: OpDomainInfo, Target: doma.Subgraph, Field: "name", Shape: ShapeEntity,
			Variants: single("domainInfo", docDomainInfo, "name", ShapeEntity)},
		{Name: OpNameActivities, Target: doma.Subgraph, Field: "nameActivities", Shape: ShapePage,
			Variants: single("nameActivities", docNameActivities, "nameActivities", ShapePage)},
		{Name: OpNameActivityFeed, Target: doma.Subgraph, Field: "nameActivities", Shape: ShapePage,
			Variants: single("nameActivityFeed", docNameActivityFeed, "nameActivities", ShapePage)},
		{Name: OpListings, Target: doma.Subgraph, Field: "listings", Shape: ShapePage,
			Variants: []Variant{
				{Name: "listings/Int", Document: docListings, Field: "listings", Shape: ShapePage},
				{Name: "listings/Float", Document: docListingsFloat, Field: "listings", Shape: ShapePage},
			}},
		{Name: OpOffers, Target: doma.Subgraph, Field: "offers", Shape: ShapePage,
			Variants: []Variant{
				{Name: "offers", Document: docOffers, Field: "offers", Shape: ShapePage},
				{Name: "offers/strict", Document: docOffersStrict, Field: "offers", Shape: ShapePage},
			}},
		{Name: OpMarketplaceMetrics, Target: doma.Marketplace, Field: "marketplaceMetrics", Shape: ShapePage,
			Variants: single("marketplaceMetrics", docMarketplaceMetrics, "marketplaceMetrics", ShapePage)},
		{Name: OpRecommendDomains, Target: doma.Marketplace, Field: OpRecommendDomains, Shape: ShapeList,
			Variants: []Variant{
				{Name: "recommendDomains/NameDescriptorInput", Document: docRecommendInput, Field: OpRecommendDomains, Shape: ShapeList},
				{Name: "recommendDomains/NameDescriptorArg", Document: docRecommendArg, Field: OpRecommendDomains, Shape: ShapeList},
			},
			fallbacks: recommendViaSearch},
		{Name: OpSearchDomains, Target: doma.Marketplace, Field: OpSearchDomains, Shape: ShapePage,
			Variants: searchVariants,
			fallbacks: []Variant{
				{Name: "searchNames/NameDescriptorArg", Document: docSearchNames, Field: OpSearchNames, Shape: ShapePage, Remap: pageCandidates},
			}},
		{Name: OpSearchNames, Target: doma.Marketplace, Field: OpSearchNames, Shape: ShapePage,
			Variants: single("searchNames", docSearchNames, OpSearchNames, ShapePage)},
	}
}

// recommendSearchVars keeps the recommend filters and pins the page size
func recommendSearchVars(in map[string]any) map[string]any {
	out := map[string]any{"size": 24}
	for _, k := range []string{"names", "type", "minPrice", "maxPrice"} {
		if v, ok := in[k]; ok {
			out[k] = v
		}
	}
	return out
}
