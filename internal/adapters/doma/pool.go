package doma

import "fmt"

// Kind names an upstream endpoint
type Kind int

const (
	// Subgraph serves names, listings, offers and activities
	Subgraph Kind = iota
	// Marketplace serves metrics, recommendations and search
	Marketplace
)

func (k Kind) String() string {
	switch k {
	case Subgraph:
		return "subgraph"
	case Marketplace:
		return "marketplace"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Pool routes each Kind to its transport
type Pool struct {
	byKind map[Kind]Transport
}

// NewPool builds a pool; a nil marketplace shares the subgraph transport
func NewPool(subgraph, marketplace Transport) *Pool {
	if marketplace == nil {
		marketplace = subgraph
	}
	return &Pool{byKind: map[Kind]Transport{
		Subgraph:    subgraph,
		Marketplace: marketplace,
	}}
}

// For returns the transport serving k, falling back to the subgraph
func (p *Pool) For(k Kind) Transport {
	if t, ok := p.byKind[k]; ok && t != nil {
		return t
	}
	return p.byKind[Subgraph]
}
