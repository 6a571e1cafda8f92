package registry

import (
	"encoding/json"

	"domamarket/internal/adapters/doma"
)

// candidateKeys is the canonical field set of a search or recommend item
var candidateKeys = []string{
	"available", "premium", "listing", "pricing", "chain", "sld", "tld", "eoi", "tokenized",
	"favoriteCount", "secondarySaleAvailable", "secondarySaleUnavailableReason", "unavailableReason",
	"saleType", "ownerName", "nearAccountEscrowed", "nearAccountAvailable", "reservationExpiresAt",
	"registrant", "tokenizationStatus",
}

// project keeps only canonical keys; absent keys stay absent so the mapper reports them unknown
func project(item map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(candidateKeys))
	for _, k := range candidateKeys {
		if v, ok := item[k]; ok {
			out[k] = v
		}
	}
	return out
}

func decodePage(raw json.RawMessage, field string) (map[string]json.RawMessage, []map[string]json.RawMessage, error) {
	var page map[string]json.RawMessage
	if err := json.Unmarshal(raw, &page); err != nil || page == nil {
		return nil, nil, &doma.SchemaMismatchError{Field: field}
	}
	var items []map[string]json.RawMessage
	if rawItems, ok := page["items"]; ok {
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return nil, nil, &doma.SchemaMismatchError{Field: field + ".items"}
		}
	}
	for i := range items {
		items[i] = project(items[i])
	}
	return page, items, nil
}

// pageToCandidateList turns a search page into the recommend list shape
func pageToCandidateList(raw json.RawMessage) (json.RawMessage, error) {
	_, items, err := decodePage(raw, OpSearchDomains)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []map[string]json.RawMessage{}
	}
	return json.Marshal(items)
}

// pageCandidates keeps the page envelope and projects its items
func pageCandidates(raw json.RawMessage) (json.RawMessage, error) {
	page, items, err := decodePage(raw, OpSearchNames)
	if err != nil {
		return nil, err
	}
	if items != nil {
		b, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		page["items"] = b
	}
	return json.Marshal(page)
}
