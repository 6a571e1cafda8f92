package mapper

import "encoding/json"

// Currency is the token an amount is quoted in
type Currency struct {
	Symbol   string     `json:"symbol"`
	Decimals Field[int] `json:"decimals"`
}

// Token is one on-chain representation of a name
type Token struct {
	TokenID      string        `json:"tokenId"`
	NetworkID    string        `json:"networkId"`
	OwnerAddress string        `json:"ownerAddress"`
	Type         Field[string] `json:"type"`
	StartsAt     Field[string] `json:"startsAt"`
	ExpiresAt    Field[string] `json:"expiresAt"`
}

// Registrar is the accredited registrar of a name
type Registrar struct {
	Name   string     `json:"name"`
	IanaID Field[int] `json:"ianaId"`
}

// Name is a names item or the name detail entity
type Name struct {
	Name        string        `json:"name" validate:"required"`
	ExpiresAt   Field[string] `json:"expiresAt"`
	TokenizedAt Field[string] `json:"tokenizedAt"`
	Registrar   *Registrar    `json:"registrar,omitempty"`
	Tokens      []Token       `json:"tokens"`
}

// DSKey is a DNSSEC delegation signer record
type DSKey struct {
	Algorithm  json.RawMessage `json:"algorithm"`
	Digest     string          `json:"digest"`
	DigestType json.RawMessage `json:"digestType"`
	KeyTag     json.RawMessage `json:"keyTag"`
}

// NameDetail is the extended name entity with fractional token info
type NameDetail struct {
	Name                string          `json:"name" validate:"required"`
	ClaimedBy           Field[string]   `json:"claimedBy"`
	EOI                 Field[bool]     `json:"eoi"`
	ExpiresAt           Field[string]   `json:"expiresAt"`
	TokenizedAt         Field[string]   `json:"tokenizedAt"`
	IsFractionalized    Field[bool]     `json:"isFractionalized"`
	DSKeys              []DSKey         `json:"dsKeys"`
	FractionalTokenInfo json.RawMessage `json:"fractionalTokenInfo,omitempty"`
}

// Listing is a fixed-price order for a name
type Listing struct {
	ID        string        `json:"id" validate:"required"`
	Price     Price         `json:"price"`
	Currency  Currency      `json:"currency"`
	Name      string        `json:"name"`
	TokenID   Field[string] `json:"tokenId"`
	CreatedAt Field[string] `json:"createdAt"`
	ExpiresAt Field[string] `json:"expiresAt"`
}

// Offer is a bid on a token
type Offer struct {
	ID        string        `json:"id" validate:"required"`
	Price     Price         `json:"price"`
	Status    Field[string] `json:"status"`
	Currency  Currency      `json:"currency"`
	Offerer   Field[string] `json:"offererAddress"`
	Maker     Field[string] `json:"maker"`
	CreatedAt Field[string] `json:"createdAt"`
	ExpiresAt Field[string] `json:"expiresAt"`
}

// From returns whoever placed the offer, whichever schema named it
func (o Offer) From() string {
	if v, ok := o.Offerer.Get(); ok {
		return v
	}
	return o.Maker.Or("")
}

// Activity is a name event; the subgraph uses createdAt, the feed uses timestamp
type Activity struct {
	Type            string        `json:"type" validate:"required"`
	CreatedAt       Field[string] `json:"createdAt"`
	Timestamp       Field[string] `json:"timestamp"`
	TransactionHash Field[string] `json:"transactionHash"`
	Value           Field[string] `json:"value"`
}

// When returns whichever timestamp upstream sent
func (a Activity) When() string {
	if v, ok := a.Timestamp.Get(); ok {
		return v
	}
	return a.CreatedAt.Or("")
}

// CandidateListing is the listing summary on a search item
type CandidateListing struct {
	FixedPrice        Price         `json:"fixedPrice"`
	MinimumOfferPrice Price         `json:"minimumOfferPrice"`
	Status            Field[string] `json:"status"`
}

// Candidate is a search or recommend item
type Candidate struct {
	SLD               string            `json:"sld" validate:"required"`
	TLD               string            `json:"tld" validate:"required"`
	Available         bool              `json:"available"`
	AvailableAssumed  bool              `json:"availableAssumed,omitempty"` // upstream omitted available
	Premium           Field[bool]       `json:"premium"`
	Listing           *CandidateListing `json:"listing"`
	Pricing           json.RawMessage   `json:"pricing,omitempty"`
	Chain             json.RawMessage   `json:"chain,omitempty"`
	EOI               Field[bool]       `json:"eoi"`
	Tokenized         Field[bool]       `json:"tokenized"`
	SaleType          Field[string]     `json:"saleType"`
	OwnerName         Field[string]     `json:"ownerName"`
	UnavailableReason Field[string]     `json:"unavailableReason"`
	TokenizationState Field[string]     `json:"tokenizationStatus"`
	FavoriteCount     Field[int]        `json:"favoriteCount"`
}

// Domain returns sld.tld
func (c Candidate) Domain() string { return c.SLD + "." + c.TLD }

// UnmarshalJSON defaults an absent or null available to true and flags it
func (c *Candidate) UnmarshalJSON(b []byte) error {
	type plain Candidate
	aux := struct {
		*plain
		Available *bool `json:"available"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Available == nil {
		c.Available, c.AvailableAssumed = true, true
	} else {
		c.Available, c.AvailableAssumed = *aux.Available, false
	}
	return nil
}

// AvailabilityAssumed reports whether Available was defaulted
func (c Candidate) AvailabilityAssumed() bool { return c.AvailableAssumed }

// Metric is one TLD row of marketplace metrics
type Metric struct {
	TLD       string             `json:"tld" validate:"required"`
	Sales24h  Field[json.Number] `json:"sales24h"`
	Volume24h Field[json.Number] `json:"volume24h"`
	Sales7d   Field[json.Number] `json:"sales7d"`
	Volume7d  Field[json.Number] `json:"volume7d"`
	Sales30d  Field[json.Number] `json:"sales30d"`
	Volume30d Field[json.Number] `json:"volume30d"`
	Listed    Field[json.Number] `json:"listed"`
	Minted    Field[json.Number] `json:"minted"`
	Sales     Field[json.Number] `json:"sales"`
	Volume    Field[json.Number] `json:"volume"`
}
