package mapper

import (
	"encoding/json"
	"errors"
	"testing"

	"domamarket/internal/adapters/doma"
)

func TestExtract(t *testing.T) {
	t.Parallel()
	data := json.RawMessage(`{"names":{"items":[]},"name":null}`)

	v, err := Extract("names", data)
	if err != nil || string(v) != `{"items":[]}` {
		t.Fatalf("Extract names = %s %v", v, err)
	}
	v, err = Extract("name", data)
	if err != nil || !IsNull(v) {
		t.Fatalf("present null should pass through, got %s %v", v, err)
	}

	var sm *doma.SchemaMismatchError
	if _, err := Extract("searchDomains", data); !errors.As(err, &sm) || sm.Field != "searchDomains" {
		t.Fatalf("want SchemaMismatchError, got %v", err)
	}
	if _, err := Extract("x", json.RawMessage(`[1]`)); !errors.As(err, &sm) {
		t.Fatalf("non-object data should mismatch, got %v", err)
	}
}

func TestField_UnknownSentinel(t *testing.T) {
	t.Parallel()
	var n Name
	if err := json.Unmarshal([]byte(`{"name":"example.com","tokenizedAt":null}`), &n); err != nil {
		t.Fatal(err)
	}
	if _, ok := n.ExpiresAt.Get(); ok {
		t.Fatal("absent expiresAt should be unknown")
	}
	if _, ok := n.TokenizedAt.Get(); ok {
		t.Fatal("null tokenizedAt should be unknown")
	}
	out, _ := json.Marshal(n)
	var m map[string]any
	_ = json.Unmarshal(out, &m)
	if m["expiresAt"] != Unknown || m["tokenizedAt"] != Unknown {
		t.Fatalf("marshal = %s", out)
	}

	k, _ := json.Marshal(Known(false))
	if string(k) != "false" {
		t.Fatalf("known false must stay false, got %s", k)
	}
	if Known(3).Or(7) != 3 || (Field[int]{}).Or(7) != 7 {
		t.Fatal("Or mismatch")
	}
}

func TestPrice_KeepsDigits(t *testing.T) {
	t.Parallel()
	var l Listing
	if err := json.Unmarshal([]byte(`{"id":"1","price":"1000000000000000000000001"}`), &l); err != nil {
		t.Fatal(err)
	}
	if l.Price != "1000000000000000000000001" {
		t.Fatalf("string price = %q", l.Price)
	}
	if err := json.Unmarshal([]byte(`{"id":"1","price":0.000000000000000001}`), &l); err != nil {
		t.Fatal(err)
	}
	if l.Price != "0.000000000000000001" {
		t.Fatalf("numeric price = %q", l.Price)
	}
	if err := json.Unmarshal([]byte(`{"id":"1","price":null}`), &l); err != nil || l.Price != "" {
		t.Fatalf("null price = %q %v", l.Price, err)
	}
}

func TestCandidate_AvailableDefault(t *testing.T) {
	t.Parallel()
	list, err := DecodeList[Candidate]("recommendDomains", json.RawMessage(
		`[{"sld":"a","tld":"ai","available":false},{"sld":"b","tld":"com"},{"sld":"c","tld":"io","available":null}]`))
	if err != nil {
		t.Fatal(err)
	}
	if list[0].Available || list[0].AvailableAssumed {
		t.Fatalf("explicit false: %+v", list[0])
	}
	for _, c := range list[1:] {
		if !c.Available || !c.AvailableAssumed {
			t.Fatalf("%s should be assumed available: %+v", c.Domain(), c)
		}
	}
	if _, ok := list[0].Premium.Get(); ok {
		t.Fatal("premium should be unknown")
	}
}

func TestDecodePage_HasNextInvariant(t *testing.T) {
	t.Parallel()
	items := func(n int) string {
		s := "["
		for i := 0; i < n; i++ {
			if i > 0 {
				s += ","
			}
			s += `{"name":"n.com"}`
		}
		return s + "]"
	}
	cases := []struct {
		name string
		raw  string
		w    Window
		want bool
	}{
		{"upstream true kept", `{"items":` + items(12) + `,"hasNextPage":true,"totalCount":30}`, Window{0, 12}, true},
		{"short page forces false", `{"items":` + items(6) + `,"hasNextPage":true}`, Window{24, 12}, false},
		{"total reached forces false", `{"items":` + items(12) + `,"hasNextPage":true,"totalCount":24}`, Window{12, 12}, false},
		{"inferred from total", `{"items":` + items(12) + `,"totalCount":30}`, Window{0, 12}, true},
		{"inferred full page", `{"items":` + items(12) + `}`, Window{0, 12}, true},
		{"empty page", `{"items":[],"hasNextPage":true}`, Window{0, 12}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := DecodePage[Name]("names", json.RawMessage(tc.raw), tc.w)
			if err != nil {
				t.Fatal(err)
			}
			if p.HasNextPage != tc.want {
				t.Fatalf("hasNextPage = %v, want %v", p.HasNextPage, tc.want)
			}
		})
	}
}

func TestDecodePage_Errors(t *testing.T) {
	t.Parallel()
	var sm *doma.SchemaMismatchError
	if _, err := DecodePage[Listing]("listings", json.RawMessage(`null`), Window{}); !errors.As(err, &sm) {
		t.Fatalf("null page: %v", err)
	}
	if _, err := DecodePage[Listing]("listings", json.RawMessage(`{"items":{}}`), Window{}); !errors.As(err, &sm) {
		t.Fatalf("object items: %v", err)
	}
	_, err := DecodePage[Listing]("listings", json.RawMessage(`{"items":[{"id":"1"},{"price":"2"}]}`), Window{})
	if !errors.As(err, &sm) || sm.Field != "listings.items[1]" {
		t.Fatalf("missing id should fail validation at items[1], got %v", err)
	}

	p, err := DecodePage[Listing]("listings", json.RawMessage(`{"totalCount":0}`), Window{Take: 10})
	if err != nil || p.Items == nil || len(p.Items) != 0 {
		t.Fatalf("absent items should decode empty: %+v %v", p, err)
	}
}

func TestDecodeEntity(t *testing.T) {
	t.Parallel()
	d, found, err := DecodeEntity[NameDetail]("name", json.RawMessage(`{"name":"example.ai","isFractionalized":false,"dsKeys":[{"keyTag":2371,"algorithm":13}]}`))
	if err != nil || !found || d.Name != "example.ai" {
		t.Fatalf("DecodeEntity = %+v %v %v", d, found, err)
	}
	if v, ok := d.IsFractionalized.Get(); !ok || v {
		t.Fatal("isFractionalized should be known false")
	}
	if string(d.DSKeys[0].KeyTag) != "2371" {
		t.Fatalf("keyTag = %s", d.DSKeys[0].KeyTag)
	}

	_, found, err = DecodeEntity[NameDetail]("name", json.RawMessage(`null`))
	if err != nil || found {
		t.Fatalf("null entity: found=%v err=%v", found, err)
	}
	if _, _, err := DecodeEntity[NameDetail]("name", json.RawMessage(`{"eoi":true}`)); err == nil {
		t.Fatal("entity without name should fail validation")
	}
}

func TestActivityAndOfferAccessors(t *testing.T) {
	t.Parallel()
	acts, err := DecodeList[Activity]("items", json.RawMessage(`[{"type":"MINT","timestamp":"t1"},{"type":"LIST","createdAt":"t2"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if acts[0].When() != "t1" || acts[1].When() != "t2" {
		t.Fatalf("When = %q %q", acts[0].When(), acts[1].When())
	}

	offers, err := DecodeList[Offer]("items", json.RawMessage(`[{"id":"o1","maker":"0xabc","price":5},{"id":"o2","offererAddress":"0xdef"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if offers[0].From() != "0xabc" || offers[1].From() != "0xdef" || offers[0].Price != "5" {
		t.Fatalf("offers = %+v", offers)
	}
}
