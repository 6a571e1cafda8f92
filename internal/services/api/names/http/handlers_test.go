package http

import (
	"net/http/httptest"
	"slices"
	"testing"

	perr "domamarket/internal/platform/errors"
)

func TestFilter(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET", "/?name=Alice&tlds=AI,com,ai&take=5&skip=10&sortOrder=desc"+
		"&ownedBy=0xabc&networkIds=eip155:1,eip155:97&registrarIanaIds=1,2&claimStatus=claimed", nil)
	f, err := Filter(r)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "alice" || !slices.Equal(f.TLDs, []string{"ai", "com"}) || f.Take != 5 || f.Skip != 10 {
		t.Fatalf("filter = %+v", f)
	}
	if f.SortOrder != "DESC" || f.ClaimStatus != "CLAIMED" || len(f.NetworkIDs) != 2 || !slices.Equal(f.RegistrarIanaIDs, []int{1, 2}) {
		t.Fatalf("filter = %+v", f)
	}

	f, err = Filter(httptest.NewRequest("GET", "/", nil))
	if err != nil || f.Take != DefaultTake || f.Skip != 0 {
		t.Fatalf("defaults = %+v %v", f, err)
	}
}

func TestFilterRejects(t *testing.T) {
	t.Parallel()
	for _, q := range []string{
		"?take=0",
		"?take=101",
		"?skip=-1",
		"?sortOrder=sideways",
		"?claimStatus=maybe",
		"?registrarIanaIds=1,x",
	} {
		if _, err := Filter(httptest.NewRequest("GET", "/"+q, nil)); perr.CodeOf(err) != perr.ErrorCodeValidation {
			t.Fatalf("%s: err = %v", q, err)
		}
	}
}
