package module

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"domamarket/internal/modkit"
	phttp "domamarket/internal/platform/net/http"
	"domamarket/internal/services/api/apitest"
)

func TestInfo(t *testing.T) {
	t.Parallel()
	tr := &apitest.Transport{Reply: apitest.Data(`{"name":{"name":"example.ai","isFractionalized":false}}`)}
	h := apitest.Router(New(apitest.Deps(tr)))

	rec := apitest.Do(h, http.MethodGet, "/api/domains/Example.AI", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"name":{"name":"example.ai","isFractionalized":false}}` {
		t.Fatalf("info = %d %s", rec.Code, rec.Body)
	}
	if got := tr.Requests()[0].Variables["name"]; got != "example.ai" {
		t.Fatalf("name sent = %v", got)
	}
}

func TestInfoNotFound(t *testing.T) {
	t.Parallel()
	tr := &apitest.Transport{Reply: apitest.Data(`{"name":null}`)}
	h := apitest.Router(New(apitest.Deps(tr)))

	rec := apitest.Do(h, http.MethodGet, "/api/domains/nothing.ai", "")
	if rec.Code != http.StatusNotFound || strings.TrimSpace(rec.Body.String()) != `{"error":"name nothing.ai not found"}` {
		t.Fatalf("not found = %d %s", rec.Code, rec.Body)
	}
}

func TestActivitiesTake(t *testing.T) {
	t.Parallel()
	tr := &apitest.Transport{Reply: apitest.Data(`{"nameActivities":{"items":[],"totalCount":0}}`)}
	h := apitest.Router(New(apitest.Deps(tr)))

	cases := []struct {
		query string
		want  float64
	}{
		{"", 50},
		{"?take=10", 10},
		{"?take=1000", 200},
		{"?take=abc", 50},
	}
	for i, tc := range cases {
		rec := apitest.Do(h, http.MethodGet, "/api/domains/a.ai/activities"+tc.query, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%q = %d %s", tc.query, rec.Code, rec.Body)
		}
		if got := tr.Requests()[i].Variables["take"]; got != tc.want {
			t.Fatalf("%q: take = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestWhois(t *testing.T) {
	t.Parallel()
	h := apitest.Router(New(apitest.Deps(&apitest.Transport{})))

	for name, want := range map[string]string{"free.ai": "available", "taken.com": "taken"} {
		rec := apitest.Do(h, http.MethodGet, "/api/domains/"+name+"/whois", "")
		var env phttp.Envelope
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		data, _ := env.Data.(map[string]any)
		if rec.Code != http.StatusOK || data["status"] != want || data["domain"] != name {
			t.Fatalf("%s = %d %s", name, rec.Code, rec.Body)
		}
	}

	rec := apitest.Do(h, http.MethodGet, "/api/domains/nodot/whois", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bare label = %d", rec.Code)
	}

	off := apitest.Router(New(modkit.Deps{}))
	if rec := apitest.Do(off, http.MethodGet, "/api/domains/a.ai/whois", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("no checker = %d", rec.Code)
	}
}
