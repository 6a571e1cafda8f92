package whois

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name, text string
		want       Status
	}{
		{"registered", "Domain Name: EXAMPLE.COM\nRegistrar: Some Registrar\n", StatusTaken},
		{"expiry wins over not found", "Registry Expiry Date: 2030\nnot found in cache", StatusTaken},
		{"premium reserved", "This premium name is reserved; contact sales", StatusTaken},
		{"free", "No match for \"ZZZQQQ.COM\".", StatusAvailable},
		{"free ccTLD", "Status: AVAILABLE", StatusAvailable},
		{"garbage", "rate limit exceeded", StatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.text); got != tc.want {
				t.Fatalf("Classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCheck_FailureIsUnknown(t *testing.T) {
	t.Parallel()
	c := NewWithLookup(func(string) (string, error) { return "", errors.New("connection refused") }, time.Second)
	r := c.Check(context.Background(), "example.ai")
	if r.Status != StatusUnknown || r.Error == "" || r.Domain != "example.ai" {
		t.Fatalf("result = %+v", r)
	}
}

func TestCheck_Timeout(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	defer close(block)
	c := NewWithLookup(func(string) (string, error) { <-block; return "", nil }, 20*time.Millisecond)
	r := c.Check(context.Background(), "slow.ai")
	if r.Status != StatusUnknown || r.Error != "whois lookup timed out" {
		t.Fatalf("result = %+v", r)
	}
}

func TestCheckMany_OrderAndBound(t *testing.T) {
	t.Parallel()
	var inflight, peak atomic.Int32
	c := NewWithLookup(func(d string) (string, error) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if d == "free.io" {
			return "NOT FOUND", nil
		}
		return "Registrar: x", nil
	}, time.Second)

	domains := []string{"a.com", "free.io", "b.com", "c.com", "d.com", "e.com", "f.com", "g.com"}
	got := c.CheckMany(context.Background(), domains)
	for i, r := range got {
		if r.Domain != domains[i] {
			t.Fatalf("order: %d = %s", i, r.Domain)
		}
	}
	if got[1].Status != StatusAvailable || got[0].Status != StatusTaken {
		t.Fatalf("statuses = %+v", got[:2])
	}
	if peak.Load() > 5 {
		t.Fatalf("peak concurrency %d", peak.Load())
	}
}
