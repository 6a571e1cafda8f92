// Package whois probes registration status through public WHOIS servers.
package whois

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/likexian/whois"

	"domamarket/internal/platform/logger"
)

// Status is a probe verdict
type Status string

// Verdicts
const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusUnknown   Status = "unknown"
)

// Result is one probed domain
type Result struct {
	Domain    string    `json:"domain"`
	Status    Status    `json:"status"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// Lookup returns raw WHOIS text for a domain
type Lookup func(domain string) (string, error)

// Checker classifies WHOIS answers; safe for concurrent use
type Checker struct {
	lookup      Lookup
	timeout     time.Duration
	concurrency int
	now         func() time.Time
}

// New builds a Checker over the likexian client; timeout bounds each lookup
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := whois.NewClient().SetTimeout(timeout)
	return NewWithLookup(func(domain string) (string, error) { return client.Whois(domain) }, timeout)
}

// NewWithLookup builds a Checker over an arbitrary lookup
func NewWithLookup(fn Lookup, timeout time.Duration) *Checker {
	return &Checker{lookup: fn, timeout: timeout, concurrency: 5, now: time.Now}
}

// checked before availablePatterns
var takenPatterns = []string{
	"registrar:",
	"registrant:",
	"creation date:",
	"created:",
	"registry expiry date:",
	"expiration date:",
	"name server:",
	"nameserver:",
	"nserver:",
	"dnssec:",
	"registrar iana id:",
	"domain status:",
	"admin contact:",
	"tech contact:",
	"billing contact:",
	"this name is reserved",
}

var availablePatterns = []string{
	"no match for",
	"not found",
	"no entries found",
	"no data found",
	"status: free",
	"status: available",
	"no object found",
	"object does not exist",
	"nothing found",
	"no information available",
	"is available for registration",
	"is free",
	"domain is available",
	"no such domain",
	"domain name has not been registered",
	"no matching record",
}

// Classify maps raw WHOIS text to a verdict
func Classify(text string) Status {
	s := strings.ToLower(text)
	for _, p := range takenPatterns {
		if strings.Contains(s, p) {
			return StatusTaken
		}
	}
	if (strings.Contains(s, "premium") || strings.Contains(s, "platinum")) &&
		(strings.Contains(s, "purchase") || strings.Contains(s, "contact") ||
			strings.Contains(s, "offer") || strings.Contains(s, "reserved")) {
		return StatusTaken
	}
	for _, p := range availablePatterns {
		if strings.Contains(s, p) {
			return StatusAvailable
		}
	}
	return StatusUnknown
}

// Check probes one domain. A failed or abandoned lookup reports unknown, never taken.
func (c *Checker) Check(ctx context.Context, domain string) Result {
	res := Result{Domain: domain, Status: StatusUnknown, CheckedAt: c.now().UTC()}

	type answer struct {
		text string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		text, err := c.lookup(domain)
		ch <- answer{text, err}
	}()

	var wait <-chan time.Time
	if c.timeout > 0 {
		t := time.NewTimer(c.timeout)
		defer t.Stop()
		wait = t.C
	}

	select {
	case a := <-ch:
		if a.err != nil {
			res.Error = a.err.Error()
			logger.C(ctx).Debug().Err(a.err).Str("domain", domain).Msg("whois lookup failed")
			return res
		}
		res.Status = Classify(a.text)
	case <-ctx.Done():
		res.Error = ctx.Err().Error()
	case <-wait:
		res.Error = "whois lookup timed out"
	}
	return res
}

// CheckMany probes domains with bounded concurrency; results keep input order
func (c *Checker) CheckMany(ctx context.Context, domains []string) []Result {
	out := make([]Result, len(domains))
	sem := make(chan struct{}, max(1, c.concurrency))
	var wg sync.WaitGroup
	for i, d := range domains {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			out[i] = c.Check(ctx, d)
		}()
	}
	wg.Wait()
	return out
}
