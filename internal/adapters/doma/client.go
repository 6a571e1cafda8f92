// Package doma is the GraphQL transport for the Doma subgraph and marketplace APIs.
// It POSTs one document, classifies the outcome and hands back the raw data object.
// It never retries; fallback across query variants belongs to the resolver.
package doma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"domamarket/internal/core/version"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
	str "domamarket/internal/platform/strings"
)

const (
	// DefaultEndpoint is the public testnet subgraph
	DefaultEndpoint = "https://api-testnet.doma.xyz/graphql"
	// DefaultAPIKeyHeader is the header the upstream reads the key from
	DefaultAPIKeyHeader = "Api-Key"
	// DefaultTimeout bounds every call
	DefaultTimeout = 15 * time.Second

	maxBody     = 8 << 20
	maxDiagBody = 4 << 10
)

// Request is one GraphQL call; variables are always sent separately from the document
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Transport executes a request and returns the envelope's data object
type Transport interface {
	Execute(ctx context.Context, req Request) (json.RawMessage, error)
}

// Options configures the Client
type Options struct {
	Endpoint     string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
	UserAgent    string

	// HTTPClient is optional; its own Timeout is ignored in favour of Timeout
	HTTPClient *http.Client
}

// Client is a stateless GraphQL transport, safe for concurrent use
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient validates o and fills defaults
func NewClient(o Options) (*Client, error) {
	o.Endpoint = strings.TrimSpace(o.Endpoint)
	if o.Endpoint == "" {
		return nil, perr.InvalidArgf("doma: endpoint is required")
	}
	u, err := url.Parse(o.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, perr.InvalidArgf("doma: endpoint %q is not an absolute URL", o.Endpoint)
	}
	o.Endpoint = u.String()
	o.APIKey = strings.TrimSpace(o.APIKey)
	if o.APIKeyHeader == "" {
		o.APIKeyHeader = DefaultAPIKeyHeader
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = version.UserAgent()
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		http: hc,
		opts: o,
		log:  *logger.Named("doma"),
		now:  time.Now,
	}, nil
}

// Endpoint returns the normalized endpoint URL
func (c *Client) Endpoint() string { return c.opts.Endpoint }

// Timeout returns the per-call limit
func (c *Client) Timeout() time.Duration { return c.opts.Timeout }

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Execute POSTs req and classifies the answer
func (c *Client) Execute(ctx context.Context, req Request) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "doma: encode request")
	}

	cctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	hreq, err := http.NewRequestWithContext(cctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "doma: new request")
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("User-Agent", c.opts.UserAgent)
	if c.opts.APIKey != "" {
		hreq.Header.Set(c.opts.APIKeyHeader, c.opts.APIKey)
	}

	start := c.now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, c.transportErr(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, c.transportErr(ctx, err)
	}

	c.log.Debug().
		Str("operation", str.FirstNonEmpty(req.OperationName, logger.Operation(ctx))).
		Str("request_id", logger.RequestID(ctx)).
		Strs("variables", varNames(req.Variables)).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("doma graphql response")

	return c.classify(resp.StatusCode, body)
}

// transportErr maps a failed round trip; the caller's own cancellation passes through
func (c *Client) transportErr(parent context.Context, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return parent.Err()
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &TimeoutError{Timeout: c.opts.Timeout, Err: err}
	}
	return perr.Wrapf(err, perr.ErrorCodeUpstream, "doma graphql: %s unreachable", c.opts.Endpoint)
}

func (c *Client) classify(status int, body []byte) (json.RawMessage, error) {
	if status == http.StatusUnauthorized {
		reason, _ := classifyAuth(string(body))
		return nil, &AuthError{Reason: reason, Header: c.opts.APIKeyHeader, Body: tail(body)}
	}
	if status < 200 || status > 299 {
		return nil, &HTTPError{Status: status, Body: tail(body)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &HTTPError{Status: status, Body: tail(body)}
	}

	if errs := bytes.TrimSpace(env.Errors); len(errs) > 0 && !bytes.Equal(errs, []byte("null")) {
		var list []GQLError
		if err := json.Unmarshal(errs, &list); err != nil {
			// some gateways send a bare string or object
			list = []GQLError{{Message: strings.Trim(string(errs), `"`)}}
		}
		if len(list) > 0 {
			for _, e := range list {
				if reason, ok := classifyAuth(e.Message); ok {
					return nil, &AuthError{Reason: reason, Header: c.opts.APIKeyHeader, Body: tail(errs)}
				}
			}
			return nil, &GraphQLError{Errors: list, Raw: json.RawMessage(errs)}
		}
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, &HTTPError{Status: status, Body: tail(body)}
	}
	return json.RawMessage(data), nil
}

func tail(b []byte) string { return str.Truncate(string(b), maxDiagBody) }

// varNames lists variable names only; values may carry addresses or keys
func varNames(v map[string]any) []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
