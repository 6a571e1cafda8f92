package doma

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	perr "domamarket/internal/platform/errors"
)

// AuthReason says why the upstream refused the call
type AuthReason int

const (
	// Rejected is a 401 without a recognised body
	Rejected AuthReason = iota
	// MissingKey means no API key reached the upstream
	MissingKey
	// IPNotAllowed means the key is valid but this host is not allow-listed
	IPNotAllowed
)

func (r AuthReason) String() string {
	switch r {
	case MissingKey:
		return "missing_key"
	case IPNotAllowed:
		return "ip_not_allowed"
	default:
		return "rejected"
	}
}

const (
	phraseMissingKey   = "api key is missing"
	phraseIPNotAllowed = "ip address not allowed"
)

// classifyAuth returns the reason matched in text, if any
func classifyAuth(text string) (AuthReason, bool) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, phraseMissingKey):
		return MissingKey, true
	case strings.Contains(t, phraseIPNotAllowed):
		return IPNotAllowed, true
	}
	return Rejected, false
}

// AuthError is a credential problem; the message tells the operator what to change
type AuthError struct {
	Reason AuthReason
	Header string
	Body   string
}

func (e *AuthError) Error() string {
	switch e.Reason {
	case MissingKey:
		return fmt.Sprintf("doma graphql 401: API key is missing; set DOMA_API_KEY (sent as the %s header) and restart", e.Header)
	case IPNotAllowed:
		return "doma graphql 401: this host's IP address is not allowed for the API key; update the key's IP allow-list in Doma or use another key"
	default:
		return "doma graphql 401: credentials rejected; check DOMA_API_KEY"
	}
}

// Code implements perr.Coder
func (e *AuthError) Code() perr.ErrorCode { return perr.ErrorCodeUnauthorized }

// Details implements perr.Detailer
func (e *AuthError) Details() any {
	return map[string]string{"reason": e.Reason.String(), "header": e.Header}
}

// TimeoutError means the call outlived the configured limit
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("doma graphql timeout: request exceeded %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Code implements perr.Coder
func (e *TimeoutError) Code() perr.ErrorCode { return perr.ErrorCodeTimeout }

// HTTPError is a non-2xx answer, or a 2xx that is not a GraphQL envelope
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("doma graphql error: %d %s", e.Status, e.Body)
}

// Code implements perr.Coder
func (e *HTTPError) Code() perr.ErrorCode { return perr.ErrorCodeUpstream }

// Details implements perr.Detailer; JSON bodies pass through as JSON
func (e *HTTPError) Details() any {
	if json.Valid([]byte(e.Body)) {
		return json.RawMessage(e.Body)
	}
	return e.Body
}

// GQLError is one entry of the envelope's errors list
type GQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLError is a well formed envelope with a non-empty errors list
type GraphQLError struct {
	Errors []GQLError
	Raw    json.RawMessage
}

func (e *GraphQLError) Error() string {
	if len(e.Errors) == 1 {
		if m := e.Errors[0].Message; m != "" {
			return m
		}
		return "GraphQL error"
	}
	return "doma graphql errors: " + string(e.Raw)
}

// Code implements perr.Coder
func (e *GraphQLError) Code() perr.ErrorCode { return perr.ErrorCodeUpstream }

// Details implements perr.Detailer
func (e *GraphQLError) Details() any { return e.Raw }

// SchemaMismatchError means data lacks the field a variant expects
type SchemaMismatchError struct {
	Field string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: field %q absent from data", e.Field)
}

// Code implements perr.Coder
func (e *SchemaMismatchError) Code() perr.ErrorCode { return perr.ErrorCodeUpstream }

// Attempt records one failed variant
type Attempt struct {
	Variant string
	Err     error
}

// AggregatedFailure carries every failed attempt of an operation, in order
type AggregatedFailure struct {
	Operation string
	Attempts  []Attempt
}

func (e *AggregatedFailure) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Variant + ": " + a.Err.Error()
	}
	return strings.Join(parts, " | ")
}

// Unwrap exposes the underlying errors to errors.Is and errors.As
func (e *AggregatedFailure) Unwrap() []error {
	out := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		out[i] = a.Err
	}
	return out
}

// Code is Unauthorized when every attempt was refused, else the shared code, else Upstream
func (e *AggregatedFailure) Code() perr.ErrorCode {
	if len(e.Attempts) == 0 {
		return perr.ErrorCodeUpstream
	}
	first := perr.CodeOf(e.Attempts[0].Err)
	for _, a := range e.Attempts[1:] {
		if perr.CodeOf(a.Err) != first {
			return perr.ErrorCodeUpstream
		}
	}
	if first == perr.ErrorCodeUnknown {
		return perr.ErrorCodeUpstream
	}
	return first
}

// Details implements perr.Detailer
func (e *AggregatedFailure) Details() any {
	type rec struct {
		Variant string `json:"variant"`
		Error   string `json:"error"`
	}
	out := make([]rec, len(e.Attempts))
	for i, a := range e.Attempts {
		out[i] = rec{Variant: a.Variant, Error: a.Err.Error()}
	}
	return out
}
