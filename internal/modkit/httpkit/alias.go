// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "domamarket/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Verbatim returns a 200 response carrying data as is
func Verbatim(data any) Response { return phttp.Verbatim(data) }

// VerbatimError returns an error response shaped {error, details}
func VerbatimError(err error) Response { return phttp.VerbatimError(err) }

// URLParam reads a path parameter
func URLParam(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// JSON binds and validates T from the body; a returned Response passes through, anything else is enveloped
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }

// Raw is Call for routes that answer verbatim
func Raw(fn func(*http.Request) (any, error)) Handler { return phttp.RawHandlerNoBody(fn) }

// RawJSON is JSON for routes that answer verbatim
func RawJSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.RawHandler(fn) }

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
