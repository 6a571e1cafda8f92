package http

import (
	"net/http"

	"domamarket/internal/platform/net/http/bind"
)

// JSONHandler binds T from the body and envelopes the result.
// A returned Response is written as is.
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return envelope(fn(r, in))
	})
}

// JSONHandlerNoBody envelopes the result of fn without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return envelope(fn(r)) })
}

// RawHandler binds T from the body and writes the result verbatim
func RawHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return VerbatimError(err)
		}
		return verbatim(fn(r, in))
	})
}

// RawHandlerNoBody writes the result of fn verbatim
func RawHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return verbatim(fn(r)) })
}

func envelope(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

func verbatim(out any, err error) Response {
	if err != nil {
		return VerbatimError(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return Verbatim(out)
}
