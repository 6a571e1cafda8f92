// Package http provides the router seam, server and response writers.
// Module routes answer with an Envelope; passthrough routes answer verbatim.
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "domamarket/internal/platform/errors"
	pnet "domamarket/internal/platform/net"
)

// Envelope is the response body for enveloped routes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Details    any            `json:"details,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as an envelope; used by middleware outside Handle
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		Details:    wr.Details,
		RequestID:  pnet.RequestID(r.Context()),
	})
}

// Response is a return-style handler result
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// Raw skips the envelope: success writes Body as is, errors write {error, details}
	Raw bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		if resp.Raw {
			s, body := pnet.Fail(err)
			JSON(w, s, body)
			return
		}
		RespondError(w, r, err)
		return
	}

	if resp.Raw {
		if raw, ok := resp.Body.(json.RawMessage); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_, _ = w.Write(raw)
			return
		}
		JSON(w, status, resp.Body)
		return
	}

	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
	})
}

// OK returns a 200 envelope response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 envelope response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns an enveloped error response
func Error(err error) Response { return Response{Body: err} }

// Verbatim returns a 200 response whose body is data itself
func Verbatim(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data, Raw: true} }

// VerbatimError returns an error response shaped {error, details?}
func VerbatimError(err error) Response { return Response{Body: err, Raw: true} }
