package net

import (
	"net/http"

	perr "domamarket/internal/platform/errors"
)

// Failure is the bare error body written by passthrough routes and MCP tools
type Failure struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Fail maps err to a status and a Failure body
func Fail(err error) (int, Failure) {
	if err == nil {
		return http.StatusOK, Failure{}
	}
	w := perr.WireFrom(err)
	return perr.HTTPStatus(err), Failure{Error: w.Message, Details: w.Details}
}
