package httpkit

import (
	"net/http"

	phttp "domamarket/internal/platform/net/http"
)

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.GetJSON(r, path, h) }

// Post registers a no-body handler and uses the envelope adapter
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// Delete registers a no-body handler and uses the envelope adapter
func Delete(r Router, path string, h func(*http.Request) (any, error)) { phttp.DeleteJSON(r, path, h) }

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// GetRaw mounts a verbatim no-body handler under GET
func GetRaw(r Router, path string, h func(*http.Request) (any, error)) { phttp.GetRaw(r, path, h) }

// PostRaw mounts a verbatim JSON handler under POST
func PostRaw[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostRaw(r, path, h)
}
