package http

import "net/http"

// GetJSON mounts an enveloped GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// DeleteJSON mounts an enveloped DELETE
func DeleteJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, JSONHandlerNoBody(h))
}

// PostJSON mounts an enveloped POST with a bound body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// GetRaw mounts a verbatim GET
func GetRaw(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, RawHandlerNoBody(h))
}

// PostRaw mounts a verbatim POST with a bound body
func PostRaw[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, RawHandler(h))
}
