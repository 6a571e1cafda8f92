// Package swaggerkit builds the OpenAPI document modules describe themselves with and mounts the UI
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"
)

// Param is a path or query parameter
type Param struct {
	Name     string
	In       string // path or query
	Required bool
	Type     string // string or integer; default string
}

// Op documents one route
type Op struct {
	Method   string
	Path     string // full path including /api and the module prefix
	Tag      string
	Summary  string
	Params   []Param
	Body     bool // takes a JSON body
	Verbatim bool // answers with the raw upstream data instead of an envelope
}

// Doc accumulates operations; safe for concurrent Add
type Doc struct {
	title   string
	version string

	mu  sync.Mutex
	ops []Op
}

// New returns an empty document
func New(title, version string) *Doc {
	return &Doc{title: title, version: version}
}

// Add appends ops
func (d *Doc) Add(ops ...Op) {
	d.mu.Lock()
	d.ops = append(d.ops, ops...)
	d.mu.Unlock()
}

// Ops returns a copy of the registered ops
func (d *Doc) Ops() []Op {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.ops)
}

// JSON renders an OpenAPI 3.0.3 document
func (d *Doc) JSON() ([]byte, error) {
	paths := map[string]map[string]any{}
	for _, op := range d.Ops() {
		p := paths[op.Path]
		if p == nil {
			p = map[string]any{}
			paths[op.Path] = p
		}
		p[strings.ToLower(op.Method)] = operation(op)
	}
	return json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]string{"title": d.title, "version": d.version},
		"paths":   paths,
	})
}

func operation(op Op) map[string]any {
	out := map[string]any{
		"summary":   op.Summary,
		"responses": responses(op.Verbatim),
	}
	if op.Tag != "" {
		out["tags"] = []string{op.Tag}
	}
	if len(op.Params) > 0 {
		ps := make([]map[string]any, 0, len(op.Params))
		for _, p := range op.Params {
			typ := p.Type
			if typ == "" {
				typ = "string"
			}
			ps = append(ps, map[string]any{
				"name":     p.Name,
				"in":       p.In,
				"required": p.Required || p.In == "path",
				"schema":   map[string]string{"type": typ},
			})
		}
		out["parameters"] = ps
	}
	if op.Body {
		out["requestBody"] = map[string]any{
			"required": true,
			"content":  map[string]any{"application/json": map[string]any{"schema": map[string]string{"type": "object"}}},
		}
	}
	return out
}

func responses(verbatim bool) map[string]any {
	ok := "envelope with data"
	fail := "envelope with code and error"
	if verbatim {
		ok = "upstream data object"
		fail = "{error, details}"
	}
	return map[string]any{
		"200":     map[string]string{"description": ok},
		"default": map[string]string{"description": fail},
	}
}

// Handler serves the rendered document
func (d *Doc) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		b, err := d.JSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(b)
	}
}
