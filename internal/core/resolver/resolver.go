// Package resolver runs a registered operation through its schema variants in order,
// stopping at the first success and aggregating every failure otherwise.
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"domamarket/internal/adapters/doma"
	"domamarket/internal/core/mapper"
	"domamarket/internal/core/registry"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
)

// Transports picks the transport for an endpoint kind; *doma.Pool satisfies it
type Transports interface {
	For(doma.Kind) doma.Transport
}

// Outcome is a resolved operation
type Outcome struct {
	Operation string
	Variant   string
	Attempts  int
	// Data is the data object to hand out: upstream's verbatim, or {field: remapped} for fallbacks
	Data json.RawMessage
	// Value is Data[field]
	Value json.RawMessage
}

// Resolver is safe for concurrent use; it holds only read-only state
type Resolver struct {
	reg  *registry.Registry
	pool Transports
	log  logger.Logger
}

// New builds a Resolver over reg and pool
func New(reg *registry.Registry, pool Transports) *Resolver {
	return &Resolver{reg: reg, pool: pool, log: *logger.Named("resolver")}
}

// Registry returns the registry in use
func (r *Resolver) Registry() *registry.Registry { return r.reg }

// Resolve tries op's variants, then its fallbacks, each exactly once and in order
func (r *Resolver) Resolve(ctx context.Context, op string, vars map[string]any) (Outcome, error) {
	o, ok := r.reg.Lookup(op)
	if !ok {
		return Outcome{}, perr.InvalidArgf("unknown operation %q", op)
	}
	chain := append(o.Variants, r.reg.Fallbacks(op)...)
	t := r.pool.For(o.Target)
	agg := &doma.AggregatedFailure{Operation: op}

	for i, v := range chain {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		vctx := logger.WithOperation(ctx, v.Name)

		in := vars
		if v.Vars != nil {
			in = v.Vars(vars)
		}
		data, err := t.Execute(vctx, doma.Request{Query: v.Document, Variables: prune(in)})
		if err == nil {
			var value json.RawMessage
			value, err = r.settle(o, v, data)
			if err == nil {
				out := Outcome{Operation: op, Variant: v.Name, Attempts: i + 1, Value: value, Data: data}
				if v.Remap != nil || v.Field != o.Field {
					out.Data, err = json.Marshal(map[string]json.RawMessage{o.Field: value})
				}
				if err == nil {
					r.log.Debug().Str("operation", op).Str("variant", v.Name).Int("attempts", i+1).Msg("resolved")
					return out, nil
				}
			}
		}
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return Outcome{}, ctx.Err()
		}
		agg.Attempts = append(agg.Attempts, doma.Attempt{Variant: v.Name, Err: err})
		logger.C(vctx).Warn().Err(err).Str("variant", v.Name).Int("attempt", i+1).Int("of", len(chain)).Msg("variant failed")
	}
	return Outcome{}, agg
}

// settle extracts, remaps and shape-checks a variant's field
func (r *Resolver) settle(o registry.Operation, v registry.Variant, data json.RawMessage) (json.RawMessage, error) {
	value, err := mapper.Extract(v.Field, data)
	if err != nil {
		return nil, err
	}
	if err := checkShape(v.Field, v.Shape, value); err != nil {
		return nil, err
	}
	if v.Remap != nil {
		if value, err = v.Remap(value); err != nil {
			return nil, err
		}
		if err := checkShape(o.Field, o.Shape, value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

func checkShape(field string, s registry.Shape, raw json.RawMessage) error {
	b := bytes.TrimSpace(raw)
	null := len(b) == 0 || bytes.Equal(b, []byte("null"))
	switch s {
	case registry.ShapeEntity:
		if null || b[0] == '{' {
			return nil
		}
	case registry.ShapePage:
		if !null && b[0] == '{' {
			return nil
		}
	case registry.ShapeList:
		if !null && b[0] == '[' {
			return nil
		}
	}
	return &doma.SchemaMismatchError{Field: field}
}

// prune drops nil values so optional arguments are omitted rather than sent as null
func prune(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if isNil(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
