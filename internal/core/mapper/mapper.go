// Package mapper narrows raw GraphQL data into typed pages, lists and entities.
// Nothing past this package touches unvalidated upstream JSON.
package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"domamarket/internal/adapters/doma"
	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
	"domamarket/internal/platform/validate"
)

// Window is the skip/take a page was requested with
type Window struct {
	Skip int `json:"skip"`
	Take int `json:"take"`
}

// Page is the canonical pagination envelope
type Page[T any] struct {
	Items       []T        `json:"items"`
	TotalCount  Field[int] `json:"totalCount"`
	CurrentPage Field[int] `json:"currentPage"`
	TotalPages  Field[int] `json:"totalPages"`
	HasNextPage bool       `json:"hasNextPage"`
}

type wirePage[T any] struct {
	Items       []T        `json:"items"`
	TotalCount  Field[int] `json:"totalCount"`
	CurrentPage Field[int] `json:"currentPage"`
	TotalPages  Field[int] `json:"totalPages"`
	HasNextPage *bool      `json:"hasNextPage"`
}

// Extract returns data[field]; an absent field is a SchemaMismatchError.
// A present null is returned as null.
func Extract(field string, data json.RawMessage) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, &doma.SchemaMismatchError{Field: field}
	}
	v, ok := obj[field]
	if !ok {
		return nil, &doma.SchemaMismatchError{Field: field}
	}
	return v, nil
}

// IsNull reports whether raw is JSON null or empty
func IsNull(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// DecodePage decodes a page requested with w and enforces the hasNextPage invariant:
// it is false once fewer than w.Take items came back, or once skip+len reaches a known totalCount.
func DecodePage[T any](field string, raw json.RawMessage, w Window) (Page[T], error) {
	if IsNull(raw) {
		return Page[T]{}, &doma.SchemaMismatchError{Field: field}
	}
	var wp wirePage[T]
	if err := json.Unmarshal(raw, &wp); err != nil {
		return Page[T]{}, shapeErr(field, err)
	}
	if err := check(field, wp.Items); err != nil {
		return Page[T]{}, err
	}
	warnAssumed(field, wp.Items)

	p := Page[T]{
		Items:       wp.Items,
		TotalCount:  wp.TotalCount,
		CurrentPage: wp.CurrentPage,
		TotalPages:  wp.TotalPages,
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	n := len(p.Items)
	total, totalKnown := p.TotalCount.Get()

	switch {
	case wp.HasNextPage != nil:
		p.HasNextPage = *wp.HasNextPage
	case totalKnown:
		p.HasNextPage = w.Skip+n < total
	default:
		p.HasNextPage = w.Take > 0 && n >= w.Take
	}
	if w.Take > 0 && n < w.Take {
		p.HasNextPage = false
	}
	if totalKnown && w.Skip+n >= total {
		p.HasNextPage = false
	}
	return p, nil
}

// DecodeList decodes a bare array
func DecodeList[T any](field string, raw json.RawMessage) ([]T, error) {
	if IsNull(raw) {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, shapeErr(field, err)
	}
	if err := check(field, out); err != nil {
		return nil, err
	}
	warnAssumed(field, out)
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DecodeEntity decodes a single object; found is false when upstream sent null
func DecodeEntity[T any](field string, raw json.RawMessage) (v T, found bool, err error) {
	if IsNull(raw) {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, shapeErr(field, err)
	}
	if err := checkOne(field, v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

func shapeErr(field string, err error) error {
	return perr.Wrap(&doma.SchemaMismatchError{Field: field}, perr.ErrorCodeUpstream, err.Error())
}

func check[T any](field string, items []T) error {
	for i := range items {
		if err := checkOne(fmt.Sprintf("%s.items[%d]", field, i), items[i]); err != nil {
			return err
		}
	}
	return nil
}

// checkOne runs struct validation on struct items; other kinds pass
func checkOne[T any](at string, v T) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(v); err != nil {
		return perr.Wrap(&doma.SchemaMismatchError{Field: at}, perr.ErrorCodeUpstream, err.Error())
	}
	return nil
}

type assumer interface{ AvailabilityAssumed() bool }

type domainer interface{ Domain() string }

func warnAssumed[T any](field string, items []T) {
	log := logger.Named("mapper")
	for _, it := range items {
		a, ok := any(it).(assumer)
		if !ok || !a.AvailabilityAssumed() {
			continue
		}
		ev := log.Warn().Str("field", field)
		if d, ok := any(it).(domainer); ok {
			ev = ev.Str("domain", d.Domain())
		}
		ev.Msg("available missing upstream; assumed true")
	}
}
