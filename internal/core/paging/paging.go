// Package paging walks skip/take pages until upstream reports no next page.
package paging

import (
	"context"
	"errors"

	"domamarket/internal/core/mapper"
)

// ErrExhausted is returned by Advance on a state that is already done
var ErrExhausted = errors.New("paging: cursor exhausted")

// Fetch loads one page for the given window
type Fetch[T any] func(ctx context.Context, w mapper.Window) (mapper.Page[T], error)

// State is an accumulating cursor; the zero value starts at skip 0
type State[T any] struct {
	Skip        int
	Items       []T
	Pages       int
	Done        bool
	LastHasNext bool
}

// Advance fetches the next page into s. On error s is left untouched.
func Advance[T any](ctx context.Context, s *State[T], pageSize int, fetch Fetch[T]) error {
	if s.Done {
		return ErrExhausted
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := fetch(ctx, mapper.Window{Skip: s.Skip, Take: pageSize})
	if err != nil {
		return err
	}
	s.Items = append(s.Items, p.Items...)
	s.Pages++
	s.Skip += pageSize
	s.LastHasNext = p.HasNextPage
	if !p.HasNextPage || len(p.Items) == 0 {
		s.Done = true
	}
	return nil
}

// Collect advances until done or until at least limit items are held; limit <= 0 means no limit.
// Items gathered before an error are returned with it.
func Collect[T any](ctx context.Context, pageSize, limit int, fetch Fetch[T]) ([]T, error) {
	var s State[T]
	for !s.Done {
		if limit > 0 && len(s.Items) >= limit {
			break
		}
		if err := Advance(ctx, &s, pageSize, fetch); err != nil {
			return s.Items, err
		}
	}
	if limit > 0 && len(s.Items) > limit {
		s.Items = s.Items[:limit]
	}
	return s.Items, nil
}
