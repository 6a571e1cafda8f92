// Package repokit provides the shared seams repository implementations bind to
package repokit

import (
	"domamarket/internal/platform/store"
)

type (
	// Queryer is the read and write surface repos use
	Queryer = store.RowQuerier
	// TxRunner can execute a function inside a transaction
	TxRunner = store.TxRunner
	// Rows are the result set of a query
	Rows = store.Rows
	// Row is a single row result from a query
	Row = store.Row
	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// Binder binds a domain repo to a specific Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc lets you create a Binder from a function
type BindFunc[T any] func(Queryer) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind panics early on a nil Queryer, then binds
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
