// Package repokit binds driver-free repositories to the store seams
package repokit

import "yukbul/internal/platform/store"

type (
	// Queryer is the statement surface repos are written against
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
	// Row is a single scanned row
	Row = store.Row
)

// Binder produces a repo bound to a Queryer, usually the pool or a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics on a nil q
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind to nil queryer")
	}
	return b.Bind(q)
}
