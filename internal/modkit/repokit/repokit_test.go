package repokit

import (
	"context"
	"testing"

	"yukbul/internal/platform/store"
	kit "yukbul/internal/platform/testkit"
)

type nopQ struct{}

func (nopQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopQ) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopQ) QueryRow(context.Context, string, ...any) store.Row             { return nil }

type repo struct{ q Queryer }

func TestMustBind(t *testing.T) {
	b := BindFunc[repo](func(q Queryer) repo { return repo{q: q} })

	var q Queryer = nopQ{}
	if got := MustBind[repo](b, q); got.q != q {
		t.Fatalf("bound queryer not passed through")
	}
	kit.MustPanic(t, func() { _ = MustBind[repo](b, nil) })
}
