package store

import (
	"context"

	"yukbul/internal/platform/store/ch"
)

// chClient is the slice of *ch.CH the adapter needs
type chClient interface {
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// chAdapter forwards everything to the client except Query, whose rows
// close without an error under the store contract
type chAdapter struct {
	chClient
}

var _ Clickhouse = chAdapter{}

func newCHAdapter(c chClient) Clickhouse { return chAdapter{chClient: c} }

func (a chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.chClient.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
