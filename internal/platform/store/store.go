// Package store bundles the optional persistence backends: Postgres for the
// listing mirror and ClickHouse for admission events. Both may be absent;
// the engine keeps working from memory alone.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"yukbul/internal/platform/logger"
)

// Store is the facade for optional backends.
// The zero value is safe and has no backends.
type Store struct {
	Log logger.Logger

	// PG is the postgres seam, nil when disabled
	PG TxRunner

	// CH is the clickhouse seam, nil when disabled
	CH Clickhouse

	migrations []fs.FS
}

// Row is the minimal scan contract for a single row
type Row interface {
	Scan(dest ...any) error
}

// Rows is the minimal iteration contract for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactions to RowQuerier
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam: batched appends and reads
type Clickhouse interface {
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the backends cfg enables and applies
// registered migrations to Postgres
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = p
	}

	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = c
	}

	return s, nil
}

type backend struct {
	name  string
	ping  func(context.Context) error
	close func() error
}

// backends lists the configured seams, ClickHouse first so it closes before
// the pool the mirror writes through
func (s *Store) backends() []backend {
	var out []backend
	if s.CH != nil {
		out = append(out, backend{"ch", s.CH.Ping, s.CH.Close})
	}
	if s.PG != nil {
		b := backend{name: "pg"}
		if p, ok := s.PG.(Pinger); ok {
			b.ping = p.Ping
		}
		if c, ok := s.PG.(interface{ Close() error }); ok {
			b.close = c.Close
		}
		out = append(out, b)
	}
	return out
}

// Ping checks every configured backend and joins the failures
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, b := range s.backends() {
		if b.ping == nil {
			continue
		}
		if err := b.ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every configured backend. A nil Store closes nothing.
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, b := range s.backends() {
		if b.close == nil {
			continue
		}
		if err := b.close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}
