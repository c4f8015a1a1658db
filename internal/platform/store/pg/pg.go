// Package pg owns the pgx pool behind the listing mirror: pool settings, a
// zerolog statement tracer hooked into pgx and goose migrations
package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"yukbul/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Config describes the pool
type Config struct {
	URL      string
	MaxConns int32
	AppName  string // sent as application_name when set

	// Trace logs every statement through Log; those at or over Slow at warn
	Trace bool
	Slow  time.Duration
	Log   logger.Logger
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL, applies the pool settings and connects lazily; callers
// ping before use
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Trace {
		pc.ConnConfig.Tracer = NewTracer(cfg.Log, cfg.Slow)
	}
	return newPool(ctx, pc)
}

// Migrate applies every pending goose migration at the root of fsys
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) ([]*goose.MigrationResult, error) {
	if pool == nil {
		return nil, errors.New("pg: migrate without a pool")
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("pg: goose provider: %w", err)
	}
	res, err := p.Up(ctx)
	if err != nil {
		return res, fmt.Errorf("pg: migrate up: %w", err)
	}
	return res, nil
}
