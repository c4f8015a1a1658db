package store

import (
	"context"
	"fmt"
	"time"

	perr "yukbul/internal/platform/errors"
	chx "yukbul/internal/platform/store/ch"
	"yukbul/internal/platform/store/pg"
)

// backoff knobs shared by both backends
var (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
	sleep          = func(ctx context.Context, d time.Duration) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
)

// pingUntil retries ping with exponential backoff until it succeeds, ctx ends
// or attempts run out. A server that answers with a non-transient error code
// (bad password, unknown database) fails at once.
func pingUntil(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var last error
	wait := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if rejected(last) {
			return fmt.Errorf("ping rejected: %w", last)
		}
		if i == attempts-1 {
			break
		}
		sleep(ctx, wait)
		wait = min(wait*2, backoffCeiling)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, last)
}

// rejected is true for errors carrying a server code that retrying won't change
func rejected(err error) bool {
	_, pg := perr.PgCode(err)
	_, ch := perr.ChCode(err)
	return (pg || ch) && !perr.IsRetryable(err)
}

// openPG opens the pool, waits for it, runs migrations and wraps it
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  cfg.AppName,
		Trace:    cfg.PG.LogSQL,
		Slow:     cfg.PG.SlowQuery,
		Log:      s.Log,
	})
	if err != nil {
		return nil, err
	}

	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if err := pingUntil(ctx, cfg.PG.ConnectRetries, timeout, pool.Ping); err != nil {
		pool.Close()
		return nil, err
	}

	for _, fsys := range s.migrations {
		res, err := pg.Migrate(ctx, pool, fsys)
		if err != nil {
			pool.Close()
			return nil, err
		}
		for _, r := range res {
			s.Log.Info().Str("migration", r.Source.Path).Dur("took", r.Duration).Msg("pg migration applied")
		}
	}

	return newPGAdapter(pool), nil
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:      cfg.CH.URL,
		Role:     cfg.CH.Role,
		Tag:      cfg.AppName,
		MaxConns: cfg.CH.MaxConns,
		LZ4:      cfg.CH.LZ4,
	})
	if err != nil {
		return nil, err
	}
	if err := pingUntil(ctx, 5, 3*time.Second, c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCHAdapter(c), nil
}
