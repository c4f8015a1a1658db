// Package repo writes admission events to ClickHouse
package repo

import (
	"context"
	"time"

	perr "yukbul/internal/platform/errors"
	"yukbul/internal/platform/store"
	"yukbul/internal/services/events/domain"
)

// Table is the ClickHouse table holding one row per intake outcome
const Table = "listing_events"

// Schema creates Table when missing
const Schema = `CREATE TABLE IF NOT EXISTS listing_events (
    event_id     UUID,
    at           DateTime64(3, 'UTC'),
    reason       LowCardinality(String),
    content_hash Int32,
    cities       Array(String),
    chat_id      String,
    admitted     Bool,
    duplicate    Bool
) ENGINE = MergeTree
ORDER BY (at, reason)
TTL toDateTime(at) + INTERVAL 30 DAY`

var columns = []string{"event_id", "at", "reason", "content_hash", "cities", "chat_id", "admitted", "duplicate"}

// CH is the ClickHouse event store
type CH struct {
	db store.Clickhouse
}

// NewCH wraps the clickhouse seam
func NewCH(db store.Clickhouse) *CH {
	if db == nil {
		panic("events.NewCH: nil clickhouse")
	}
	return &CH{db: db}
}

var (
	_ domain.Writer = (*CH)(nil)
	_ domain.Reader = (*CH)(nil)
)

// EnsureSchema creates the events table
func (c *CH) EnsureSchema(ctx context.Context) error {
	return perr.FromClickHouse(c.db.Exec(ctx, Schema), "create listing_events")
}

// WriteBatch appends evs in one native batch
func (c *CH) WriteBatch(ctx context.Context, evs []domain.Event) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, len(evs))
	for i, e := range evs {
		cities := e.Cities
		if cities == nil {
			cities = []string{}
		}
		rows[i] = []any{e.ID, e.At, e.Reason, e.ContentHash, cities, e.ChatID, e.Admitted, e.Duplicate}
	}
	return perr.FromClickHouse(c.db.InsertBatch(ctx, Table, columns, rows), "insert listing_events")
}

// CountByReason groups events since the given time by reason
func (c *CH) CountByReason(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := c.db.Query(ctx, `SELECT reason, count() FROM listing_events WHERE at >= ? GROUP BY reason`, since)
	if err != nil {
		return nil, perr.FromClickHouse(err, "count by reason")
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			reason string
			n      uint64
		)
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, perr.FromClickHouse(err, "scan reason count")
		}
		out[reason] = int64(n)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromClickHouse(err, "count by reason")
	}
	return out, nil
}
