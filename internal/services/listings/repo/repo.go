// Package repo is the Postgres mirror of the listing store
package repo

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"yukbul/internal/modkit/repokit"
	perr "yukbul/internal/platform/errors"
	"yukbul/internal/platform/store"
	ptime "yukbul/internal/platform/time"
	"yukbul/internal/services/listings/domain"

	sq "github.com/Masterminds/squirrel"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migration tree for the listings table
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const table = "listings"

var columns = []string{"id", "content_hash", "text", "cities", "line_pairs", "chat_name", "chat_id", "sender", "ts"}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the mirror contract, identical to domain.Mirror
type Storage = domain.Mirror

// Insert writes l unless its content hash or id is already stored
func (s *pg) Insert(ctx context.Context, l domain.Listing) (bool, error) {
	cities, err := json.Marshal(nonNil(l.Cities))
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeJSON, "encode cities")
	}
	pairs := l.LinePairs
	if pairs == nil {
		pairs = [][]string{}
	}
	linePairs, err := json.Marshal(pairs)
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeJSON, "encode line pairs")
	}

	b := store.Sq().Insert(table).
		Columns(columns...).
		Values(l.ID, l.Hash, l.Text, cities, linePairs, l.ChatName, l.ChatID, l.Sender, ptime.FromMillis(l.Timestamp)).
		Suffix("ON CONFLICT DO NOTHING")

	tag, err := store.ExecSq(ctx, s.q, b)
	if err != nil {
		return false, perr.FromPostgres(err, "insert listing")
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteOlderThan removes rows whose listing time is before cutoff
func (s *pg) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := store.ExecSq(ctx, s.q, store.Sq().Delete(table).Where(sq.Lt{"ts": cutoff}))
	if err != nil {
		return 0, perr.FromPostgres(err, "delete expired listings")
	}
	return tag.RowsAffected(), nil
}

// Recent returns rows at or after since, oldest first so replay keeps the
// first writer of every hash
func (s *pg) Recent(ctx context.Context, since time.Time, limit int) ([]domain.Listing, error) {
	b := store.Sq().Select(columns...).
		From(table).
		Where(sq.GtOrEq{"ts": since}).
		OrderBy("ts ASC", "created_at ASC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	out, err := store.ManySq(ctx, s.q, scanListing, b)
	if err != nil {
		return nil, perr.FromPostgres(err, "load recent listings")
	}
	return out, nil
}

func scanListing(r repokit.Row) (domain.Listing, error) {
	var (
		l             domain.Listing
		cities, pairs []byte
		ts            time.Time
	)
	if err := r.Scan(&l.ID, &l.Hash, &l.Text, &cities, &pairs, &l.ChatName, &l.ChatID, &l.Sender, &ts); err != nil {
		return domain.Listing{}, err
	}
	if err := json.Unmarshal(cities, &l.Cities); err != nil {
		return domain.Listing{}, fmt.Errorf("decode cities of %s: %w", l.ID, err)
	}
	if err := json.Unmarshal(pairs, &l.LinePairs); err != nil {
		return domain.Listing{}, fmt.Errorf("decode line pairs of %s: %w", l.ID, err)
	}
	l.Timestamp = ptime.Millis(ts)
	return l, nil
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
