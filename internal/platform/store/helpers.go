package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Sq is the statement builder for postgres placeholders
func Sq() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Sqlizer is anything that renders to sql plus args, squirrel builders included
type Sqlizer interface {
	ToSql() (string, []any, error)
}

func render(b Sqlizer) (string, []any, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("store: build sql: %w", err)
	}
	return sql, args, nil
}

// ExecSq renders b and runs it as a write
func ExecSq(ctx context.Context, q RowQuerier, b Sqlizer) (CommandTag, error) {
	sql, args, err := render(b)
	if err != nil {
		return nil, err
	}
	return q.Exec(ctx, sql, args...)
}

// ManySq renders b and maps every row with scan
func ManySq[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), b Sqlizer) ([]T, error) {
	return collect(ctx, q, scan, b)
}

func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), b Sqlizer) ([]T, error) {
	sql, args, err := render(b)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
