package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perr "yukbul/internal/platform/errors"
	"yukbul/internal/platform/store"
	kit "yukbul/internal/platform/testkit"
	"yukbul/internal/services/events/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type fakeCH struct {
	table   string
	cols    []string
	rows    [][]any
	execs   []string
	query   string
	args    []any
	result  *fakeRows
	failure error
}

func (f *fakeCH) InsertBatch(_ context.Context, table string, cols []string, rows [][]any) error {
	f.table, f.cols, f.rows = table, cols, rows
	return f.failure
}
func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return f.failure
}
func (f *fakeCH) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.query, f.args = sql, args
	if f.failure != nil {
		return nil, f.failure
	}
	return f.result, nil
}
func (f *fakeCH) Ping(context.Context) error { return nil }
func (f *fakeCH) Close() error               { return nil }

type fakeRows struct {
	data   [][2]any
	i      int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*uint64) = row[1].(uint64)
	return nil
}
func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return []string{"reason", "count()"} }

func TestNewCH_Nil(t *testing.T) {
	kit.MustPanic(t, func() { NewCH(nil) })
}

func TestEnsureSchema(t *testing.T) {
	f := &fakeCH{}
	if err := NewCH(f).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if len(f.execs) != 1 || !strings.Contains(f.execs[0], "CREATE TABLE IF NOT EXISTS listing_events") {
		t.Fatalf("schema not executed: %v", f.execs)
	}
}

func TestWriteBatch(t *testing.T) {
	f := &fakeCH{}
	c := NewCH(f)
	if err := c.WriteBatch(context.Background(), nil); err != nil || f.table != "" {
		t.Fatalf("empty batch should be a no-op")
	}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	err := c.WriteBatch(context.Background(), []domain.Event{
		{ID: "e1", At: at, Reason: "admitted", ContentHash: -42, Cities: []string{"Mardin"}, ChatID: "c1", Admitted: true},
		{ID: "e2", At: at, Reason: "no_phone"},
	})
	if err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if f.table != Table || len(f.cols) != 8 || len(f.rows) != 2 {
		t.Fatalf("batch shape: %s %v %d", f.table, f.cols, len(f.rows))
	}
	if got := f.rows[0][3].(int32); got != -42 {
		t.Fatalf("hash column = %d", got)
	}
	if cities, ok := f.rows[1][4].([]string); !ok || cities == nil {
		t.Fatalf("nil cities should become an empty array")
	}
}

func TestCountByReason(t *testing.T) {
	rows := &fakeRows{data: [][2]any{{"admitted", uint64(7)}, {"no_city", uint64(2)}}}
	f := &fakeCH{result: rows}
	since := time.Now().Add(-time.Hour)
	got, err := NewCH(f).CountByReason(context.Background(), since)
	if err != nil {
		t.Fatalf("CountByReason: %v", err)
	}
	if got["admitted"] != 7 || got["no_city"] != 2 || len(got) != 2 {
		t.Fatalf("counts = %v", got)
	}
	if !rows.closed || len(f.args) != 1 || f.args[0] != since {
		t.Fatalf("rows not closed or args wrong: %v", f.args)
	}

	f.result = &fakeRows{err: errors.New("stream broke")}
	if _, err := NewCH(f).CountByReason(context.Background(), since); err == nil {
		t.Fatalf("row error should surface")
	}
	f.failure = errors.New("down")
	if _, err := NewCH(f).CountByReason(context.Background(), since); err == nil {
		t.Fatalf("query error should surface")
	}
}

func TestErrorsAreMapped(t *testing.T) {
	cases := []struct {
		name    string
		failure error
		code    perr.ErrorCode
		retry   bool
	}{
		{"plain", errors.New("down"), perr.ErrorCodeDB, false},
		{"missing table", &clickhouse.Exception{Code: 60, Message: "Table default.listing_events does not exist"}, perr.ErrorCodeUnavailable, false},
		{"too many parts", &clickhouse.Exception{Code: 252, Message: "Too many parts"}, perr.ErrorCodeUnavailable, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeCH{failure: tc.failure}
			err := NewCH(f).WriteBatch(context.Background(), []domain.Event{{ID: "e1", Reason: "admitted"}})
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %v want %v (%v)", perr.CodeOf(err), tc.code, err)
			}
			if !errors.Is(err, tc.failure) {
				t.Fatalf("cause lost: %v", err)
			}
			if perr.IsRetryable(err) != tc.retry {
				t.Fatalf("retryable = %v", perr.IsRetryable(err))
			}
		})
	}
}
