package pg

import (
	"context"
	"strings"
	"time"

	"yukbul/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Tracer logs finished statements: info normally, warn when slow or failed.
// It logs at its own level so LOG_LEVEL=warn still shows SQL when asked for.
type Tracer struct {
	log  logger.Logger
	slow time.Duration
	now  func() time.Time
}

var _ pgx.QueryTracer = (*Tracer)(nil)

// NewTracer returns a pgx.QueryTracer writing to log. slow <= 0 disables
// the slow mark.
func NewTracer(log logger.Logger, slow time.Duration) *Tracer {
	return &Tracer{
		log:  log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		slow: slow,
		now:  time.Now,
	}
}

type started struct {
	at   time.Time
	sql  string
	args []any
}

type startedKey struct{}

// TraceQueryStart stashes the statement on ctx
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startedKey{}, started{at: t.now(), sql: d.SQL, args: d.Args})
}

// TraceQueryEnd logs the statement stashed by TraceQueryStart
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(startedKey{}).(started)
	if !ok {
		return
	}
	took := t.now().Sub(s.at)
	slow := t.slow > 0 && took >= t.slow

	ev := t.log.Info()
	if slow || d.Err != nil {
		ev = t.log.Warn()
	}
	ev.Dur("took", took).
		Bool("slow", slow).
		Str("sql", compact(s.sql)).
		Interface("args", s.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Err(d.Err).
		Msg("pg query")
}

func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
