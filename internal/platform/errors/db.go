package errors

import (
	"context"
	stderrs "errors"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the mirror can hit
const (
	pgUniqueViolation      = "23505"
	pgStringTooLong        = "22001"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgReadOnlyTransaction  = "25006"
	pgCannotConnectNow     = "57P03"
	pgUndefinedTable       = "42P01"
)

// ClickHouse server exception codes the event log can hit
const (
	chUnknownTable         int32 = 60
	chUnknownDatabase      int32 = 81
	chTimeoutExceeded      int32 = 159
	chTooManyQueries       int32 = 202
	chSocketTimeout        int32 = 209
	chTooManyParts         int32 = 252
	chAuthenticationFailed int32 = 516
)

// PgCode returns the SQLSTATE anywhere in err's chain
func PgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

func pgErrorCode(err error) ErrorCode {
	code, ok := PgCode(err)
	if !ok {
		return ErrorCodeDB
	}
	switch code {
	case pgUniqueViolation:
		return ErrorCodeConflict
	case pgStringTooLong:
		return ErrorCodeInvalidArgument
	case pgReadOnlyTransaction, pgCannotConnectNow, pgUndefinedTable:
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}

// FromPostgres wraps a pgx error with a mapped code; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, pgErrorCode(err), msg)
}

// ChCode returns the ClickHouse exception code anywhere in err's chain
func ChCode(err error) (int32, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex.Code, true
	}
	return 0, false
}

// FromClickHouse wraps a clickhouse-go error with a mapped code; nil stays nil
func FromClickHouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if c, ok := ChCode(err); ok {
		switch c {
		case chUnknownTable, chUnknownDatabase, chAuthenticationFailed,
			chTimeoutExceeded, chSocketTimeout, chTooManyQueries, chTooManyParts:
			code = ErrorCodeUnavailable
		}
	}
	return Wrap(err, code, msg)
}

// IsRetryable reports whether a storage error is transient. Local
// cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if code, ok := PgCode(err); ok {
		switch code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgCannotConnectNow:
			return true
		}
		return false
	}
	if c, ok := ChCode(err); ok {
		switch c {
		case chTimeoutExceeded, chSocketTimeout, chTooManyQueries, chTooManyParts:
			return true
		}
	}
	return false
}
