package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeUnknown:         http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeConflict:        http.StatusConflict,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for c, want := range cases {
		if got := HTTPStatusCode(c); got != want {
			t.Fatalf("HTTPStatusCode(%d) = %d want %d", c, got, want)
		}
	}
}

func TestErrorAndWire(t *testing.T) {
	cause := stderrs.New("connection reset")
	err := Wrap(cause, ErrorCodeDB, "insert listing")
	if err.Error() != "insert listing: connection reset" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || Root(err) != cause {
		t.Fatalf("cause not reachable")
	}
	w := WireFrom(err)
	if w.Code != ErrorCodeDB || w.Message != "insert listing" {
		t.Fatalf("wire leaks cause or lost code: %+v", w)
	}

	v := WithField(New(ErrorCodeValidation, "text is required"), "text")
	if w := WireFrom(v); w.Field != "text" || w.Code != ErrorCodeValidation {
		t.Fatalf("field wire = %+v", w)
	}
	if WithField(cause, "x") != cause {
		t.Fatalf("foreign error should pass through WithField")
	}

	wrapped := fmt.Errorf("search: %w", NotFoundf("listing %q", "m1"))
	if !IsCode(wrapped, ErrorCodeNotFound) || HTTPStatus(wrapped) != http.StatusNotFound {
		t.Fatalf("code lost through fmt wrap")
	}
	if CodeOf(cause) != ErrorCodeUnknown || WireFrom(cause).Message != "connection reset" {
		t.Fatalf("foreign error mapping")
	}
	if WireFrom(nil) != (Wire{}) || Root(nil) != nil {
		t.Fatalf("nil handling")
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil receiver")
	}
}

func TestSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{InvalidArgf("unknown place: %s", "istanbull"), ErrorCodeInvalidArgument},
		{JSONErrf("invalid JSON"), ErrorCodeJSON},
		{PanicErrf("boom"), ErrorCodePanic},
		{Unavailablef("mirror disabled"), ErrorCodeUnavailable},
		{Wrapf(stderrs.New("x"), ErrorCodeDB, "load %d", 3), ErrorCodeDB},
	}
	for _, tc := range cases {
		if CodeOf(tc.err) != tc.code {
			t.Fatalf("%v: code %d want %d", tc.err, CodeOf(tc.err), tc.code)
		}
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
	cases := []struct {
		sqlstate string
		code     ErrorCode
		retry    bool
	}{
		{"23505", ErrorCodeConflict, false},
		{"22001", ErrorCodeInvalidArgument, false},
		{"57P03", ErrorCodeUnavailable, true},
		{"42P01", ErrorCodeUnavailable, false},
		{"40001", ErrorCodeDB, true},
		{"40P01", ErrorCodeDB, true},
		{"XX000", ErrorCodeDB, false},
	}
	for _, tc := range cases {
		err := FromPostgres(&pgconn.PgError{Code: tc.sqlstate}, "insert listing")
		if CodeOf(err) != tc.code {
			t.Fatalf("%s: code %d want %d", tc.sqlstate, CodeOf(err), tc.code)
		}
		if IsRetryable(err) != tc.retry {
			t.Fatalf("%s: retryable %v", tc.sqlstate, IsRetryable(err))
		}
		if s, ok := PgCode(err); !ok || s != tc.sqlstate {
			t.Fatalf("PgCode = %q %v", s, ok)
		}
	}
	if CodeOf(FromPostgres(stderrs.New("eof"), "x")) != ErrorCodeDB {
		t.Fatalf("foreign error should be DB")
	}
	if FromClickHouse(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestIsRetryable_Local(t *testing.T) {
	for _, err := range []error{nil, context.Canceled, Wrap(context.DeadlineExceeded, ErrorCodeDB, "x"), stderrs.New("other")} {
		if IsRetryable(err) {
			t.Fatalf("%v should not be retryable", err)
		}
	}
}
