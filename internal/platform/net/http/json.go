package http

import (
	"net/http"

	"yukbul/internal/platform/net/http/bind"
)

// JSONHandler binds and validates T from the body, then wraps fn's result.
// fn may return a Response to pick its own status.
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return wrap(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without reading a body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return wrap(fn(r)) })
}

func wrap(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
