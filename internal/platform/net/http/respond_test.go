package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "yukbul/internal/platform/errors"
	pnet "yukbul/internal/platform/net"
	phttp "yukbul/internal/platform/net/http"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Status     string          `json:"status"`
	Code       int             `json:"code"`
	Error      string          `json:"error"`
	RequestID  string          `json:"request_id"`
	Data       json.RawMessage `json:"data"`
	Page       *phttp.Page     `json:"page"`
}

func serve(t *testing.T, h http.HandlerFunc, method, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-1", ""))
	rr := httptest.NewRecorder()
	h(rr, req)
	var env envelope
	if rr.Code != http.StatusNoContent {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rr.Body.String(), err)
		}
	}
	return rr, env
}

func TestHandle_Responses(t *testing.T) {
	cases := []struct {
		name   string
		resp   phttp.Response
		status int
		code   int
	}{
		{"ok", phttp.OK(map[string]int{"size": 3}), 200, 0},
		{"created", phttp.Created("x"), 201, 0},
		{"zero status", phttp.Response{Body: "x"}, 200, 0},
		{"not found", phttp.Error(perr.NotFoundf("listing %q", "m1")), 404, int(perr.ErrorCodeNotFound)},
		{"invalid", phttp.Error(perr.InvalidArgf("unknown place")), 422, int(perr.ErrorCodeInvalidArgument)},
		{"plain error", phttp.Error(errors.New("boom")), 500, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := serve(t, phttp.Handle(func(*http.Request) phttp.Response { return tc.resp }), http.MethodGet, "")
			if rr.Code != tc.status || env.StatusCode != tc.status || env.RequestID != "rid-1" {
				t.Fatalf("got %d %+v", rr.Code, env)
			}
			if env.Code != tc.code {
				t.Fatalf("code = %d want %d", env.Code, tc.code)
			}
			if tc.status >= 400 && env.Error == "" {
				t.Fatalf("missing error text")
			}
		})
	}
}

func TestHandle_NoContentAndHeaders(t *testing.T) {
	rr, _ := serve(t, phttp.Handle(func(*http.Request) phttp.Response {
		r := phttp.NoContent()
		r.Header = http.Header{"X-Listings": []string{"0"}}
		return r
	}), http.MethodDelete, "")
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 || rr.Header().Get("X-Listings") != "0" {
		t.Fatalf("got %d %q %v", rr.Code, rr.Body.String(), rr.Header())
	}
}

func TestList(t *testing.T) {
	_, env := serve(t, phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.List([]string{"a", "b"}, 5, 2)
	}), http.MethodGet, "")
	if env.Page == nil || env.Page.Total != 5 || env.Page.Returned != 2 || string(env.Data) != `["a","b"]` {
		t.Fatalf("env = %+v data=%s", env, env.Data)
	}
}

type searchIn struct {
	Origin string `json:"origin" validate:"required,max=64"`
}

func TestJSONHandler(t *testing.T) {
	h := phttp.JSONHandler(func(_ *http.Request, in searchIn) (any, error) {
		switch in.Origin {
		case "nowhere":
			return nil, perr.InvalidArgf("unknown place: %s", in.Origin)
		case "new":
			return phttp.Created(in.Origin), nil
		}
		return map[string]string{"origin": in.Origin}, nil
	})

	cases := []struct {
		name, body string
		status     int
		code       perr.ErrorCode
	}{
		{"ok", `{"origin":"sakarya"}`, 200, 0},
		{"custom response", `{"origin":"new"}`, 201, 0},
		{"handler error", `{"origin":"nowhere"}`, 422, perr.ErrorCodeInvalidArgument},
		{"bad json", `{"origin":`, 400, perr.ErrorCodeJSON},
		{"unknown field", `{"origin":"a","x":1}`, 400, perr.ErrorCodeJSON},
		{"validation", `{"origin":""}`, 400, perr.ErrorCodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := serve(t, h, http.MethodPost, tc.body)
			if rr.Code != tc.status || env.Code != int(tc.code) {
				t.Fatalf("got %d code=%d err=%q", rr.Code, env.Code, env.Error)
			}
		})
	}
}

func TestJSONHandlerNoBody(t *testing.T) {
	h := phttp.JSONHandlerNoBody(func(r *http.Request) (any, error) {
		return map[string]string{"q": r.URL.Query().Get("q")}, nil
	})
	rr, env := serve(t, h, http.MethodGet, "")
	if rr.Code != 200 || string(env.Data) != `{"q":""}` {
		t.Fatalf("got %d %s", rr.Code, env.Data)
	}
}
