package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, r)
		})
	}
}

func write(body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(body)) }
}

func TestAdaptChi_Routing(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)
	r.Use(header("X-Root"))

	r.Route("/api/v1", func(api Router) {
		api.Use(header("X-Api"))
		if api.Mux() == nil {
			t.Fatalf("sub Mux() nil")
		}
		api.Route("/blacklist", func(bl Router) {
			bl.Get("/", write("list"))
			bl.Post("/", write("add"))
			bl.Delete("/{entry}", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				_, _ = w.Write([]byte("del " + chi.URLParam(r, "entry")))
			})
		})
		api.Group(func(g Router) {
			g.Use(header("X-Group"))
			g.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
				_, _ = w.Write([]byte("raw"))
			}))
		})
	})

	cases := []struct {
		method, path, body string
		headers            []string
	}{
		{stdhttp.MethodGet, "/api/v1/blacklist", "list", []string{"X-Root", "X-Api"}},
		{stdhttp.MethodPost, "/api/v1/blacklist", "add", []string{"X-Root", "X-Api"}},
		{stdhttp.MethodDelete, "/api/v1/blacklist/kiziltepe", "del kiziltepe", []string{"X-Api"}},
		{stdhttp.MethodGet, "/api/v1/raw", "raw", []string{"X-Api", "X-Group"}},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != stdhttp.StatusOK || rr.Body.String() != tc.body {
			t.Fatalf("%s %s = %d %q", tc.method, tc.path, rr.Code, rr.Body.String())
		}
		for _, h := range tc.headers {
			if rr.Header().Get(h) != "1" {
				t.Fatalf("%s %s missing %s", tc.method, tc.path, h)
			}
		}
	}

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPut, "/api/v1/blacklist", nil))
	if rr.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("PUT = %d", rr.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)
	MountProfiler(r, "/debug", true)
	for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rr := httptest.NewRecorder()
		m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, p, nil))
		if rr.Code != stdhttp.StatusOK {
			t.Fatalf("%s = %d", p, rr.Code)
		}
	}

	off := chi.NewRouter()
	MountProfiler(AdaptChi(off), "/debug", false)
	rr := httptest.NewRecorder()
	off.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler = %d", rr.Code)
	}
}
