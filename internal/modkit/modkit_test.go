package modkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yukbul/internal/modkit/httpkit"
	phttp "yukbul/internal/platform/net/http"
	kit "yukbul/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type counter interface{ Count() int }

type fixed int

func (f fixed) Count() int { return int(f) }

type fake struct {
	name  string
	ports any
}

func (f fake) Name() string               { return f.name }
func (f fake) Ports() any                 { return f.ports }
func (f fake) MountRoutes(httpkit.Router) {}

func TestPortsOf(t *testing.T) {
	type bundle struct {
		Counter counter
		Size    int
	}
	type hidden struct {
		c counter
	}
	cases := []struct {
		name  string
		ports any
		want  int
		ok    bool
	}{
		{"nil", nil, 0, false},
		{"direct", fixed(3), 3, true},
		{"exported field", bundle{Counter: fixed(7)}, 7, true},
		{"nil field", bundle{}, 0, false},
		{"unexported field", hidden{c: fixed(1)}, 0, false},
		{"scalar", 12, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[counter](fake{name: "x", ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v want %v", ok, tc.ok)
			}
			if ok && got.Count() != tc.want {
				t.Fatalf("Count = %d want %d", got.Count(), tc.want)
			}
		})
	}
}

func TestMustPortsOf_Panics(t *testing.T) {
	defer func() {
		r := recover()
		msg, _ := r.(string)
		if !strings.Contains(msg, "events") || !strings.Contains(msg, "counter") {
			t.Fatalf("panic = %v", r)
		}
	}()
	_ = MustPortsOf[counter](fake{name: "events"})
}

func TestNewMount_Options(t *testing.T) {
	noop := func(h http.Handler) http.Handler { return h }
	m := NewMount("listings", "/listings",
		WithPrefix("/ilan"),
		WithMiddlewares(noop),
		WithMiddlewares(noop),
		WithPorts(fixed(2)),
	)
	if m.Name != "listings" || m.Prefix != "/ilan" || len(m.Mw) != 2 {
		t.Fatalf("mount = %+v", m)
	}
	if m.Ports.(fixed) != 2 {
		t.Fatalf("ports = %v", m.Ports)
	}
}

func TestMount_Route(t *testing.T) {
	var order []string
	tag := func(s string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, s)
				next.ServeHTTP(w, r)
			})
		}
	}
	m := NewMount("places", "/places", WithMiddlewares(tag("a"), tag("b")))

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	reg := func(rr httpkit.Router) {
		rr.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	}
	m.Route(r, "", reg)
	m.Route(r, " yer/ ", reg)

	for _, path := range []string{"/places/ping", "/yer/ping"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("%s = %d", path, rec.Code)
		}
	}
	if strings.Join(order, "") != "abab" {
		t.Fatalf("middleware order = %v", order)
	}
}

func TestMount_RouteRootPanics(t *testing.T) {
	m := NewMount("bad", "/")
	r := phttp.AdaptChi(chi.NewRouter())
	kit.MustPanic(t, func() { m.Route(r, "", func(httpkit.Router) {}) })
}
