package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yukbul/internal/core/extract"
	"yukbul/internal/core/gazetteer"
	"yukbul/internal/modkit/httpkit"
	phttp "yukbul/internal/platform/net/http"
	svc "yukbul/internal/services/listings/service"

	"github.com/go-chi/chi/v5"
)

func newServer(t *testing.T) stdhttp.Handler {
	t.Helper()
	gz := gazetteer.Default()
	ext := extract.NewExtractor(gz)
	s := svc.New(svc.Deps{
		Store:      svc.NewStore(ext),
		Classifier: extract.NewClassifier(ext, extract.NewBlacklist("0533 444 55 66")),
		Gazetteer:  gz,
	}, svc.Config{})

	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	r.Route("/listings", func(rr httpkit.Router) { Register(rr, s) })
	r.Route("/places", func(rr httpkit.Router) { RegisterPlaces(rr, s) })
	r.Route("/blacklist", func(rr httpkit.Router) { RegisterBlacklist(rr, s) })
	return m
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       json.RawMessage `json:"code"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad body %q", method, path, rec.Body.String())
	}
	return rec.Code, env
}

func TestIntakeThenSearch(t *testing.T) {
	h := newServer(t)

	code, env := do(t, h, "POST", "/listings/intake", `{"id":"m1","text":"Sakarya'dan Bolu'ya yük, 05321234567"}`)
	if code != 200 || !strings.Contains(string(env.Data), `"admitted":true`) {
		t.Fatalf("intake = %d %s", code, env.Data)
	}

	code, env = do(t, h, "POST", "/listings/search", `{"origin":"sakarya","destination":"bolu"}`)
	if code != 200 || !strings.Contains(string(env.Data), `"id":"m1"`) {
		t.Fatalf("search = %d %s", code, env.Data)
	}

	code, env = do(t, h, "GET", "/listings/query?q=sakaryadan+boluya", "")
	if code != 200 || !strings.Contains(string(env.Data), `"total":1`) {
		t.Fatalf("query = %d %s", code, env.Data)
	}

	code, env = do(t, h, "GET", "/listings/m1", "")
	if code != 200 || !strings.Contains(string(env.Data), `"hash"`) {
		t.Fatalf("get = %d %s", code, env.Data)
	}

	code, env = do(t, h, "GET", "/listings/stats", "")
	if code != 200 || !strings.Contains(string(env.Data), `"size":1`) {
		t.Fatalf("stats = %d %s", code, env.Data)
	}
}

func TestErrors(t *testing.T) {
	h := newServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing text", "POST", "/listings/intake", `{"chat_id":"g"}`, 400},
		{"unknown field", "POST", "/listings/intake", `{"text":"x","bogus":1}`, 400},
		{"limit too large", "POST", "/listings/search", `{"origin":"ankara","limit":9999}`, 400},
		{"punctuation origin", "POST", "/listings/search", `{"origin":"🚛 !!"}`, 400},
		{"same province", "POST", "/listings/search", `{"origin":"izmir","destination":"buca"}`, 422},
		{"query missing", "GET", "/listings/query", "", 422},
		{"unknown id", "GET", "/listings/nope", "", 404},
		{"empty place", "GET", "/places/resolve", "", 422},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if code, env := do(t, h, tc.method, tc.path, tc.body); code != tc.want {
				t.Fatalf("%s %s = %d (%s), want %d", tc.method, tc.path, code, env.Code, tc.want)
			}
		})
	}
}

func TestPlacesResolve(t *testing.T) {
	h := newServer(t)
	code, env := do(t, h, "GET", "/places/resolve?name=Buca", "")
	if code != 200 || !strings.Contains(string(env.Data), `"province":"izmir"`) {
		t.Fatalf("resolve = %d %s", code, env.Data)
	}
	code, env = do(t, h, "GET", "/places/resolve?name=istambul", "")
	if code != 200 || !strings.Contains(string(env.Data), `"suggestions"`) {
		t.Fatalf("suggest = %d %s", code, env.Data)
	}
}

func TestBlacklistRoutes(t *testing.T) {
	h := newServer(t)

	code, env := do(t, h, "POST", "/blacklist", `{"entries":["Kızıltepe"]}`)
	if code != 200 || !strings.Contains(string(env.Data), `"added":1`) {
		t.Fatalf("add = %d %s", code, env.Data)
	}
	code, env = do(t, h, "GET", "/blacklist", "")
	if code != 200 || !strings.Contains(string(env.Data), "Kızıltepe") {
		t.Fatalf("list = %d %s", code, env.Data)
	}
	if code, _ = do(t, h, "DELETE", "/blacklist/0533%20444%2055%2066", ""); code != 200 {
		t.Fatalf("delete escaped entry = %d", code)
	}
	if code, _ = do(t, h, "DELETE", "/blacklist/0533%20444%2055%2066", ""); code != 404 {
		t.Fatalf("second delete = %d", code)
	}
	if code, _ = do(t, h, "POST", "/blacklist", `{"entries":[]}`); code != 400 {
		t.Fatalf("empty entries = %d", code)
	}
	code, env = do(t, h, "POST", "/blacklist", `{"entries":["!!!"]}`)
	if code != 400 || env.Field != "entries[0]" {
		t.Fatalf("punctuation entry = %d field=%q", code, env.Field)
	}
}
