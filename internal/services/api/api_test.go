package api

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yukbul/internal/modkit"
	"yukbul/internal/platform/config"
	phttp "yukbul/internal/platform/net/http"
	ptime "yukbul/internal/platform/time"
	listingsdomain "yukbul/internal/services/listings/domain"
	listingsmod "yukbul/internal/services/listings/module"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountMemory(t *testing.T) (stdhttp.Handler, Mounted, *ptime.ManualScheduler) {
	t.Helper()

	sched := ptime.NewManualScheduler()
	m := chi.NewRouter()
	mounted, err := Mount(phttp.AdaptChi(m), Options{
		Config: config.New(),
		Seams:  listingsSeams(sched),
	})
	require.NoError(t, err)
	return m, mounted, sched
}

func listingsSeams(sched *ptime.ManualScheduler) listingsmod.Seams {
	return listingsmod.Seams{
		Clock:     ptime.NewManual(time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)),
		Scheduler: sched,
	}
}

func call(t *testing.T, h stdhttp.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestMount_MemoryOnly(t *testing.T) {
	h, mounted, sched := mountMemory(t)

	code, body := call(t, h, "GET", "/api/v1/meta/ready", "")
	require.Equal(t, 200, code)
	assert.Equal(t, "ok", body["data"].(map[string]any)["status"])

	code, body = call(t, h, "POST", "/api/v1/listings/intake", `{"text":"Sakarya'dan Bolu'ya yük, 05321234567","chat_id":"g1"}`)
	require.Equal(t, 200, code)
	assert.Equal(t, true, body["data"].(map[string]any)["admitted"])

	code, body = call(t, h, "POST", "/api/v1/listings/search", `{"origin":"sakarya","destination":"bolu"}`)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, body["data"].(map[string]any)["total"])

	code, _ = call(t, h, "GET", "/api/v1/blacklist", "")
	assert.Equal(t, 200, code)

	lm, ok := mounted.Module("listings")
	require.True(t, ok)
	port := modkit.MustPortsOf[listingsdomain.ListingsPort](lm)
	assert.Equal(t, 1, port.Stats(context.Background()).Size)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mounted.Run(ctx) }()
	sched.Fire(time.Now()) // reaper is live
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loops did not stop")
	}
}
