// Package http serves the meta endpoints: liveness, readiness and build info
package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"yukbul/internal/core/version"
	"yukbul/internal/modkit/httpkit"
	phttp "yukbul/internal/platform/net/http"
)

// Pinger is any store that can answer a round trip
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies. A nil store is optional and reported as
// skipped; the engine serves from memory without either.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger
	CH          Pinger

	// SlowPing marks a check degraded; zero means 500ms
	SlowPing time.Duration
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.SlowPing <= 0 {
		d.SlowPing = 500 * time.Millisecond
	}
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"yukbul-api"`
	Now     string `json:"now"     example:"2026-05-04T08:00:00Z"`
}

// ReadyCheck is one backend probe
type ReadyCheck struct {
	Name      string `json:"name"            example:"pg"`
	Status    string `json:"status"          example:"ok"` // ok slow fail skipped
	LatencyMS int64  `json:"latency_ms"      example:"3"`
	Error     string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse sums the probes up: fail beats degraded beats ok
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string `json:"name"    example:"yukbul-api"`
	Started string `json:"started" example:"2026-05-04T08:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *stdhttp.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Now: h.now().UTC().Format(time.RFC3339)}, nil
}

// @Summary Readiness with a ping per configured store
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "a configured store failed its ping"
// @Router /meta/ready [get]
func (h *handlers) ready(r *stdhttp.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	out := ReadyResponse{Status: "ok"}
	for _, c := range []struct {
		name string
		p    Pinger
	}{{"pg", h.deps.PG}, {"ch", h.deps.CH}} {
		rc := h.probe(ctx, c.name, c.p)
		switch {
		case rc.Status == "fail":
			out.Status = "fail"
		case rc.Status == "slow" && out.Status == "ok":
			out.Status = "degraded"
		}
		out.Checks = append(out.Checks, rc)
	}
	if out.Status == "fail" {
		return phttp.Response{Status: stdhttp.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

func (h *handlers) probe(ctx context.Context, name string, p Pinger) ReadyCheck {
	if p == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	start := h.now()
	err := p.Ping(ctx)
	took := h.now().Sub(start)
	rc := ReadyCheck{Name: name, Status: "ok", LatencyMS: took.Milliseconds()}
	switch {
	case err != nil:
		rc.Status, rc.Error = "fail", err.Error()
	case took >= h.deps.SlowPing:
		rc.Status = "slow"
	}
	return rc
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *stdhttp.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Process start time and uptime in seconds
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *stdhttp.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}
