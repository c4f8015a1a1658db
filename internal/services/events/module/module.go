// Package module wires the admission event sink. Without ClickHouse it hands
// out a discarding publisher and no reader.
package module

import (
	"context"

	"yukbul/internal/modkit"
	"yukbul/internal/modkit/httpkit"
	"yukbul/internal/services/events/domain"
	"yukbul/internal/services/events/repo"
	"yukbul/internal/services/events/service"
)

// Publisher accepts events without blocking
type Publisher interface {
	Publish(ev domain.Event)
}

// Ports exposed by the events module
type Ports struct {
	Publisher Publisher
	Reader    domain.Reader // nil when disabled
}

// Module implements the events module. It has no routes.
type Module struct {
	deps  modkit.Deps
	opts  Options
	ch    *repo.CH
	svc   *service.Svc
	ports Ports
}

// New constructs the events module
func New(deps modkit.Deps, opts Options) *Module {
	m := &Module{deps: deps, opts: opts}
	if !opts.Enabled || deps.CH == nil {
		m.ports = Ports{Publisher: service.Discard{}}
		return m
	}
	m.ch = repo.NewCH(deps.CH)
	m.svc = service.New(m.ch, service.Config{
		Batch:      opts.Batch,
		FlushEvery: opts.FlushEvery,
		Queue:      opts.Queue,
	})
	m.ports = Ports{Publisher: m.svc, Reader: m.ch}
	return m
}

// Enabled reports whether events reach ClickHouse
func (m *Module) Enabled() bool { return m.svc != nil }

// Run creates the table and flushes batches until ctx ends
func (m *Module) Run(ctx context.Context) error {
	if m.svc == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := m.ch.EnsureSchema(ctx); err != nil {
		m.deps.Log.Error().Err(err).Msg("events schema failed, sink disabled")
		<-ctx.Done()
		return ctx.Err()
	}
	return m.svc.Run(ctx)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "events" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
