// Package module mounts the meta endpoints
package module

import (
	"time"

	"yukbul/internal/core/version"
	"yukbul/internal/modkit"
	"yukbul/internal/modkit/httpkit"

	metahttp "yukbul/internal/services/api/meta/http"
)

// Module serves health, readiness and build info under /meta
type Module struct {
	mount modkit.Mount
	deps  metahttp.Deps
}

// New builds the meta module. Readiness pings whichever stores deps carry.
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	d := metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
	}
	// typed nils must stay untyped so readiness reports them as skipped
	if deps.PG != nil {
		if p, ok := deps.PG.(metahttp.Pinger); ok {
			d.PG = p
		}
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	return &Module{mount: modkit.NewMount("meta", "/meta", opts...), deps: d}
}

// MountRoutes mounts /meta
func (m *Module) MountRoutes(r httpkit.Router) {
	m.mount.Route(r, "", func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name returns "meta"
func (m *Module) Name() string { return m.mount.Name }

// Ports returns nil; meta exports nothing
func (m *Module) Ports() any { return nil }
