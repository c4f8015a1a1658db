// Package module wires the listing engine into the API using modkit
package module

import (
	"context"
	"fmt"
	"time"

	"yukbul/internal/core/extract"
	"yukbul/internal/core/gazetteer"
	modkit "yukbul/internal/modkit"
	"yukbul/internal/modkit/httpkit"
	"yukbul/internal/modkit/repokit"
	"yukbul/internal/platform/logger"
	ptime "yukbul/internal/platform/time"

	"yukbul/internal/services/listings/domain"
	lhttp "yukbul/internal/services/listings/http"
	lrepo "yukbul/internal/services/listings/repo"
	lsvc "yukbul/internal/services/listings/service"
)

// Module implements the listings module. Besides its own prefix it owns the
// /places and /blacklist routes.
type Module struct {
	mount modkit.Mount
	svc   *lsvc.Service
}

// Ports declares what the module accepts from the events module; both may be nil
type Ports struct {
	Events  domain.EventSink
	Counter domain.EventCounter
}

// Seams lets tests drive time; zero values mean wall clock and real tickers
type Seams struct {
	Clock     ptime.Clock
	Scheduler ptime.Scheduler
}

// New builds the gazetteer, classifier, store and service
func New(deps modkit.Deps, o Options, seams Seams, opts ...modkit.Option) (*Module, error) {
	mount := modkit.NewMount("listings", "/listings", opts...)

	var injected Ports
	if p, ok := mount.Ports.(Ports); ok {
		injected = p
	}

	gz, err := gazetteer.Load(gazetteer.WithCacheSize(o.GazetteerCache))
	if err != nil {
		return nil, fmt.Errorf("listings: gazetteer: %w", err)
	}
	mode, err := extract.ParsePhoneMode(o.PhoneMode)
	if err != nil {
		return nil, err
	}
	entries, err := o.LoadBlacklist()
	if err != nil {
		return nil, fmt.Errorf("listings: blacklist: %w", err)
	}
	ext := extract.NewExtractor(gz)
	cls := extract.NewClassifier(ext, extract.NewBlacklist(entries...), extract.WithPhoneMode(mode))

	var mirror domain.Mirror
	if deps.PG != nil && o.PGMirror {
		mirror = repokit.MustBind(lrepo.NewPG(), deps.PG)
	}

	log := *logger.Named("listings")

	var svc *lsvc.Service
	store := lsvc.NewStore(ext,
		lsvc.WithTTL(o.TTL),
		lsvc.WithCleanupInterval(o.CleanupInterval),
		lsvc.WithClock(seams.Clock),
		lsvc.WithScheduler(seams.Scheduler),
		lsvc.WithStoreLogger(*logger.Named("reaper")),
		lsvc.WithSweep(func(ctx context.Context, now time.Time) { svc.SweepMirror(ctx, now) }),
	)
	svc = lsvc.New(lsvc.Deps{
		Store:      store,
		Classifier: cls,
		Gazetteer:  gz,
		Mirror:     mirror,
		Events:     injected.Events,
		Counter:    injected.Counter,
		Clock:      seams.Clock,
		Log:        log,
	}, lsvc.Config{SearchLimit: o.SearchLimit, PGRetention: o.PGRetention})

	return &Module{mount: mount, svc: svc}, nil
}

// Service exposes the use case layer to binaries
func (m *Module) Service() *lsvc.Service { return m.svc }

// Run warms the store from the mirror and then runs the reaper until ctx ends
func (m *Module) Run(ctx context.Context) error {
	if _, err := m.svc.WarmStart(ctx); err != nil {
		logger.Named("listings").Warn().Err(err).Msg("warm start skipped")
	}
	return m.svc.Store().Run(ctx)
}

// MountRoutes mounts /listings under the module prefix plus /places and /blacklist
func (m *Module) MountRoutes(r httpkit.Router) {
	m.mount.Route(r, "", func(rr httpkit.Router) { lhttp.Register(rr, m.svc) })
	m.mount.Route(r, "/places", func(rr httpkit.Router) { lhttp.RegisterPlaces(rr, m.svc) })
	m.mount.Route(r, "/blacklist", func(rr httpkit.Router) { lhttp.RegisterBlacklist(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.mount.Name }

// Ports exposes the service as a domain.ListingsPort
func (m *Module) Ports() any { return domain.ListingsPort(m.svc) }
