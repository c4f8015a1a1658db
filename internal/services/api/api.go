// Package api provides the HTTP API for the application
package api

import (
	"context"

	"yukbul/internal/platform/config"
	"yukbul/internal/platform/logger"
	phttp "yukbul/internal/platform/net/http"
	"yukbul/internal/platform/store"

	"yukbul/internal/modkit"
	"yukbul/internal/modkit/httpkit"
	"yukbul/internal/modkit/swaggerkit"

	metamod "yukbul/internal/services/api/meta/module"
	eventsmod "yukbul/internal/services/events/module"
	listingsmod "yukbul/internal/services/listings/module"

	"golang.org/x/sync/errgroup"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Seams replaces the wall clock and reaper ticker in tests
	Seams listingsmod.Seams
}

// Mounted is the set of modules behind the router
type Mounted struct {
	Modules []modkit.Module
}

// Run drives every module owning a background loop until ctx ends
func (m Mounted) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, mod := range m.Modules {
		if r, ok := mod.(modkit.Runner); ok {
			g.Go(func() error { return r.Run(gctx) })
		}
	}
	return g.Wait()
}

// Module returns the mounted module called name
func (m Mounted) Module(name string) (modkit.Module, bool) {
	for _, mod := range m.Modules {
		if mod.Name() == name {
			return mod, true
		}
	}
	return nil, false
}

// Mount builds the modules and mounts their routes on r
func Mount(r phttp.Router, opt Options) (Mounted, error) {
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}
	log := logger.Get()
	if opt.Logger != nil {
		log = opt.Logger
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log: *log,
		Cfg: opt.Config,
		PG:  st.PG,
		CH:  st.CH,
	}

	// events first; listings publishes into its sink and reads its counts
	events := eventsmod.New(deps, eventsmod.FromConfig(deps.Cfg))
	evPorts := modkit.MustPortsOf[eventsmod.Ports](events)

	listings, err := listingsmod.New(deps, listingsmod.FromConfig(deps.Cfg), opt.Seams,
		modkit.WithPorts(listingsmod.Ports{Events: evPorts.Publisher, Counter: evPorts.Reader}))
	if err != nil {
		return Mounted{}, err
	}

	mods := []modkit.Module{
		metamod.New(deps),
		listings,
		events, // no routes, only a flush loop
	}

	// versioned API with a common middleware stack
	stack := httpkit.Stack(httpkit.StackFromConfig(opt.Config.Prefix("CORE_API_")))
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	log.Info().
		Bool("mirror", st.PG != nil).
		Bool("events", events.Enabled()).
		Msg("api mounted")
	return Mounted{Modules: mods}, nil
}
