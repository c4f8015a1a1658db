// @title         Yukbul API
// @version       0.1.0
// @description   Freight classifieds from chat groups: intake, route search and blacklist admin
// @BasePath      /api/v1

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"yukbul/internal/platform/config"
	"yukbul/internal/platform/logger"
	phttp "yukbul/internal/platform/net/http"
	"yukbul/internal/platform/store"

	"yukbul/internal/services/api"
	lrepo "yukbul/internal/services/listings/repo"

	"golang.org/x/sync/errgroup"
)

func main() {
	fConfig := flag.String("config", "", "optional YAML file; environment variables win over it")
	flag.Parse()

	// bring up logging early
	l := logger.Get()

	root, err := config.FromFile(*fConfig)
	if err != nil {
		l.Fatal().Err(err).Msg("config load failed")
	}
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// both backends are optional; the engine serves from memory without them
	st, err := store.Open(ctx, store.FromConf(root, "api"),
		store.WithLogger(*l),
		store.WithMigrations(lrepo.Migrations()),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	mods, err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return mods.Run(gctx) })

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		l.Error().Err(err).Msg("api stopped")
		return
	}
	l.Info().Msg("api stopped")
}
