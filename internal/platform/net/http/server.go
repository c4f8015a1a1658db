package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"strconv"
	"sync"
	"time"

	"yukbul/internal/platform/config"
	"yukbul/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listener of one binary
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	drain time.Duration

	mu    sync.Mutex
	bound string
}

// NewServer reads ADDR (or PORT, default 4000) and the READ, WRITE, IDLE and
// DRAIN timeouts under cfg
func NewServer(cfg config.Conf) *Server {
	addr := cfg.MayString("ADDR", "")
	if addr == "" {
		addr = ":" + strconv.Itoa(cfg.MayInt("PORT", 4000))
	}
	m := chi.NewRouter()
	return &Server{
		mux:   m,
		drain: cfg.MayDuration("DRAIN_TIMEOUT", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router is the route registration seam over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the bound address once Run listens, the configured one before
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != "" {
		return s.bound
	}
	return s.srv.Addr
}

// Run serves until ctx ends or Shutdown is called, then drains open requests
// for at most DRAIN_TIMEOUT
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.bound = ln.Addr().String()
	s.mu.Unlock()
	log.Info().Str("addr", s.Addr()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Dur("drain", s.drain).Msg("http draining")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drain)
		defer cancel()
		return s.srv.Shutdown(sctx)
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
