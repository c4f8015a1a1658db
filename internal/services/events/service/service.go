// Package service batches admission events in memory and flushes them to a
// writer from one background goroutine
package service

import (
	"context"
	"sync/atomic"
	"time"

	"yukbul/internal/platform/logger"
	"yukbul/internal/services/events/domain"
)

// Config tunes batching
type Config struct {
	Batch      int           // flush when this many events are pending
	FlushEvery time.Duration // flush at least this often
	Queue      int           // channel capacity; Publish drops when full
}

// Svc is a bounded, non blocking event publisher
type Svc struct {
	w       domain.Writer
	cfg     Config
	ch      chan domain.Event
	dropped atomic.Int64
	log     logger.Logger
}

// New builds a publisher over w
func New(w domain.Writer, cfg Config) *Svc {
	if cfg.Batch <= 0 {
		cfg.Batch = 256
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	if cfg.Queue <= 0 {
		cfg.Queue = 4096
	}
	return &Svc{
		w:   w,
		cfg: cfg,
		ch:  make(chan domain.Event, cfg.Queue),
		log: *logger.Named("events"),
	}
}

// Publish enqueues ev or drops it when the queue is full
func (s *Svc) Publish(ev domain.Event) {
	select {
	case s.ch <- ev:
	default:
		if n := s.dropped.Add(1); n == 1 || n%1000 == 0 {
			s.log.Warn().Int64("dropped", n).Msg("event queue full, dropping")
		}
	}
}

// Dropped is the number of events lost to a full queue
func (s *Svc) Dropped() int64 { return s.dropped.Load() }

// Run drains the queue until ctx ends, then flushes what is left
func (s *Svc) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.FlushEvery)
	defer t.Stop()

	buf := make([]domain.Event, 0, s.cfg.Batch)
	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		if err := s.w.WriteBatch(ctx, buf); err != nil {
			s.log.Error().Err(err).Int("events", len(buf)).Msg("event batch write failed")
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case ev := <-s.ch:
					buf = append(buf, ev)
				default:
					break drain
				}
			}
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			flush(fctx)
			cancel()
			return ctx.Err()
		case ev := <-s.ch:
			buf = append(buf, ev)
			if len(buf) >= s.cfg.Batch {
				flush(ctx)
			}
		case <-t.C:
			flush(ctx)
		}
	}
}

// Discard is the publisher used when no event store is configured
type Discard struct{}

// Publish does nothing
func (Discard) Publish(domain.Event) {}
