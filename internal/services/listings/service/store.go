// Package service holds the TTL listing store, route search and the intake
// pipeline around them
package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"yukbul/internal/core/extract"
	"yukbul/internal/core/normalize"
	"yukbul/internal/platform/logger"
	ptime "yukbul/internal/platform/time"
	"yukbul/internal/services/listings/domain"
)

// DefaultTTL is how long a listing stays searchable
const DefaultTTL = time.Hour

// DefaultCleanupInterval is the reaper period
const DefaultCleanupInterval = time.Minute

// SweepFunc runs after every reaper cleanup, outside the store lock
type SweepFunc func(ctx context.Context, now time.Time)

// Store keeps admitted listings for one TTL window, at most one per content hash
type Store struct {
	mu     sync.Mutex
	byID   map[string]*entry
	hashes map[int32]string
	seq    uint64

	ext      *extract.Extractor
	ttl      time.Duration
	interval time.Duration
	clock    ptime.Clock
	sched    ptime.Scheduler
	sweeps   []SweepFunc
	log      logger.Logger
}

type entry struct {
	l   domain.Listing
	seq uint64
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithTTL sets the retention window; non positive keeps the default
func WithTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithCleanupInterval sets the reaper period; non positive keeps the default
func WithCleanupInterval(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock injects the time source
func WithClock(c ptime.Clock) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithScheduler injects the reaper tick source
func WithScheduler(sc ptime.Scheduler) StoreOption {
	return func(s *Store) {
		if sc != nil {
			s.sched = sc
		}
	}
}

// WithSweep registers fn to run after each reaper cleanup
func WithSweep(fn SweepFunc) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.sweeps = append(s.sweeps, fn)
		}
	}
}

// WithStoreLogger sets the logger used by the reaper
func WithStoreLogger(l logger.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore builds an empty store. ext derives cities and line pairs for
// listings added without them.
func NewStore(ext *extract.Extractor, opts ...StoreOption) *Store {
	if ext == nil {
		panic("service.NewStore: nil Extractor")
	}
	s := &Store{
		byID:     make(map[string]*entry),
		hashes:   make(map[int32]string),
		ext:      ext,
		ttl:      DefaultTTL,
		interval: DefaultCleanupInterval,
		clock:    ptime.System{},
		sched:    ptime.Tickers{},
		log:      *logger.Named("listings"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// TTL is the retention window
func (s *Store) TTL() time.Duration { return s.ttl }

// Add stores l under id unless its content hash is already present.
// A taken id is refused the same way, so the hash set never drifts from the
// listings it indexes.
func (s *Store) Add(id string, l domain.Listing) bool {
	_, ok := s.add(id, l)
	return ok
}

func (s *Store) add(id string, l domain.Listing) (domain.Listing, bool) {
	l.ID = id
	l.Hash = normalize.ContentHash(l.Text)
	l.Cities = slices.Clone(l.Cities)
	l.LinePairs = clonePairs(l.LinePairs)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.hashes[l.Hash]; dup {
		return domain.Listing{}, false
	}
	if _, taken := s.byID[id]; taken {
		return domain.Listing{}, false
	}
	if l.Timestamp == 0 {
		l.Timestamp = ptime.Millis(s.clock.Now())
	}
	if l.Cities == nil {
		l.Cities = s.ext.ExtractCities(l.Text)
	}
	if l.LinePairs == nil {
		l.LinePairs = s.ext.ExtractLinePairs(l.Text)
	}

	s.seq++
	s.byID[id] = &entry{l: l, seq: s.seq}
	s.hashes[l.Hash] = id
	return copyListing(l), true
}

// Get returns the listing stored under id. Like Search it sees everything
// the reaper has not removed yet.
func (s *Store) Get(id string) (domain.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return domain.Listing{}, false
	}
	return copyListing(e.l), true
}

// Size is the number of live listings
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Cleanup drops every listing older than the TTL and frees its hash
func (s *Store) Cleanup() int {
	now := ptime.Millis(s.clock.Now())
	ttl := s.ttl.Milliseconds()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.byID {
		if now-e.l.Timestamp > ttl {
			delete(s.hashes, e.l.Hash)
			delete(s.byID, id)
			n++
		}
	}
	return n
}

// Run calls Cleanup on every scheduler tick until ctx ends, then the sweep
// hooks with the tick time
func (s *Store) Run(ctx context.Context) error {
	log := s.log.With().Str("loop", "reaper").Logger()
	ticks, stop := s.sched.Every(s.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			if n := s.Cleanup(); n > 0 {
				log.Debug().Int("removed", n).Int("size", s.Size()).Msg("expired listings removed")
			}
			now := s.clock.Now()
			for _, fn := range s.sweeps {
				fn(ctx, now)
			}
		}
	}
}

// Search returns the listings on a route, newest first. An empty destination
// means single endpoint mode. Ties keep insertion order.
func (s *Store) Search(origin, destination string, originAliases, destinationAliases domain.Aliases) []domain.Listing {
	list1 := endpoint(origin, originAliases)
	var list2 []string
	if destination != "" {
		list2 = endpoint(destination, destinationAliases)
	}

	s.mu.Lock()
	hits := make([]*entry, 0, 16)
	for _, e := range s.byID {
		var ok bool
		if destination == "" {
			ok = matchOne(e.l, list1)
		} else {
			ok = matchRoute(e.l, list1, list2)
		}
		if ok {
			hits = append(hits, e)
		}
	}
	slices.SortFunc(hits, func(a, b *entry) int {
		switch {
		case a.l.Timestamp != b.l.Timestamp:
			if a.l.Timestamp > b.l.Timestamp {
				return -1
			}
			return 1
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	out := make([]domain.Listing, len(hits))
	for i, e := range hits {
		out[i] = copyListing(e.l)
	}
	s.mu.Unlock()
	return out
}

// endpoint normalizes the alias set, or the bare name when it is absent.
// Names that normalize to nothing are dropped.
func endpoint(name string, aliases domain.Aliases) []string {
	src := []string(aliases)
	if !aliases.Present() {
		src = []string{name}
	}
	out := make([]string, 0, len(src))
	for _, a := range src {
		if n := normalize.Normalize(a); n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// matchOne checks the extracted cities first, then a whole word match in the text
func matchOne(l domain.Listing, names []string) bool {
	for _, c := range l.Cities {
		if slices.Contains(names, normalize.Normalize(c)) {
			return true
		}
	}
	t := " " + normalize.Normalize(l.Text) + " "
	for _, n := range names {
		if strings.Contains(t, " "+n+" ") {
			return true
		}
	}
	return false
}

// matchRoute needs the origin before the destination on one line. Line pairs
// are authoritative when they agree; otherwise each normalized line is
// rescanned by substring position.
func matchRoute(l domain.Listing, from, to []string) bool {
	if len(from) == 0 || len(to) == 0 {
		return false
	}
	for _, pair := range l.LinePairs {
		p1, p2 := -1, -1
		for i, c := range pair {
			n := normalize.Normalize(c)
			if p1 < 0 && slices.Contains(from, n) {
				p1 = i
			}
			if p2 < 0 && slices.Contains(to, n) {
				p2 = i
			}
		}
		if p1 >= 0 && p2 >= 0 && p1 < p2 {
			return true
		}
	}

	for _, line := range normalize.NormalizedLines(l.Text) {
		earliest := -1
		for _, n := range from {
			if i := strings.Index(line, n); i >= 0 && (earliest < 0 || i < earliest) {
				earliest = i
			}
		}
		if earliest < 0 {
			continue
		}
		for _, n := range to {
			if i := strings.Index(line, n); i > earliest {
				return true
			}
		}
	}
	return false
}

func copyListing(l domain.Listing) domain.Listing {
	l.Cities = slices.Clone(l.Cities)
	l.LinePairs = clonePairs(l.LinePairs)
	return l
}

func clonePairs(in [][]string) [][]string {
	if in == nil {
		return nil
	}
	out := make([][]string, len(in))
	for i, p := range in {
		out[i] = slices.Clone(p)
	}
	return out
}
