package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"yukbul/internal/core/extract"
	"yukbul/internal/core/gazetteer"
	"yukbul/internal/core/normalize"
	"yukbul/internal/core/query"
	perr "yukbul/internal/platform/errors"
	"yukbul/internal/platform/logger"
	pstrings "yukbul/internal/platform/strings"
	ptime "yukbul/internal/platform/time"
	evdomain "yukbul/internal/services/events/domain"
	"yukbul/internal/services/listings/domain"

	"github.com/google/uuid"
)

// Config tunes the service around the store
type Config struct {
	SearchLimit  int           // default and cap for search results
	PGRetention  time.Duration // mirror rows older than this are deleted
	WarmStartMax int           // mirror rows loaded on boot
}

// Deps are the collaborators of the service. Mirror, Events and Counter may be nil.
type Deps struct {
	Store      *Store
	Classifier *extract.Classifier
	Gazetteer  *gazetteer.Gazetteer
	Mirror     domain.Mirror
	Events     domain.EventSink
	Counter    domain.EventCounter
	Clock      ptime.Clock
	Log        logger.Logger
}

// Service is the listings use case layer
type Service struct {
	store   *Store
	cls     *extract.Classifier
	gz      *gazetteer.Gazetteer
	qp      *query.Parser
	mirror  domain.Mirror
	events  domain.EventSink
	counter domain.EventCounter
	clock   ptime.Clock
	log     logger.Logger
	cfg     Config
}

var _ domain.ListingsPort = (*Service)(nil)

// New wires a Service; Store, Classifier and Gazetteer are required
func New(d Deps, cfg Config) *Service {
	if d.Store == nil || d.Classifier == nil || d.Gazetteer == nil {
		panic("listings.New: store, classifier and gazetteer are required")
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 50
	}
	if cfg.PGRetention <= 0 {
		cfg.PGRetention = 24 * time.Hour
	}
	if cfg.WarmStartMax <= 0 {
		cfg.WarmStartMax = 10000
	}
	if d.Clock == nil {
		d.Clock = ptime.System{}
	}
	if d.Events == nil {
		d.Events = discard{}
	}
	return &Service{
		store:   d.Store,
		cls:     d.Classifier,
		gz:      d.Gazetteer,
		qp:      query.New(d.Gazetteer),
		mirror:  d.Mirror,
		events:  d.Events,
		counter: d.Counter,
		clock:   d.Clock,
		log:     d.Log,
		cfg:     cfg,
	}
}

type discard struct{}

func (discard) Publish(evdomain.Event) {}

// Store exposes the underlying TTL store
func (s *Service) Store() *Store { return s.store }

// senderPhone matches a bare international mobile id such as 905321234567
var senderPhone = regexp.MustCompile(`^905\d{9}$`)

// augment appends the sender number to group messages that carry none
func (s *Service) augment(in domain.IntakeInput) (string, bool) {
	if in.Channel || s.cls.ContainsPhone(in.Text) {
		return in.Text, false
	}
	raw, _, _ := strings.Cut(in.Sender, "@")
	raw = normalize.Digits(raw)
	if !senderPhone.MatchString(raw) {
		return in.Text, false
	}
	return strings.TrimRightFunc(in.Text, unicode.IsSpace) + "\n📞 +" + raw, true
}

// Intake classifies one message and admits it when it qualifies
func (s *Service) Intake(ctx context.Context, in domain.IntakeInput) (domain.IntakeResult, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.IntakeResult{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "text is required"), "text")
	}
	log := logger.C(ctx).With().Str("component", "intake").Str("chat_id", in.ChatID).Logger()

	text, augmented := s.augment(in)
	v := s.cls.Inspect(text)
	res := domain.IntakeResult{
		Reason:    v.Reason,
		Hash:      v.Hash,
		Cities:    v.Cities,
		Phones:    v.Phones,
		Augmented: augmented,
	}
	if res.Cities == nil {
		res.Cities = []string{}
	}

	if v.Admitted {
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		stored, ok := s.store.add(id, domain.Listing{
			Text:      text,
			Cities:    v.Cities,
			LinePairs: v.LinePairs,
			ChatName:  in.ChatName,
			ChatID:    in.ChatID,
			Sender:    in.Sender,
			Timestamp: in.Timestamp,
		})
		res.ID = id
		res.Admitted = ok
		res.Duplicate = !ok
		if ok {
			s.mirrorInsert(ctx, stored)
			log.Debug().Str("id", id).Strs("cities", v.Cities).Msg("listing admitted")
		} else {
			log.Debug().Int32("hash", v.Hash).Msg("duplicate listing skipped")
		}
	} else {
		log.Debug().Str("reason", string(v.Reason)).Str("text", pstrings.Preview(text, 80)).Msg("message rejected")
	}

	s.events.Publish(evdomain.Event{
		ID:          uuid.NewString(),
		At:          s.clock.Now().UTC(),
		Reason:      string(v.Reason),
		ContentHash: v.Hash,
		Cities:      v.Cities,
		ChatID:      in.ChatID,
		Admitted:    res.Admitted,
		Duplicate:   res.Duplicate,
	})
	return res, nil
}

// mirrorInsert is best effort; failures are logged and never undo admission
func (s *Service) mirrorInsert(ctx context.Context, l domain.Listing) {
	if s.mirror == nil {
		return
	}
	if _, err := s.mirror.Insert(ctx, l); err != nil {
		s.log.Warn().Err(err).Str("id", l.ID).Msg("mirror insert failed")
	}
}

// Search resolves both endpoints through the gazetteer and searches the store
func (s *Service) Search(_ context.Context, in domain.SearchInput) (domain.SearchResult, error) {
	origin := strings.TrimSpace(in.Origin)
	dest := strings.TrimSpace(in.Destination)
	if normalize.Normalize(origin) == "" {
		return domain.SearchResult{}, perr.WithField(perr.InvalidArgf("origin has no searchable letters"), "origin")
	}

	res := domain.SearchResult{Origin: s.gz.Resolve(origin)}
	var destAliases domain.Aliases
	if dest != "" {
		if normalize.Normalize(dest) == "" {
			return domain.SearchResult{}, perr.WithField(perr.InvalidArgf("destination has no searchable letters"), "destination")
		}
		if s.gz.SameProvince(origin, dest) && normalize.Normalize(origin) != normalize.Normalize(dest) {
			return domain.SearchResult{}, perr.InvalidArgf("%s and %s are in the same province", origin, dest)
		}
		r := s.gz.Resolve(dest)
		res.Destination = &r
		destAliases = r.AllNames
	}

	found := s.store.Search(origin, dest, res.Origin.AllNames, destAliases)
	res.Total = len(found)
	res.Listings = limit(found, in.Limit, s.cfg.SearchLimit)
	return res, nil
}

func limit(xs []domain.Listing, asked, max int) []domain.Listing {
	n := asked
	if n <= 0 || n > max {
		n = max
	}
	if len(xs) > n {
		xs = xs[:n]
	}
	return xs
}

// Query parses a free text route such as "istanbuldan ankaraya" and searches it
func (s *Service) Query(ctx context.Context, text string) (domain.QueryResult, error) {
	q, err := s.qp.Parse(text)
	if err != nil {
		if errors.Is(err, query.ErrNotAQuery) {
			if sg := s.gz.Suggest(text, 1); len(sg) > 0 {
				return domain.QueryResult{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "not a route query, did you mean %s", sg[0].Name)
			}
			return domain.QueryResult{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "not a route query")
		}
		return domain.QueryResult{}, err
	}
	sr, err := s.Search(ctx, domain.SearchInput{Origin: q.Origin, Destination: q.Destination})
	if err != nil {
		return domain.QueryResult{}, err
	}
	return domain.QueryResult{Query: q, SearchResult: sr}, nil
}

// Get returns a live listing by id
func (s *Service) Get(_ context.Context, id string) (domain.Listing, error) {
	l, ok := s.store.Get(id)
	if !ok {
		return domain.Listing{}, perr.NotFoundf("listing %s not found", id)
	}
	return l, nil
}

// Resolve expands a place name and suggests close names for unknown input
func (s *Service) Resolve(_ context.Context, name string) (domain.ResolveResult, error) {
	if normalize.Normalize(name) == "" {
		return domain.ResolveResult{}, perr.WithField(perr.InvalidArgf("name is required"), "name")
	}
	r := domain.ResolveResult{Resolution: s.gz.Resolve(name)}
	if !r.Known() {
		r.Suggestions = s.gz.Suggest(name, 5)
	}
	return r, nil
}

// Stats reports store size and, when events are readable, the last TTL of outcomes
func (s *Service) Stats(ctx context.Context) domain.Stats {
	st := domain.Stats{
		Size:          s.store.Size(),
		TTL:           s.store.TTL().String(),
		BlacklistSize: s.cls.Blacklist().Len(),
		PhoneMode:     string(s.cls.Mode()),
		Mirror:        s.mirror != nil,
	}
	if s.counter != nil {
		counts, err := s.counter.CountByReason(ctx, s.clock.Now().Add(-s.store.TTL()))
		if err != nil {
			s.log.Warn().Err(err).Msg("event counts unavailable")
		} else {
			st.Events = counts
		}
	}
	return st
}

// Blacklist returns the current entries
func (s *Service) Blacklist(_ context.Context) domain.BlacklistResult {
	return domain.BlacklistResult{Entries: s.cls.Blacklist().Entries()}
}

// AddBlacklist adds entries and returns the new list
func (s *Service) AddBlacklist(_ context.Context, in domain.BlacklistInput) (domain.BlacklistResult, error) {
	n := s.cls.Blacklist().Add(in.Entries...)
	if n == 0 && len(in.Entries) > 0 {
		s.log.Debug().Strs("entries", in.Entries).Msg("blacklist entries already present or empty")
	}
	return domain.BlacklistResult{Added: n, Entries: s.cls.Blacklist().Entries()}, nil
}

// RemoveBlacklist deletes one entry
func (s *Service) RemoveBlacklist(_ context.Context, entry string) (domain.BlacklistResult, error) {
	if !s.cls.Blacklist().Remove(entry) {
		return domain.BlacklistResult{}, perr.NotFoundf("blacklist entry %q not found", entry)
	}
	return domain.BlacklistResult{Entries: s.cls.Blacklist().Entries()}, nil
}

// WarmStart reloads mirror rows younger than the TTL into the store
func (s *Service) WarmStart(ctx context.Context) (int, error) {
	if s.mirror == nil {
		return 0, nil
	}
	since := s.clock.Now().Add(-s.store.TTL())
	rows, err := s.mirror.Recent(ctx, since, s.cfg.WarmStartMax)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnavailable, "warm start")
	}
	n := 0
	for _, l := range rows {
		if s.store.Add(l.ID, l) {
			n++
		}
	}
	s.log.Info().Int("loaded", n).Int("rows", len(rows)).Msg("store warmed from mirror")
	return n, nil
}

// SweepMirror deletes mirror rows past the retention window; used as a reaper hook
func (s *Service) SweepMirror(ctx context.Context, now time.Time) {
	if s.mirror == nil {
		return
	}
	n, err := s.mirror.DeleteOlderThan(ctx, now.Add(-s.cfg.PGRetention))
	if err != nil {
		s.log.Warn().Err(err).Msg("mirror retention sweep failed")
		return
	}
	if n > 0 {
		s.log.Debug().Int64("removed", n).Msg("mirror rows expired")
	}
}
