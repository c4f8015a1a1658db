// Package http provides http transport for listings, places and the blacklist
package http

import (
	stdhttp "net/http"
	"net/url"

	"yukbul/internal/modkit/httpkit"
	perr "yukbul/internal/platform/errors"
	"yukbul/internal/services/listings/domain"
	svc "yukbul/internal/services/listings/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts listing endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	registerValidators()
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.IntakeInput](r, "/intake", h.intake)
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
	httpkit.Get(r, "/query", h.query)
	httpkit.Get(r, "/stats", h.stats)
	httpkit.Get(r, "/{id}", h.get)
}

// RegisterPlaces mounts the gazetteer lookup
func RegisterPlaces(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/resolve", h.resolve)
}

// RegisterBlacklist mounts the blacklist admin endpoints
func RegisterBlacklist(r httpkit.Router, s *svc.Service) {
	registerValidators()
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.blacklist)
	httpkit.PostJSON[domain.BlacklistInput](r, "/", h.addBlacklist)
	httpkit.Delete(r, "/{entry}", h.removeBlacklist)
}

type handlers struct{ svc *svc.Service }

// param reads a path parameter; chi matches on the raw path so escapes survive
func param(r *stdhttp.Request, name string) (string, error) {
	v, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil {
		return "", perr.WithField(perr.InvalidArgf("bad %s", name), name)
	}
	return v, nil
}

// swagger:route POST /listings/intake Listings listingsIntake
// @Summary Classify one chat message and admit it when it qualifies
// @Tags Listings
// @Accept json
// @Produce json
// @Param payload body domain.IntakeInput true "Message"
// @Success 200 {object} domain.IntakeResult "ok"
// @Router /listings/intake [post]
func (h *handlers) intake(r *stdhttp.Request, in domain.IntakeInput) (any, error) {
	return h.svc.Intake(r.Context(), in)
}

// swagger:route POST /listings/search Listings listingsSearch
// @Summary Listings on a route, newest first
// @Tags Listings
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Route"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /listings/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// swagger:route GET /listings/query Listings listingsQuery
// @Summary Free text route query such as "istanbuldan ankaraya"
// @Tags Listings
// @Produce json
// @Param q query string true "Query"
// @Success 200 {object} domain.QueryResult "ok"
// @Router /listings/query [get]
func (h *handlers) query(r *stdhttp.Request) (any, error) {
	q := r.URL.Query().Get("q")
	if q == "" {
		return nil, perr.WithField(perr.InvalidArgf("q is required"), "q")
	}
	return h.svc.Query(r.Context(), q)
}

// swagger:route GET /listings/stats Listings listingsStats
// @Summary Store size, TTL and recent admission outcomes
// @Tags Listings
// @Produce json
// @Success 200 {object} domain.Stats "ok"
// @Router /listings/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context()), nil
}

// swagger:route GET /listings/{id} Listings listingsGet
// @Summary One live listing
// @Tags Listings
// @Produce json
// @Param id path string true "Listing id"
// @Success 200 {object} domain.Listing "ok"
// @Router /listings/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := param(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route GET /places/resolve Places placesResolve
// @Summary Expand a place name to its province and districts
// @Tags Places
// @Produce json
// @Param name query string true "Place name"
// @Success 200 {object} domain.ResolveResult "ok"
// @Router /places/resolve [get]
func (h *handlers) resolve(r *stdhttp.Request) (any, error) {
	return h.svc.Resolve(r.Context(), r.URL.Query().Get("name"))
}

// swagger:route GET /blacklist Blacklist blacklistList
// @Summary Current blacklist entries
// @Tags Blacklist
// @Produce json
// @Success 200 {object} domain.BlacklistResult "ok"
// @Router /blacklist [get]
func (h *handlers) blacklist(r *stdhttp.Request) (any, error) {
	return h.svc.Blacklist(r.Context()), nil
}

// swagger:route POST /blacklist Blacklist blacklistAdd
// @Summary Add blacklist entries
// @Tags Blacklist
// @Accept json
// @Produce json
// @Param payload body domain.BlacklistInput true "Entries"
// @Success 200 {object} domain.BlacklistResult "ok"
// @Router /blacklist [post]
func (h *handlers) addBlacklist(r *stdhttp.Request, in domain.BlacklistInput) (any, error) {
	return h.svc.AddBlacklist(r.Context(), in)
}

// swagger:route DELETE /blacklist/{entry} Blacklist blacklistRemove
// @Summary Remove one blacklist entry
// @Tags Blacklist
// @Produce json
// @Param entry path string true "Entry, path escaped"
// @Success 200 {object} domain.BlacklistResult "ok"
// @Router /blacklist/{entry} [delete]
func (h *handlers) removeBlacklist(r *stdhttp.Request) (any, error) {
	entry, err := param(r, "entry")
	if err != nil {
		return nil, err
	}
	return h.svc.RemoveBlacklist(r.Context(), entry)
}
