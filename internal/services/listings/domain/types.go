// Package domain defines the listing types shared by the store, the mirror
// and the HTTP surface
package domain

import (
	"yukbul/internal/core/extract"
	"yukbul/internal/core/gazetteer"
	"yukbul/internal/core/query"
)

// Listing is one admitted classified. It is never modified once stored.
type Listing struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Cities    []string   `json:"cities"`
	LinePairs [][]string `json:"line_pairs,omitempty"`
	ChatName  string     `json:"chat_name,omitempty"`
	ChatID    string     `json:"chat_id,omitempty"`
	Sender    string     `json:"sender,omitempty"`
	Timestamp int64      `json:"timestamp"` // epoch ms, 0 means now at add time
	Hash      int32      `json:"hash"`
}

// Aliases is an optional set of names for one search endpoint.
// nil and empty both mean absent, in which case the bare endpoint is used.
type Aliases []string

// Present reports whether the set carries at least one name
func (a Aliases) Present() bool { return len(a) > 0 }

// IntakeInput is one chat message offered to the engine
type IntakeInput struct {
	ID        string `json:"id,omitempty"        validate:"omitempty,max=256"`
	Text      string `json:"text"                validate:"required,max=20000"`
	ChatName  string `json:"chat_name,omitempty" validate:"omitempty,max=256"`
	ChatID    string `json:"chat_id,omitempty"   validate:"omitempty,max=256"`
	Sender    string `json:"sender,omitempty"    validate:"omitempty,max=128"`
	Timestamp int64  `json:"timestamp,omitempty" validate:"gte=0"`
	Channel   bool   `json:"channel,omitempty"`
}

// IntakeResult reports what happened to one message
type IntakeResult struct {
	Admitted  bool           `json:"admitted"`
	Duplicate bool           `json:"duplicate"`
	Reason    extract.Reason `json:"reason"`
	ID        string         `json:"id,omitempty"`
	Hash      int32          `json:"hash"`
	Cities    []string       `json:"cities"`
	Phones    []string       `json:"phones,omitempty"`
	Augmented bool           `json:"augmented,omitempty"`
}

// SearchInput asks for listings on a route; no destination means any
// listing touching the origin
type SearchInput struct {
	Origin      string `json:"origin"                validate:"required,max=64,normtext"`
	Destination string `json:"destination,omitempty" validate:"omitempty,max=64,normtext"`
	Limit       int    `json:"limit,omitempty"       validate:"gte=0,lte=500"`
}

// SearchResult carries the resolved endpoints with the matches, newest first
type SearchResult struct {
	Origin      gazetteer.Resolution  `json:"origin"`
	Destination *gazetteer.Resolution `json:"destination,omitempty"`
	Total       int                   `json:"total"`
	Listings    []Listing             `json:"listings"`
}

// QueryResult is a parsed free text query with its search result
type QueryResult struct {
	Query query.Query `json:"query"`
	SearchResult
}

// ResolveResult is a place resolution plus fuzzy suggestions when the name
// is unknown
type ResolveResult struct {
	gazetteer.Resolution
	Suggestions []gazetteer.Suggestion `json:"suggestions,omitempty"`
}

// Stats summarizes the live store
type Stats struct {
	Size          int              `json:"size"`
	TTL           string           `json:"ttl"`
	BlacklistSize int              `json:"blacklist_size"`
	PhoneMode     string           `json:"phone_mode"`
	Mirror        bool             `json:"mirror"`
	Events        map[string]int64 `json:"events,omitempty"`
}

// BlacklistInput adds entries to the blacklist
type BlacklistInput struct {
	Entries []string `json:"entries" validate:"required,min=1,dive,required,max=256,normtext"`
}

// BlacklistResult lists the blacklist after a change
type BlacklistResult struct {
	Added   int      `json:"added,omitempty"`
	Entries []string `json:"entries"`
}
