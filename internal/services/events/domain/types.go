// Package domain defines admission events
package domain

import (
	"context"
	"time"
)

// Event is one intake outcome as written to the listing_events table
type Event struct {
	ID          string
	At          time.Time
	Reason      string
	ContentHash int32
	Cities      []string
	ChatID      string
	Admitted    bool
	Duplicate   bool
}

// Writer persists a batch of events
type Writer interface {
	WriteBatch(ctx context.Context, evs []Event) error
}

// Reader aggregates stored events
type Reader interface {
	CountByReason(ctx context.Context, since time.Time) (map[string]int64, error)
}
