package domain

import (
	"context"
	"time"

	evdomain "yukbul/internal/services/events/domain"
)

// Mirror persists admitted listings so a restart inside the TTL keeps them
type Mirror interface {
	// Insert stores l unless its hash is already present; false means it was
	Insert(ctx context.Context, l Listing) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Recent(ctx context.Context, since time.Time, limit int) ([]Listing, error)
}

// EventSink receives one event per intake outcome. Publish must not block.
type EventSink interface {
	Publish(ev evdomain.Event)
}

// EventCounter reads aggregated outcomes back for the stats endpoint
type EventCounter interface {
	CountByReason(ctx context.Context, since time.Time) (map[string]int64, error)
}

// ListingsPort is what other modules may call
type ListingsPort interface {
	Intake(ctx context.Context, in IntakeInput) (IntakeResult, error)
	Search(ctx context.Context, in SearchInput) (SearchResult, error)
	Stats(ctx context.Context) Stats
}
