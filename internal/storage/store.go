// Package storage defines the injected store behind the news pipeline and its
// interchangeable backends. The backend is selected once at startup via
// configuration; the pipeline never falls back between backends at runtime.
package storage

import (
	"context"
	"time"

	"zaur-newsdesk/internal/model"
)

// Store is the persistence surface the pipeline consumes.
type Store interface {
	// Upsert writes an item. An unknown ID is inserted; a known ID is
	// replaced only when the incoming publish date is strictly newer.
	// Returns whether anything was written.
	Upsert(ctx context.Context, item model.NewsItem) (bool, error)

	// Query returns items, optionally filtered by category (empty string for
	// all), ordered by publish date descending.
	Query(ctx context.Context, category string) ([]model.NewsItem, error)

	// Prune keeps only the maxItems newest items by publish date and returns
	// how many were deleted. Idempotent.
	Prune(ctx context.Context, maxItems int) (int, error)

	// SaveComment persists the commentary for an item; the latest write wins.
	SaveComment(ctx context.Context, itemID, text string) error

	// GetComment returns the persisted comment for an item, "" when none.
	GetComment(ctx context.Context, itemID string) (string, error)

	// AddDiscovery records that an item was surfaced. Re-adding the same item
	// refreshes its timestamp instead of duplicating the record.
	AddDiscovery(ctx context.Context, itemID string) error

	// ListDiscoveries returns discovery records, newest first.
	ListDiscoveries(ctx context.Context) ([]model.DiscoveredItem, error)

	// PruneDiscoveries drops discovery records older than maxAge and returns
	// how many were deleted.
	PruneDiscoveries(ctx context.Context, maxAge time.Duration) (int, error)

	Close() error
}
