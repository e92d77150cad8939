package campaign

import "context"

// Store persists campaigns and niches.
type Store interface {
	// ListRecentFirst returns campaigns ordered newest first.
	ListRecentFirst(ctx context.Context) ([]Record, error)

	// Create inserts a campaign and returns its id.
	Create(ctx context.Context, c Record) (int64, error)

	// FindOrCreateDefaultNiche returns the id of the default niche,
	// creating it on first use.
	FindOrCreateDefaultNiche(ctx context.Context) (int64, error)

	// Migrate creates the niches and campaigns tables if they do not exist.
	Migrate(ctx context.Context) error
}
