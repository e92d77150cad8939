package lead

import "context"

// Store persists leads. Lookups return (nil, nil) when no row matches.
type Store interface {
	// FindByPhone returns the first lead with the given phone number.
	FindByPhone(ctx context.Context, phone string) (*Record, error)

	// FindByEmail returns the first lead with the given email address.
	FindByEmail(ctx context.Context, email string) (*Record, error)

	// Insert creates a lead row and returns its id.
	Insert(ctx context.Context, n Normalized) (int64, error)

	// Update overwrites a lead row, preserving the stored email and phone
	// when the incoming value is empty.
	Update(ctx context.Context, id int64, n Normalized) error

	// InTx runs fn against a store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Store) error) error

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	// Migrate creates the leads table if it does not exist.
	Migrate(ctx context.Context) error
}
