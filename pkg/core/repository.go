package core

import "context"

// Repository defines the contract for persisting a whole Snapshot.
// Adhering to this interface keeps the core independent of the file
// format and location.
type Repository interface {
	// Load returns the stored snapshot. When nothing is stored yet it
	// returns DefaultSnapshot() and no error. When the stored data cannot
	// be read it still returns a usable snapshot together with a
	// *PersistenceError describing what was skipped.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the stored snapshot. Implementations must not leave a
	// partially written snapshot behind.
	Save(ctx context.Context, snap Snapshot) error

	// Initialize ensures the underlying storage is ready (e.g. create directories).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that report changes made
// to the stored snapshot by other processes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
