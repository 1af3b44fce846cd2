// Package storage defines the Storage interface — a contract that any
// persistence backend must satisfy to hold the university's records.
//
// The domain model never imports this package. Commands load a
// types.Snapshot, rebuild a university.Registry from it, work on the
// registry, and hand a fresh snapshot back. Tests pass an in-memory fake
// that satisfies the interface, so no real database is needed for them.
package storage

import "github.com/aanand-mishra/university/internal/types"

// Storage is the persistence contract.
type Storage interface {
	// SaveSnapshot replaces everything stored with snap. Either the whole
	// snapshot is written or nothing changes.
	SaveSnapshot(snap types.Snapshot) error

	// LoadSnapshot returns everything stored. An empty store yields an
	// empty snapshot, not an error.
	LoadSnapshot() (types.Snapshot, error)

	// Close releases the underlying resources.
	Close() error
}
