// Package sqlite provides the public API for the SQLite Songbook backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/songscribbler/songscribbler/internal/sqlite"
	"github.com/songscribbler/songscribbler/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/var/lib/songscribbler",
//	})
//	defer backend.Detach()
func NewBackend() types.Songbook {
	return sqlite.NewBackend()
}
