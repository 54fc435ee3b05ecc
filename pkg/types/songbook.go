package types

import "errors"

// Songbook defines the interface for backend-agnostic song storage.
// Callers attach to a backend, access the songs table, and detach when done.
type Songbook interface {
	// Songs returns the table holding every song record.
	// Returns ErrDetached if the Songbook is not attached.
	Songs() (SongTable, error)

	// Attach connects the Songbook to the backend described by config.
	// Creates the DataDir if it does not exist and brings the schema up to
	// the current version. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, table operations return ErrDetached.
	Detach() error
}

// Songbook lifecycle errors.
var (
	ErrDetached        = errors.New("songbook is detached")
	ErrAlreadyAttached = errors.New("songbook is already attached")
)

// Schema errors returned by Attach.
var (
	ErrSchemaTooNew    = errors.New("database schema is newer than this build")
	ErrNoMigrationPath = errors.New("no migration path for database schema")
)
