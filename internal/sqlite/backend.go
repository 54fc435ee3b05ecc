// Package sqlite implements the SQLite storage backend for songscribbler.
// The database file is the source of truth; Attach brings its schema up to
// the current version before any table is handed out.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/songscribbler/songscribbler/pkg/types"
)

// DatabaseFile is the name of the SQLite file created inside DataDir.
const DatabaseFile = "songscribbler.db"

// Backend implements the Songbook interface on a single SQLite file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	songs    *songsTable
	logger   *slog.Logger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		logger: slog.Default().With("component", "sqlite"),
	}
}

// Songs returns the songs table.
// Returns ErrDetached if the backend is not attached.
func (b *Backend) Songs() (types.SongTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.songs, nil
}

// Attach opens (or creates) the database in DataDir and upgrades its schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(config.DataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// One connection serializes writers and keeps PRAGMA state consistent.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("open %s: %w", dbPath, err)
	}

	if err := b.upgradeSchema(db, config.StrictUpgrade); err != nil {
		db.Close()
		return fmt.Errorf("upgrade schema: %w", err)
	}

	b.db = db
	b.config = config
	b.songs = &songsTable{backend: b}
	b.attached = true

	b.logger.Debug("attached", "path", dbPath)
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Debug("detached")
	return nil
}
