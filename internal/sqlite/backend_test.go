// Tests for SQLite backend lifecycle.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/songscribbler/songscribbler/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, DatabaseFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", DatabaseFile)
	}

	// Verify double attach fails
	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	if _, err := os.Stat(filepath.Join(dataDir, DatabaseFile)); err != nil {
		t.Errorf("expected database in nested data dir: %v", err)
	}
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	if err != types.ErrBackendUnknown {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}

	if _, err := b.Songs(); err != types.ErrDetached {
		t.Errorf("expected ErrDetached after failed attach, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	table, err := b.Songs()
	if err != nil {
		t.Fatalf("Songs failed: %v", err)
	}

	err = b.Detach()
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Verify idempotent
	err = b.Detach()
	if err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	// Verify operations fail after detach
	if _, err := b.Songs(); err != types.ErrDetached {
		t.Errorf("expected ErrDetached, got %v", err)
	}
	if _, err := table.Fetch(); err != types.ErrDetached {
		t.Errorf("expected ErrDetached from held table, got %v", err)
	}
	if id, err := table.Create("t", "b", "", 2); err != types.ErrDetached || id != types.InvalidSongID {
		t.Errorf("expected (InvalidSongID, ErrDetached), got (%d, %v)", id, err)
	}
}

func TestBackend_ReattachKeepsSongs(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	table, _ := b.Songs()
	id, err := table.Create("Amazing Grace", "Amazing grace...", "G C G D", 3)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b.Detach()

	if err := b.Attach(config); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b.Detach()

	table, _ = b.Songs()
	got, err := table.Get(id)
	if err != nil {
		t.Fatalf("Get after re-attach failed: %v", err)
	}
	if got.Title != "Amazing Grace" || got.ScrollSpeed != 3 {
		t.Errorf("unexpected song after re-attach: %+v", got)
	}
}

func TestBackend_AttachRequiresDataDir(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite})
	if err != types.ErrDataDirEmpty {
		t.Errorf("expected ErrDataDirEmpty, got %v", err)
	}
}
