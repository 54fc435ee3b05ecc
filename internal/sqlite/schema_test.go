package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songscribbler/songscribbler/pkg/types"
)

// Layouts written by earlier releases.
const (
	createSongsV1 = `CREATE TABLE songs (_id integer primary key autoincrement,
    title text not null, body text not null);`
	createSongsV2 = `CREATE TABLE songs (_id integer primary key autoincrement,
    title text not null, body text not null, scrollspeed integer not null);`
)

// seedLegacy writes a database with the given DDL and user_version into
// dataDir, runs the inserts, and closes it.
func seedLegacy(t *testing.T, dataDir, ddl string, version int, inserts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFile))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(ddl)
	require.NoError(t, err)
	for _, stmt := range inserts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	if version > 0 {
		_, err = db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version))
		require.NoError(t, err)
	}
}

func userVersion(t *testing.T, b *Backend) int {
	t.Helper()
	var v int
	require.NoError(t, b.db.QueryRow("PRAGMA user_version").Scan(&v))
	return v
}

func attach(t *testing.T, dataDir string, strict bool) (*Backend, error) {
	t.Helper()
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir, StrictUpgrade: strict})
	if err == nil {
		t.Cleanup(func() { b.Detach() })
	}
	return b, err
}

func TestSchema_FreshDatabase(t *testing.T) {
	b, err := attach(t, t.TempDir(), false)
	require.NoError(t, err)

	assert.Equal(t, schemaVersion, userVersion(t, b))

	columns, err := songColumns(b.db)
	require.NoError(t, err)
	for _, c := range []string{"_id", "title", "body", "chords", "scrollspeed"} {
		assert.True(t, columns[c], "missing column %s", c)
	}
}

func TestSchema_UpgradeFromVersion2PreservesSongs(t *testing.T) {
	dataDir := t.TempDir()
	seedLegacy(t, dataDir, createSongsV2, 2,
		`INSERT INTO songs (title, body, scrollspeed) VALUES ('Amazing Grace', 'Amazing grace...', 3)`,
		`INSERT INTO songs (title, body, scrollspeed) VALUES ('Hallelujah', 'I heard', 2)`)

	b, err := attach(t, dataDir, true)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, userVersion(t, b))

	table, err := b.Songs()
	require.NoError(t, err)
	songs, err := table.Fetch()
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "Amazing Grace", songs[0].Title)
	assert.Equal(t, 3, songs[0].ScrollSpeed)
	assert.Equal(t, "", songs[0].Chords)

	ok, err := table.Update(songs[1].SongID, "Hallelujah", "I heard", "C Am", 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSchema_UnstampedLegacyTableIsMigrated(t *testing.T) {
	dataDir := t.TempDir()
	seedLegacy(t, dataDir, createSongsV2, 0,
		`INSERT INTO songs (title, body, scrollspeed) VALUES ('Kept', 'body', 4)`)

	b, err := attach(t, dataDir, true)
	require.NoError(t, err)

	table, _ := b.Songs()
	songs, err := table.Fetch()
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Kept", songs[0].Title)
}

func TestSchema_NoMigrationPathFallsBackToRecreate(t *testing.T) {
	dataDir := t.TempDir()
	seedLegacy(t, dataDir, createSongsV1, 1,
		`INSERT INTO songs (title, body) VALUES ('Lost', 'gone')`)

	b, err := attach(t, dataDir, false)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, userVersion(t, b))

	table, _ := b.Songs()
	songs, err := table.Fetch()
	require.NoError(t, err)
	assert.Empty(t, songs, "destructive fallback drops old rows")

	id, err := table.Create("New", "body", "C", 2)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
}

func TestSchema_StrictRefusesDestructiveFallback(t *testing.T) {
	dataDir := t.TempDir()
	seedLegacy(t, dataDir, createSongsV1, 1,
		`INSERT INTO songs (title, body) VALUES ('Kept', 'safe')`)

	_, err := attach(t, dataDir, true)
	require.ErrorIs(t, err, types.ErrNoMigrationPath)

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFile))
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM songs").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSchema_NewerVersionIsRejected(t *testing.T) {
	dataDir := t.TempDir()
	seedLegacy(t, dataDir, createSongs, 7)

	_, err := attach(t, dataDir, false)
	assert.ErrorIs(t, err, types.ErrSchemaTooNew)
}

func TestMigrationPath(t *testing.T) {
	steps, ok := migrationPath(2)
	assert.True(t, ok)
	assert.Equal(t, []string{addChordsColumn}, steps)

	_, ok = migrationPath(1)
	assert.False(t, ok)

	steps, ok = migrationPath(schemaVersion)
	assert.True(t, ok)
	assert.Empty(t, steps)
}
