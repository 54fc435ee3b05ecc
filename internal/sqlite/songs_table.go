package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/songscribbler/songscribbler/pkg/types"
)

// songsTable implements types.SongTable against the backend's database.
type songsTable struct {
	backend *Backend
}

// Create inserts a song and returns the rowid SQLite assigned to it.
func (t *songsTable) Create(title, body, chords string, scrollSpeed int) (int64, error) {
	if err := types.ValidateStoredSpeed(scrollSpeed); err != nil {
		return types.InvalidSongID, err
	}

	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return types.InvalidSongID, types.ErrDetached
	}

	res, err := t.backend.db.Exec(
		"INSERT INTO songs (title, body, chords, scrollspeed) VALUES (?, ?, ?, ?)",
		title, body, chords, scrollSpeed)
	if err != nil {
		return types.InvalidSongID, fmt.Errorf("insert song: %w: %w", types.ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.InvalidSongID, fmt.Errorf("insert song: %w: %w", types.ErrPersistence, err)
	}
	return id, nil
}

// Get retrieves a song by ID.
func (t *songsTable) Get(id int64) (*types.Song, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrDetached
	}

	var s types.Song
	err := t.backend.db.QueryRow(
		"SELECT _id, title, body, chords, scrollspeed FROM songs WHERE _id = ?", id).
		Scan(&s.SongID, &s.Title, &s.Body, &s.Chords, &s.ScrollSpeed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("song %d: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get song %d: %w: %w", id, types.ErrPersistence, err)
	}
	return &s, nil
}

// Fetch returns all songs in ID order.
func (t *songsTable) Fetch() ([]*types.Song, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrDetached
	}

	rows, err := t.backend.db.Query(
		"SELECT _id, title, body, chords, scrollspeed FROM songs ORDER BY _id")
	if err != nil {
		return nil, fmt.Errorf("fetch songs: %w: %w", types.ErrPersistence, err)
	}
	defer rows.Close()

	songs := make([]*types.Song, 0)
	for rows.Next() {
		var s types.Song
		if err := rows.Scan(&s.SongID, &s.Title, &s.Body, &s.Chords, &s.ScrollSpeed); err != nil {
			return nil, fmt.Errorf("scan song: %w: %w", types.ErrPersistence, err)
		}
		songs = append(songs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch songs: %w: %w", types.ErrPersistence, err)
	}
	return songs, nil
}

// Update rewrites title, body, chords and scroll speed together.
func (t *songsTable) Update(id int64, title, body, chords string, scrollSpeed int) (bool, error) {
	if err := types.ValidateStoredSpeed(scrollSpeed); err != nil {
		return false, err
	}

	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return false, types.ErrDetached
	}

	res, err := t.backend.db.Exec(
		"UPDATE songs SET title = ?, body = ?, chords = ?, scrollspeed = ? WHERE _id = ?",
		title, body, chords, scrollSpeed, id)
	if err != nil {
		return false, fmt.Errorf("update song %d: %w: %w", id, types.ErrPersistence, err)
	}
	return affected(res)
}

// Delete removes a song by ID.
func (t *songsTable) Delete(id int64) (bool, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return false, types.ErrDetached
	}

	res, err := t.backend.db.Exec("DELETE FROM songs WHERE _id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete song %d: %w: %w", id, types.ErrPersistence, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w: %w", types.ErrPersistence, err)
	}
	return n > 0, nil
}
