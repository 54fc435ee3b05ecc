package types

import "errors"

// InvalidSongID is returned by SongTable.Create when the insert fails.
// It is never assigned to a stored song.
const InvalidSongID int64 = -1

// SongTable provides CRUD operations over the songs table.
type SongTable interface {
	// Create inserts a new song and returns its store-assigned ID.
	// On failure it returns InvalidSongID together with the error, which
	// wraps ErrPersistence for storage failures or is ErrInvalidSpeed.
	Create(title, body, chords string, scrollSpeed int) (int64, error)

	// Get returns the song with the given ID.
	// Returns ErrNotFound if no song exists with that ID.
	Get(id int64) (*Song, error)

	// Fetch returns every song ordered by ID. An empty table yields an
	// empty, non-nil slice.
	Fetch() ([]*Song, error)

	// Update rewrites every mutable field of the song. It reports false,
	// and changes nothing, when no song exists with that ID.
	Update(id int64, title, body, chords string, scrollSpeed int) (bool, error)

	// Delete removes the song. It reports false when no song exists with
	// that ID.
	Delete(id int64) (bool, error)
}

// Table operation errors.
var (
	ErrNotFound     = errors.New("song not found")
	ErrInvalidID    = errors.New("invalid song ID")
	ErrInvalidSpeed = errors.New("invalid scroll speed")
	ErrPersistence  = errors.New("persistence failure")
)
