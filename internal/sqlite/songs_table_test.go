package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songscribbler/songscribbler/pkg/types"
)

// setupBackend creates an attached Backend in a temp directory and returns
// it with its songs table. Detach runs on cleanup.
func setupBackend(t *testing.T) (*Backend, types.SongTable) {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })

	table, err := b.Songs()
	require.NoError(t, err)
	return b, table
}

func TestSongsTable_CreateThenGet(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		body   string
		chords string
		speed  int
	}{
		{name: "all fields set", title: "Amazing Grace", body: "Amazing grace, how sweet the sound", chords: "G C G D", speed: 3},
		{name: "empty chords", title: "Hallelujah", body: "I heard there was a secret chord", chords: "", speed: 2},
		{name: "empty title and body are stored", title: "", body: "", chords: "", speed: 1},
		{name: "multiline body", title: "Verse", body: "line one\nline two\n\nline four", chords: "Am\nF", speed: 10},
		{name: "unicode text", title: "Café", body: "Ça plane pour moi ♪", chords: "E♭ B♭", speed: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, table := setupBackend(t)

			id, err := table.Create(tt.title, tt.body, tt.chords, tt.speed)
			require.NoError(t, err)
			assert.Greater(t, id, int64(0))

			got, err := table.Get(id)
			require.NoError(t, err)
			assert.Equal(t, &types.Song{
				SongID:      id,
				Title:       tt.title,
				Body:        tt.body,
				Chords:      tt.chords,
				ScrollSpeed: tt.speed,
			}, got)
		})
	}
}

func TestSongsTable_CreateRejectsNonPositiveSpeed(t *testing.T) {
	_, table := setupBackend(t)

	for _, speed := range []int{0, -1} {
		id, err := table.Create("t", "b", "", speed)
		assert.Equal(t, types.InvalidSongID, id)
		assert.ErrorIs(t, err, types.ErrInvalidSpeed)
	}

	songs, err := table.Fetch()
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestSongsTable_CreateFailureReturnsSentinel(t *testing.T) {
	b, table := setupBackend(t)

	// Drop the table out from under the backend so the insert is rejected.
	_, err := b.db.Exec(dropSongs)
	require.NoError(t, err)

	id, err := table.Create("t", "b", "", 2)
	assert.Equal(t, types.InvalidSongID, id)
	assert.True(t, errors.Is(err, types.ErrPersistence), "got %v", err)
}

func TestSongsTable_GetMissing(t *testing.T) {
	_, table := setupBackend(t)

	_, err := table.Get(42)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = table.Get(0)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSongsTable_Fetch(t *testing.T) {
	t.Run("empty store returns empty slice", func(t *testing.T) {
		_, table := setupBackend(t)

		songs, err := table.Fetch()
		require.NoError(t, err)
		assert.NotNil(t, songs)
		assert.Empty(t, songs)
	})

	t.Run("two creates return both with distinct ids", func(t *testing.T) {
		_, table := setupBackend(t)

		id1, err := table.Create("First", "one", "", 2)
		require.NoError(t, err)
		id2, err := table.Create("Second", "two", "C", 4)
		require.NoError(t, err)
		assert.NotEqual(t, id1, id2)

		songs, err := table.Fetch()
		require.NoError(t, err)
		require.Len(t, songs, 2)
		assert.Equal(t, id1, songs[0].SongID)
		assert.Equal(t, "First", songs[0].Title)
		assert.Equal(t, id2, songs[1].SongID)
		assert.Equal(t, "Second", songs[1].Title)
		assert.Equal(t, 4, songs[1].ScrollSpeed)
	})
}

func TestSongsTable_Update(t *testing.T) {
	t.Run("reflects new values exactly", func(t *testing.T) {
		_, table := setupBackend(t)

		id, err := table.Create("Old", "old body", "C", 2)
		require.NoError(t, err)

		ok, err := table.Update(id, "New", "new body", "D G", 7)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := table.Get(id)
		require.NoError(t, err)
		assert.Equal(t, &types.Song{SongID: id, Title: "New", Body: "new body", Chords: "D G", ScrollSpeed: 7}, got)
	})

	t.Run("missing id returns false and mutates nothing", func(t *testing.T) {
		_, table := setupBackend(t)

		id, err := table.Create("Keep", "keep body", "", 2)
		require.NoError(t, err)

		ok, err := table.Update(id+100, "X", "Y", "Z", 9)
		require.NoError(t, err)
		assert.False(t, ok)

		songs, err := table.Fetch()
		require.NoError(t, err)
		require.Len(t, songs, 1)
		assert.Equal(t, &types.Song{SongID: id, Title: "Keep", Body: "keep body", Chords: "", ScrollSpeed: 2}, songs[0])
	})

	t.Run("non-positive speed is rejected", func(t *testing.T) {
		_, table := setupBackend(t)

		id, err := table.Create("Keep", "body", "", 2)
		require.NoError(t, err)

		ok, err := table.Update(id, "Keep", "body", "", 0)
		assert.False(t, ok)
		assert.ErrorIs(t, err, types.ErrInvalidSpeed)

		got, err := table.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 2, got.ScrollSpeed)
	})
}

func TestSongsTable_Delete(t *testing.T) {
	_, table := setupBackend(t)

	id, err := table.Create("Gone", "soon", "", 2)
	require.NoError(t, err)

	ok, err := table.Delete(id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = table.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	ok, err = table.Delete(id)
	require.NoError(t, err)
	assert.False(t, ok, "second delete should report false")
}

func TestSongsTable_AmazingGraceScenario(t *testing.T) {
	_, table := setupBackend(t)

	id, err := table.Create("Amazing Grace", "Amazing grace...", "G C G D", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := table.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ScrollSpeed)

	ok, err := table.Update(1, got.Title, got.Body, got.Chords, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = table.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ScrollSpeed)
	assert.Equal(t, "Amazing Grace", got.Title)
	assert.Equal(t, "G C G D", got.Chords)
}

func TestSongsTable_IDsAreNotReused(t *testing.T) {
	_, table := setupBackend(t)

	id1, err := table.Create("a", "a", "", 2)
	require.NoError(t, err)
	_, err = table.Delete(id1)
	require.NoError(t, err)

	id2, err := table.Create("b", "b", "", 2)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)
}
