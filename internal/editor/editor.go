// Package editor holds an in-memory draft of one song and persists it
// through a SongTable when the edit session saves or closes.
package editor

import (
	"errors"
	"fmt"

	"github.com/songscribbler/songscribbler/pkg/types"
)

// ErrEditorClosed is returned by any operation after Close.
var ErrEditorClosed = errors.New("editor is closed")

// Draft is the editable copy of a song. SongID is zero until the draft has
// been created in the store.
type Draft struct {
	SongID      int64
	Title       string
	Body        string
	Chords      string
	ScrollSpeed int
}

// Editor owns a Draft for the lifetime of one edit session.
type Editor struct {
	table  types.SongTable
	draft  Draft
	closed bool
}

// New starts an editor on a blank draft with the default scroll speed.
func New(table types.SongTable) *Editor {
	return &Editor{
		table: table,
		draft: Draft{ScrollSpeed: types.DefaultScrollSpeed},
	}
}

// Open loads song id into a new editor.
// Returns an error wrapping types.ErrNotFound if the song does not exist.
func Open(table types.SongTable, id int64) (*Editor, error) {
	s, err := table.Get(id)
	if err != nil {
		return nil, err
	}
	return &Editor{
		table: table,
		draft: Draft{
			SongID:      s.SongID,
			Title:       s.Title,
			Body:        s.Body,
			Chords:      s.Chords,
			ScrollSpeed: s.ScrollSpeed,
		},
	}, nil
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() Draft { return e.draft }

func (e *Editor) SetTitle(title string)   { e.draft.Title = title }
func (e *Editor) SetBody(body string)     { e.draft.Body = body }
func (e *Editor) SetChords(chords string) { e.draft.Chords = chords }

// SetScrollSpeed changes the draft's speed. The speed must lie within the
// selectable range.
func (e *Editor) SetScrollSpeed(speed int) error {
	if err := types.ValidateSelectableSpeed(speed); err != nil {
		return err
	}
	e.draft.ScrollSpeed = speed
	return nil
}

// Save writes the draft. The first save of a new draft creates the song and
// records its ID; later saves update it. A failed create leaves SongID at
// zero so the next Save retries the create.
func (e *Editor) Save() (int64, error) {
	if e.closed {
		return 0, ErrEditorClosed
	}

	d := e.draft
	if d.SongID == 0 {
		id, err := e.table.Create(d.Title, d.Body, d.Chords, d.ScrollSpeed)
		if err != nil || id <= 0 {
			if err == nil {
				err = fmt.Errorf("create returned id %d: %w", id, types.ErrPersistence)
			}
			return 0, err
		}
		e.draft.SongID = id
		return id, nil
	}

	ok, err := e.table.Update(d.SongID, d.Title, d.Body, d.Chords, d.ScrollSpeed)
	if err != nil {
		return d.SongID, err
	}
	if !ok {
		return d.SongID, fmt.Errorf("song %d: %w", d.SongID, types.ErrNotFound)
	}
	return d.SongID, nil
}

// Close saves the draft and ends the session. The session ends even when
// the save fails; the save error is returned.
func (e *Editor) Close() (int64, error) {
	if e.closed {
		return e.draft.SongID, ErrEditorClosed
	}
	id, err := e.Save()
	e.closed = true
	return id, err
}
