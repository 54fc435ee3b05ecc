// Package songlist lists the stored songs and hands a chosen song to an
// editor session.
package songlist

import (
	"github.com/songscribbler/songscribbler/internal/editor"
	"github.com/songscribbler/songscribbler/pkg/types"
)

// Controller maps list actions onto the songs table.
type Controller struct {
	table types.SongTable
}

// New returns a list controller over table.
func New(table types.SongTable) *Controller {
	return &Controller{table: table}
}

// Songs returns every stored song.
func (c *Controller) Songs() ([]*types.Song, error) {
	return c.table.Fetch()
}

// Select opens the song with the given ID for editing.
func (c *Controller) Select(id int64) (*editor.Editor, error) {
	return editor.Open(c.table, id)
}

// New starts an editor on a blank song.
func (c *Controller) New() *editor.Editor {
	return editor.New(c.table)
}

// Remove deletes the song and reports whether it existed.
func (c *Controller) Remove(id int64) (bool, error) {
	return c.table.Delete(id)
}
