// Package types defines the Songbook and SongTable interfaces, the Song
// entity, and the standard error values for the songscribbler storage layer.
//
// Callers attach a Songbook to a backend, obtain the SongTable, and detach
// when done. Backends live in pkg/sqlite (public) and internal/sqlite.
package types
