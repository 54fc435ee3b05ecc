package types

import "errors"

// Config holds backend selection and parameters for Songbook.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StrictUpgrade refuses the destructive drop-and-recreate fallback when
	// an old schema has no migration step. Attach then returns
	// ErrNoMigrationPath and leaves the database untouched.
	StrictUpgrade bool `json:"strict_upgrade" yaml:"strict_upgrade"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirEmpty   = errors.New("data directory must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate reports the first problem with c as one of the sentinels above.
func (c Config) Validate() error {
	switch {
	case c.Backend == "":
		return ErrBackendEmpty
	case !knownBackends[c.Backend]:
		return ErrBackendUnknown
	case c.DataDir == "":
		return ErrDataDirEmpty
	}
	return nil
}
