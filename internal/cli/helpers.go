package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/songscribbler/songscribbler/internal/sqlite"
	"github.com/songscribbler/songscribbler/pkg/types"
)

// attachBackend resolves the storage config, creates a SQLite backend and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, types.SongTable, error) {
	cfg, err := storageConfig()
	if err != nil {
		return nil, nil, sysError{err}
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, nil, sysError{fmt.Errorf("attach songbook: %w", err)}
	}

	table, err := backend.Songs()
	if err != nil {
		backend.Detach()
		return nil, nil, sysError{err}
	}
	return backend, table, nil
}

// parseID parses a song ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, arg)
	}
	return id, nil
}

// readText returns the contents of path, or of stdin when path is "-".
func readText(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", userError{fmt.Errorf("read %s: %w", path, err)}
	}
	return string(data), nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
