package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/songscribbler/songscribbler/pkg/types"
)

// schemaVersion is the layout this build reads and writes. It is stored in
// PRAGMA user_version.
const schemaVersion = 3

// Schema DDL for the songs table.
const (
	createSongs = `CREATE TABLE songs (
    _id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    chords TEXT NOT NULL DEFAULT '',
    scrollspeed INTEGER NOT NULL DEFAULT 2
);`

	dropSongs = `DROP TABLE IF EXISTS songs;`

	// Version 2 carried title, body and scrollspeed only.
	addChordsColumn = `ALTER TABLE songs ADD COLUMN chords TEXT NOT NULL DEFAULT '';`
)

// migrations maps a schema version to the statements that upgrade it to the
// next version. A version without an entry has no fine-grained migration and
// falls back to drop and recreate.
var migrations = map[int][]string{
	2: {addChordsColumn},
}

// upgradeSchema brings db to schemaVersion. Unknown old layouts are dropped
// and recreated unless strict is set.
func (b *Backend) upgradeSchema(db *sql.DB, strict bool) error {
	version, err := detectVersion(db)
	if err != nil {
		return err
	}

	switch {
	case version == schemaVersion:
		return nil
	case version == 0:
		b.logger.Info("creating schema", "version", schemaVersion)
		return inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(createSongs); err != nil {
				return err
			}
			return setVersion(tx, schemaVersion)
		})
	case version > schemaVersion:
		return fmt.Errorf("%w: found %d, supported %d", types.ErrSchemaTooNew, version, schemaVersion)
	}

	steps, ok := migrationPath(version)
	if !ok {
		if strict {
			return fmt.Errorf("%w: from version %d", types.ErrNoMigrationPath, version)
		}
		b.logger.Warn("upgrading database, which will destroy all old data",
			"from", version, "to", schemaVersion)
		return inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(dropSongs); err != nil {
				return err
			}
			if _, err := tx.Exec(createSongs); err != nil {
				return err
			}
			return setVersion(tx, schemaVersion)
		})
	}

	b.logger.Info("migrating schema", "from", version, "to", schemaVersion)
	return inTx(db, func(tx *sql.Tx) error {
		for _, stmt := range steps {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("migrate from %d: %w", version, err)
			}
		}
		return setVersion(tx, schemaVersion)
	})
}

// migrationPath collects the statements that take version to schemaVersion.
// It reports false if any intermediate step is missing.
func migrationPath(version int) ([]string, bool) {
	var steps []string
	for v := version; v < schemaVersion; v++ {
		stmts, ok := migrations[v]
		if !ok {
			return nil, false
		}
		steps = append(steps, stmts...)
	}
	return steps, true
}

// detectVersion reads PRAGMA user_version. A zero version with an existing
// songs table is a database created without version stamping; its columns
// decide between layout 2 and 3.
func detectVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	if version != 0 {
		return version, nil
	}

	columns, err := songColumns(db)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, nil
	}
	if columns["chords"] {
		return 3, nil
	}
	return 2, nil
}

// songColumns returns the column names of the songs table, or an empty map
// if the table does not exist.
func songColumns(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query("SELECT name FROM pragma_table_info('songs')")
	if err != nil {
		return nil, fmt.Errorf("inspect songs table: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

func setVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version))
	return err
}

// inTx runs fn in a transaction, committing on success.
func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
