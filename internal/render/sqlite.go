package render

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/benonymity/bible-compression/core/compressor"
	"github.com/benonymity/bible-compression/core/errors"
	"github.com/benonymity/bible-compression/core/stats"
)

const ratiosDDL = `CREATE TABLE IF NOT EXISTS ratios (
	level     TEXT    NOT NULL,
	position  INTEGER NOT NULL,
	item      TEXT    NOT NULL,
	algorithm TEXT    NOT NULL,
	ratio     REAL    NOT NULL,
	mean      REAL    NOT NULL,
	PRIMARY KEY (level, position, algorithm)
)`

// WriteSQLite exports the ranked entries into a SQLite database at path,
// one row per unit/algorithm pair. The position column records the rank
// order so queries can reproduce it. Re-exporting a level replaces its
// previous rows.
func WriteSQLite(path string, entries []stats.Entry, level string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(ratiosDDL); err != nil {
		return errors.Wrap(err, "creating ratios table")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ratios WHERE level = ?`, level); err != nil {
		return errors.Wrap(err, "clearing previous export")
	}

	stmt, err := tx.Prepare(`INSERT INTO ratios (level, position, item, algorithm, ratio, mean) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for pos, e := range entries {
		for _, algo := range compressor.Names() {
			if _, err := stmt.Exec(level, pos, e.ID, algo.String(), e.Ratios[algo], e.Mean); err != nil {
				return errors.Wrapf(err, "inserting %s/%s", e.ID, algo)
			}
		}
	}

	return tx.Commit()
}
