package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/mkicon/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const (
	detailEntry     = "entry"
	detailContainer = "container"
)

// NewSQLiteStore opens (or creates) a SQLite database at path and
// creates tables and indexes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp   TEXT    NOT NULL,
    out_dir     TEXT    NOT NULL DEFAULT '',
    standalone  INTEGER NOT NULL DEFAULT 0,
    succeeded   INTEGER NOT NULL DEFAULT 0,
    failed      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_details (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id  INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    kind    TEXT    NOT NULL,
    seq     INTEGER NOT NULL,
    name    TEXT    NOT NULL,
    tool    TEXT    NOT NULL DEFAULT '',
    error   TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_details_run    ON run_details(run_id, kind, seq);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LogRun(r Run) error {
	standalone := 0
	if r.Standalone {
		standalone = 1
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, out_dir, standalone, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Time.Format(time.RFC3339), r.OutDir, standalone, r.Succeeded(), r.Failed(),
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	insert := func(kind string, details []Detail) error {
		for i, d := range details {
			if _, err := tx.Exec(
				`INSERT INTO run_details (run_id, kind, seq, name, tool, error)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				runID, kind, i+1, d.Name, d.Tool, d.Err,
			); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(detailEntry, r.Entries); err != nil {
		return err
	}
	if err := insert(detailContainer, r.Containers); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Runs(limit int) ([]Run, error) {
	query := `SELECT id, timestamp, out_dir, standalone FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	var runs []Run
	for rows.Next() {
		var id int64
		var ts, outDir string
		var standalone int
		if err := rows.Scan(&id, &ts, &outDir, &standalone); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}
		ids = append(ids, id)
		runs = append(runs, Run{Time: t, OutDir: outDir, Standalone: standalone != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		if err := s.loadDetails(id, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *SQLiteStore) loadDetails(runID int64, r *Run) error {
	rows, err := s.db.Query(
		`SELECT kind, name, tool, error FROM run_details
		 WHERE run_id = ? ORDER BY kind, seq`, runID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var d Detail
		if err := rows.Scan(&kind, &d.Name, &d.Tool, &d.Err); err != nil {
			return err
		}
		switch kind {
		case detailEntry:
			r.Entries = append(r.Entries, d)
		case detailContainer:
			r.Containers = append(r.Containers, d)
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM run_details`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM runs`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Path() string { return s.path }
