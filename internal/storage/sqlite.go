package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite history cache.
type DB struct {
	db *sql.DB
}

// selectRunFields is the standard field list for SELECT queries.
const selectRunFields = `id, paper, checked_at,
	regex_citations, ref_count,
	body_matched, body_fuzzy, body_unmatched,
	ref_cited, ref_fuzzy, ref_uncited,
	unmatched_json, uncited_json`

// OpenDB opens or creates the history cache database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			paper TEXT NOT NULL,
			checked_at TEXT NOT NULL,
			regex_citations INTEGER NOT NULL,
			ref_count INTEGER NOT NULL,
			body_matched INTEGER NOT NULL,
			body_fuzzy INTEGER NOT NULL,
			body_unmatched INTEGER NOT NULL,
			ref_cited INTEGER NOT NULL,
			ref_fuzzy INTEGER NOT NULL,
			ref_uncited INTEGER NOT NULL,
			unmatched_json TEXT,
			uncited_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_runs_paper ON runs(paper);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the cache and rebuilds it from the history file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM runs"); err != nil {
		return 0, fmt.Errorf("clearing runs table: %w", err)
	}

	stmt, err := d.db.Prepare(`
		INSERT INTO runs (` + selectRunFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing runs insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		unmatchedJSON, err := marshalList(rec.UnmatchedCitations)
		if err != nil {
			return 0, fmt.Errorf("marshaling unmatched for %s: %w", rec.ID, err)
		}
		uncitedJSON, err := marshalList(rec.UncitedReferences)
		if err != nil {
			return 0, fmt.Errorf("marshaling uncited for %s: %w", rec.ID, err)
		}

		_, err = stmt.Exec(
			rec.ID, rec.Paper, rec.CheckedAt.Format(time.RFC3339Nano),
			rec.Stats.RegexCitations, rec.Stats.References,
			rec.Stats.BodyMatched, rec.Stats.BodyFuzzy, rec.Stats.BodyUnmatched,
			rec.Stats.RefCited, rec.Stats.RefFuzzy, rec.Stats.RefUncited,
			unmatchedJSON, uncitedJSON,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting run %s: %w", rec.ID, err)
		}
	}

	return len(records), nil
}

// List returns run records, newest first. paper filters to one manuscript
// when non-empty; limit <= 0 means no limit.
func (d *DB) List(paper string, limit int) ([]RunRecord, error) {
	query := `SELECT ` + selectRunFields + ` FROM runs`
	var args []interface{}

	if paper != "" {
		query += " WHERE paper = ?"
		args = append(args, paper)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the total number of cached runs.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

func scanRun(rows *sql.Rows) (RunRecord, error) {
	var rec RunRecord
	var checkedAt string
	var unmatchedJSON, uncitedJSON sql.NullString

	err := rows.Scan(
		&rec.ID, &rec.Paper, &checkedAt,
		&rec.Stats.RegexCitations, &rec.Stats.References,
		&rec.Stats.BodyMatched, &rec.Stats.BodyFuzzy, &rec.Stats.BodyUnmatched,
		&rec.Stats.RefCited, &rec.Stats.RefFuzzy, &rec.Stats.RefUncited,
		&unmatchedJSON, &uncitedJSON,
	)
	if err != nil {
		return rec, err
	}

	if rec.CheckedAt, err = time.Parse(time.RFC3339Nano, checkedAt); err != nil {
		return rec, fmt.Errorf("parsing checked_at for %s: %w", rec.ID, err)
	}
	if err := unmarshalList(unmatchedJSON, &rec.UnmatchedCitations); err != nil {
		return rec, fmt.Errorf("parsing unmatched JSON for %s: %w", rec.ID, err)
	}
	if err := unmarshalList(uncitedJSON, &rec.UncitedReferences); err != nil {
		return rec, fmt.Errorf("parsing uncited JSON for %s: %w", rec.ID, err)
	}

	return rec, nil
}

func marshalList(items []string) (sql.NullString, error) {
	if len(items) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalList(ns sql.NullString, dst *[]string) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), dst)
}
