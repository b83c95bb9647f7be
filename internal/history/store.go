// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a local record of fetch runs and the downloads
// they attempted.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// Run is one recorded invocation of the fetch pipeline.
type Run struct {
	ID         int64
	StartedAt  time.Time
	Query      string
	Filetype   string
	Site       string
	Results    int
	Matched    int
	Downloaded int
	Failed     int
}

// Download is one attempted file download within a run.
type Download struct {
	URL      string
	Filename string
	Bytes    int64
	Status   string
}

// Download status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Open opens or creates the history database at path and bootstraps the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			query TEXT NOT NULL,
			filetype TEXT NOT NULL,
			site TEXT NOT NULL,
			results INTEGER NOT NULL,
			matched INTEGER NOT NULL,
			downloaded INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			filename TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_run ON downloads(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun inserts a run and its downloads in one transaction and returns
// the new run ID.
func (s *Store) RecordRun(ctx context.Context, run Run, downloads []Download) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, query, filetype, site, results, matched, downloaded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339), run.Query, run.Filetype, run.Site,
		run.Results, run.Matched, run.Downloaded, run.Failed)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	for _, d := range downloads {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO downloads (run_id, url, filename, bytes, status) VALUES (?, ?, ?, ?, ?)`,
			runID, d.URL, d.Filename, d.Bytes, d.Status); err != nil {
			return 0, fmt.Errorf("inserting download record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run record: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, query, filetype, site, results, matched, downloaded, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Query, &r.Filetype, &r.Site,
			&r.Results, &r.Matched, &r.Downloaded, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunDownloads returns the download records of a run, in insertion order.
func (s *Store) RunDownloads(ctx context.Context, runID int64) ([]Download, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT url, filename, bytes, status FROM downloads WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	defer rows.Close()

	var downloads []Download
	for rows.Next() {
		var d Download
		if err := rows.Scan(&d.URL, &d.Filename, &d.Bytes, &d.Status); err != nil {
			return nil, fmt.Errorf("scanning download: %w", err)
		}
		downloads = append(downloads, d)
	}
	return downloads, rows.Err()
}
