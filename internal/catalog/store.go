// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite record of every download outcome. The
// catalog is an audit trail on the side: the filename encoding remains
// the contract between pipeline stages, and no stage consults the
// catalog to make decisions.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/corpus-engine/pkg/types"
)

const dbFile = "corpus.db"

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Entry is one recorded download outcome.
type Entry struct {
	Filename        string `json:"filename" yaml:"filename"`
	PaperID         string `json:"paper_id" yaml:"paper_id"`
	CorpusID        int64  `json:"corpus_id,omitempty" yaml:"corpus_id,omitempty"`
	DOI             string `json:"doi,omitempty" yaml:"doi,omitempty"`
	ArxivID         string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
	Title           string `json:"title" yaml:"title"`
	Year            int    `json:"year" yaml:"year"`
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	CitationCount   int    `json:"citation_count" yaml:"citation_count"`
	Venue           string `json:"venue,omitempty" yaml:"venue,omitempty"`
	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
	Status          string `json:"status" yaml:"status"`
	RecordedAt      string `json:"recorded_at" yaml:"recorded_at"`
}

// Open opens or creates the catalog database at cfg.Dir/corpus.db,
// creating the schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS downloads (
			filename TEXT PRIMARY KEY,
			paper_id TEXT,
			corpus_id INTEGER,
			doi TEXT,
			arxiv_id TEXT,
			title TEXT,
			year INTEGER,
			publication_date TEXT,
			citation_count INTEGER,
			venue TEXT,
			source TEXT,
			status TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_status ON downloads(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts the outcome for one paper, keyed by filename. Re-running
// a batch overwrites earlier outcomes for the same artifact.
func (s *Store) Record(paper types.CitingPaper, filename, source, status string) error {
	_, err := s.db.Exec(`
		INSERT INTO downloads
			(filename, paper_id, corpus_id, doi, arxiv_id, title, year,
			 publication_date, citation_count, venue, source, status, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			source = excluded.source,
			status = excluded.status,
			citation_count = excluded.citation_count,
			recorded_at = excluded.recorded_at`,
		filename, paper.PaperID, paper.ExternalIDs.CorpusID, paper.ExternalIDs.DOI,
		paper.ExternalIDs.ArXiv, paper.Title, paper.Year, paper.PublicationDate,
		paper.CitationCount, paper.Venue, source, status,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording %s: %w", filename, err)
	}
	return nil
}

// List returns the most recently recorded entries, newest first. limit 0
// means all.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
		SELECT filename, paper_id, corpus_id, doi, arxiv_id, title, year,
		       publication_date, citation_count, venue, source, status, recorded_at
		FROM downloads
		ORDER BY recorded_at DESC, filename`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Filename, &e.PaperID, &e.CorpusID, &e.DOI, &e.ArxivID,
			&e.Title, &e.Year, &e.PublicationDate, &e.CitationCount, &e.Venue,
			&e.Source, &e.Status, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns the number of entries per status.
func (s *Store) Stats() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM downloads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		stats[status] = count
	}
	return stats, rows.Err()
}
