package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

// lockRetry is the polling interval while waiting for the export lock.
const lockRetry = 50 * time.Millisecond

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db   *sql.DB
	lock *flock.Flock // nil for in-memory databases
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
// Writers to the same file, in this or other processes, are serialized
// through a "<path>.lock" file.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	var lock *flock.Flock
	if !isMemory(path) {
		lock = flock.New(path + ".lock")

		// Enable WAL mode for better concurrency
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
		}
	} else {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, lock: lock}, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	corpus TEXT NOT NULL,
	created_at TEXT NOT NULL,
	documents INTEGER NOT NULL,
	distinct_tokens INTEGER NOT NULL,
	total_words INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_documents (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	token_count INTEGER NOT NULL,
	distinct_tokens INTEGER NOT NULL,
	PRIMARY KEY(run_id, name),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_frequencies (
	run_id TEXT NOT NULL,
	rank INTEGER NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, token),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_similarity (
	run_id TEXT NOT NULL,
	doc_a TEXT NOT NULL,
	doc_b TEXT NOT NULL,
	value REAL,
	PRIMARY KEY(run_id, doc_a, doc_b),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_tfidf (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	term TEXT NOT NULL,
	document TEXT NOT NULL,
	count INTEGER NOT NULL,
	value REAL,
	absent INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_corpus ON runs(corpus);
CREATE INDEX IF NOT EXISTS idx_run_tfidf_run ON run_tfidf(run_id, position);
`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveRun writes a run and all of its tables in one transaction
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id: %w", internalerr.ErrInvalidInput)
	}

	if s.lock != nil {
		ok, err := s.lock.TryLockContext(ctx, lockRetry)
		if err != nil {
			return fmt.Errorf("export lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("export lock: %w", internalerr.ErrStoreUnavailable)
		}
		defer s.lock.Unlock()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs WHERE id = ?`, r.ID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("save run %s: %w", r.ID, internalerr.ErrDuplicate)
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, corpus, created_at, documents, distinct_tokens, total_words)
VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Corpus, r.CreatedAt.UTC().Format(time.RFC3339Nano),
		r.Info.Documents, r.Info.DistinctTokens, r.Info.TotalWords,
	)
	if err != nil {
		return err
	}

	if err := insertDocuments(ctx, tx, r.ID, r.Documents); err != nil {
		return err
	}
	if err := insertFrequencies(ctx, tx, r.ID, r.Frequencies); err != nil {
		return err
	}
	if err := insertSimilarity(ctx, tx, r.ID, r.Similarity); err != nil {
		return err
	}
	if err := insertTFIDF(ctx, tx, r.ID, r.TFIDF); err != nil {
		return err
	}

	return tx.Commit()
}

func insertDocuments(ctx context.Context, tx *sql.Tx, runID string, docs []store.Document) error {
	if len(docs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_documents (run_id, position, name, token_count, distinct_tokens) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, d := range docs {
		if _, err := stmt.ExecContext(ctx, runID, i, d.Name, d.TokenCount, d.DistinctTokens); err != nil {
			return err
		}
	}
	return nil
}

func insertFrequencies(ctx context.Context, tx *sql.Tx, runID string, terms []store.TermCount) error {
	if len(terms) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_frequencies (run_id, rank, token, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, tc := range terms {
		if _, err := stmt.ExecContext(ctx, runID, tc.Rank, tc.Token, tc.Count); err != nil {
			return err
		}
	}
	return nil
}

func insertSimilarity(ctx context.Context, tx *sql.Tx, runID string, cells []store.SimilarityCell) error {
	if len(cells) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_similarity (run_id, doc_a, doc_b, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range cells {
		var value sql.NullFloat64
		if c.Defined && !math.IsNaN(c.Value) {
			value = sql.NullFloat64{Float64: c.Value, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, c.A, c.B, value); err != nil {
			return err
		}
	}
	return nil
}

func insertTFIDF(ctx context.Context, tx *sql.Tx, runID string, cells []store.TFIDFCell) error {
	if len(cells) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_tfidf (run_id, position, term, document, count, value, absent) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, c := range cells {
		// SQLite has no portable -Inf; the sentinel is stored as NULL + absent.
		var value sql.NullFloat64
		absent := 0
		if c.Absent || math.IsInf(c.Value, -1) {
			absent = 1
		} else {
			value = sql.NullFloat64{Float64: c.Value, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, i, c.Term, c.Document, c.Count, value, absent); err != nil {
			return err
		}
	}
	return nil
}

// GetRun loads a run with all of its tables
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		r       store.Run
		created string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, corpus, created_at, documents, distinct_tokens, total_words FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Corpus, &created, &r.Info.Documents, &r.Info.DistinctTokens, &r.Info.TotalWords)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return store.Run{}, fmt.Errorf("run %s: created_at: %w", id, err)
	}

	if r.Documents, err = s.loadDocuments(ctx, id); err != nil {
		return store.Run{}, err
	}
	if r.Frequencies, err = s.loadFrequencies(ctx, id); err != nil {
		return store.Run{}, err
	}
	if r.Similarity, err = s.loadSimilarity(ctx, id); err != nil {
		return store.Run{}, err
	}
	if r.TFIDF, err = s.loadTFIDF(ctx, id); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

func (s *sqliteStore) loadDocuments(ctx context.Context, id string) ([]store.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, token_count, distinct_tokens FROM run_documents WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Document
	for rows.Next() {
		var d store.Document
		if err := rows.Scan(&d.Name, &d.TokenCount, &d.DistinctTokens); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadFrequencies(ctx context.Context, id string) ([]store.TermCount, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT rank, token, count FROM run_frequencies WHERE run_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TermCount
	for rows.Next() {
		var tc store.TermCount
		if err := rows.Scan(&tc.Rank, &tc.Token, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadSimilarity(ctx context.Context, id string) ([]store.SimilarityCell, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT doc_a, doc_b, value FROM run_similarity WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.SimilarityCell
	for rows.Next() {
		var (
			c     store.SimilarityCell
			value sql.NullFloat64
		)
		if err := rows.Scan(&c.A, &c.B, &value); err != nil {
			return nil, err
		}
		c.Defined = value.Valid
		c.Value = math.NaN()
		if value.Valid {
			c.Value = value.Float64
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadTFIDF(ctx context.Context, id string) ([]store.TFIDFCell, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT term, document, count, value, absent FROM run_tfidf WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TFIDFCell
	for rows.Next() {
		var (
			c      store.TFIDFCell
			value  sql.NullFloat64
			absent int
		)
		if err := rows.Scan(&c.Term, &c.Document, &c.Count, &value, &absent); err != nil {
			return nil, err
		}
		c.Absent = absent != 0
		if c.Absent {
			c.Value = math.Inf(-1)
		} else {
			c.Value = value.Float64
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListRuns returns runs, oldest first, optionally filtered by corpus name
func (s *sqliteStore) ListRuns(ctx context.Context, corpus string) ([]store.RunSummary, error) {
	query := `SELECT id, corpus, created_at, documents FROM runs`
	var args []any
	if corpus != "" {
		query += ` WHERE corpus = ?`
		args = append(args, corpus)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunSummary
	for rows.Next() {
		var (
			sum     store.RunSummary
			created string
		)
		if err := rows.Scan(&sum.ID, &sum.Corpus, &created, &sum.Documents); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s: created_at: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
