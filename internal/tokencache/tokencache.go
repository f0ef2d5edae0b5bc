// Package tokencache persists tokenization results keyed by document id
// and file modification time, so unchanged transcripts skip re-analysis
// across runs.
package tokencache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

const schema = `
CREATE TABLE IF NOT EXISTS tokens (
    doc_id TEXT PRIMARY KEY,
    mtime  INTEGER NOT NULL,
    tokens TEXT NOT NULL
);
`

// Store is the SQLite-backed token cache. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open creates or opens a cache database. Use ":memory:" for an ephemeral
// cache or a file path for a persistent one.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening token cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the cached tokens for a document, or ok=false when the
// document is missing or its modification time changed.
func (s *Store) Get(docID string, mtime int64) ([]grammar.Token, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cachedMtime int64
	var payload string
	err := s.db.QueryRow(`SELECT mtime, tokens FROM tokens WHERE doc_id = ?`, docID).
		Scan(&cachedMtime, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading token cache: %w", err)
	}
	if cachedMtime != mtime {
		return nil, false, nil
	}

	var tokens []grammar.Token
	if err := json.Unmarshal([]byte(payload), &tokens); err != nil {
		return nil, false, fmt.Errorf("decoding cached tokens for %s: %w", docID, err)
	}
	return tokens, true, nil
}

// Put stores tokens for a document, replacing any previous entry.
func (s *Store) Put(docID string, mtime int64, tokens []grammar.Token) error {
	payload, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encoding tokens for %s: %w", docID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		`INSERT INTO tokens (doc_id, mtime, tokens) VALUES (?, ?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET mtime = excluded.mtime, tokens = excluded.tokens`,
		docID, mtime, string(payload),
	)
	if err != nil {
		return fmt.Errorf("writing token cache for %s: %w", docID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
