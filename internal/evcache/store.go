package evcache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

// Store persists validated cache entries in DuckDB so evidence fetched
// in one run survives into the next. The same validation rules apply
// on read as for the in-memory tier.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// OpenStore opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func OpenStore(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS evidence_cache (
		category VARCHAR,
		source VARCHAR,
		variant_id VARCHAR,
		version VARCHAR,
		payload VARCHAR,
		hash VARCHAR,
		stored_at TIMESTAMP,
		PRIMARY KEY (category, source, variant_id, version)
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS classification_audit (
		run_id VARCHAR PRIMARY KEY,
		variant_id VARCHAR,
		guideline VARCHAR,
		label VARCHAR,
		codes VARCHAR,
		recorded_at TIMESTAMP
	)`)
	return err
}

// AppendAudit records one classification run, append-only.
func (s *Store) AppendAudit(runID, variantID, guideline, label, codes string) error {
	_, err := s.db.Exec(
		`INSERT INTO classification_audit
		 (run_id, variant_id, guideline, label, codes, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, variantID, guideline, label, codes, s.now(),
	)
	if err != nil {
		return fmt.Errorf("append audit row %s: %w", runID, err)
	}
	return nil
}

// Put writes a validated entry. Unvalidated data is never written.
func (s *Store) Put(k Key, payload []byte, validated bool) error {
	if !validated {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO evidence_cache
		 (category, source, variant_id, version, payload, hash, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(k.Category), k.Source, k.VariantID, k.Version,
		string(payload), hashPayload(payload), s.now(),
	)
	if err != nil {
		return fmt.Errorf("store cache entry %s: %w", k, err)
	}
	return nil
}

// Fetch reads the entry under k. Expired or corrupted rows are deleted
// and reported as a miss.
func (s *Store) Fetch(k Key) ([]byte, bool, error) {
	row := s.db.QueryRow(
		`SELECT payload, hash, stored_at FROM evidence_cache
		 WHERE category = ? AND source = ? AND variant_id = ? AND version = ?`,
		string(k.Category), k.Source, k.VariantID, k.Version,
	)
	var payload, hash string
	var storedAt time.Time
	if err := row.Scan(&payload, &hash, &storedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("fetch cache entry %s: %w", k, err)
	}
	if s.now().Sub(storedAt) > k.TTL() || hashPayload([]byte(payload)) != hash {
		if err := s.Evict(k); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return []byte(payload), true, nil
}

// Evict removes the entry under k.
func (s *Store) Evict(k Key) error {
	_, err := s.db.Exec(
		`DELETE FROM evidence_cache
		 WHERE category = ? AND source = ? AND variant_id = ? AND version = ?`,
		string(k.Category), k.Source, k.VariantID, k.Version,
	)
	if err != nil {
		return fmt.Errorf("evict cache entry %s: %w", k, err)
	}
	return nil
}

// PurgeExpired deletes every row older than its category TTL and
// returns how many were removed.
func (s *Store) PurgeExpired() (int64, error) {
	now := s.now()
	res, err := s.db.Exec(
		`DELETE FROM evidence_cache
		 WHERE (category = ? AND stored_at < ?) OR (category = ? AND stored_at < ?)`,
		string(CategoryPredictor), now.Add(-predictorTTL),
		string(CategoryPopulation), now.Add(-populationTTL),
	)
	if err != nil {
		return 0, fmt.Errorf("purge expired cache entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
