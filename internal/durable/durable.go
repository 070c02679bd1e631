package durable

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vagalivre/vagalivre/pkg/models"
)

// Slot names one of the independent snapshots held by the store.
type Slot string

const (
	SlotJobs      Slot = "jobs"
	SlotEmployers Slot = "employers"
	SlotSession   Slot = "loggedInEmployer"
	SlotFeedback  Slot = "feedback"
)

// Store is the device-scoped durable snapshot store. Each slot holds one
// JSON-serialized snapshot. Writes are best-effort: a failed write is
// logged and discarded so it never interrupts the in-memory operation
// that triggered it. Reads fall back to the built-in seed dataset when
// the slot is empty or unparsable.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the snapshot database under dir
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dir, "vagalivre.db")

	// Open with DSN options for SQLite pragmas
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// runMigrations creates the snapshot table
func runMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		slot TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// save serializes v into the slot. Failures are absorbed.
func (s *Store) save(slot Slot, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("snapshot not saved", "slot", slot, "error", err)
		return
	}
	query := `INSERT INTO snapshots (slot, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			  ON CONFLICT(slot) DO UPDATE SET data=excluded.data, updated_at=CURRENT_TIMESTAMP`
	if _, err := s.db.Exec(query, string(slot), string(data)); err != nil {
		s.logger.Warn("snapshot not saved", "slot", slot, "error", err)
	}
}

// clear removes the slot. Failures are absorbed.
func (s *Store) clear(slot Slot) {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE slot=?`, string(slot)); err != nil {
		s.logger.Warn("snapshot not cleared", "slot", slot, "error", err)
	}
}

// load deserializes the slot into v. The boolean is false when the slot
// is absent or holds unparsable data.
func (s *Store) load(slot Slot, v any) bool {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE slot=?`, string(slot)).Scan(&data)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("snapshot not read", "slot", slot, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		s.logger.Warn("snapshot corrupted, ignoring", "slot", slot, "error", err)
		return false
	}
	return true
}

// SaveJobs persists the job collection snapshot
func (s *Store) SaveJobs(jobs []models.Job) {
	s.save(SlotJobs, jobs)
}

// LoadJobs returns the persisted job collection, or the seed dataset
// when no usable snapshot exists
func (s *Store) LoadJobs() []models.Job {
	var jobs []models.Job
	if !s.load(SlotJobs, &jobs) {
		return SeedJobs()
	}
	return jobs
}

// SaveEmployers persists the employer collection snapshot
func (s *Store) SaveEmployers(employers []models.Employer) {
	s.save(SlotEmployers, employers)
}

// LoadEmployers returns the persisted employer collection, or the seed
// dataset when no usable snapshot exists
func (s *Store) LoadEmployers() []models.Employer {
	var employers []models.Employer
	if !s.load(SlotEmployers, &employers) {
		return SeedEmployers()
	}
	return employers
}

// SaveSession persists the logged-in employer. A nil employer clears the
// slot, which is how "no session" is represented.
func (s *Store) SaveSession(employer *models.Employer) {
	if employer == nil {
		s.clear(SlotSession)
		return
	}
	s.save(SlotSession, employer)
}

// LoadSession returns the persisted session, or nil when logged out
func (s *Store) LoadSession() *models.Employer {
	var employer models.Employer
	if !s.load(SlotSession, &employer) {
		return nil
	}
	return &employer
}

// SaveFeedback persists the feedback list snapshot
func (s *Store) SaveFeedback(entries []models.Feedback) {
	s.save(SlotFeedback, entries)
}

// LoadFeedback returns the persisted feedback list, empty when absent
func (s *Store) LoadFeedback() []models.Feedback {
	var entries []models.Feedback
	if !s.load(SlotFeedback, &entries) {
		return []models.Feedback{}
	}
	return entries
}
