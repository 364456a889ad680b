package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/observability/metrics"
)

const fileName = "db.json"

// Store owns the single JSON document backing every collection. All writes go
// through Update, which holds an exclusive lock across the read-modify-write
// cycle so concurrent requests in this process cannot clobber each other.
// A second process writing the same file is still last-writer-wins.
type Store struct {
	path   string
	mu     sync.RWMutex
	logger *slog.Logger
}

// New creates a store over dataDir/db.json. The directory and file are
// created lazily on first access.
func New(dataDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   filepath.Join(dataDir, fileName),
		logger: logger,
	}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load returns a snapshot of the database. On first run the empty structure
// is persisted and returned. Missing top-level keys decode as empty
// collections, never an error.
func (s *Store) Load() (*domain.Database, error) {
	s.mu.RLock()
	db, err := s.read()
	s.mu.RUnlock()
	if err == nil {
		return db, nil
	}
	if !os.IsNotExist(err) {
		return nil, &domain.StorageError{Op: "load", Err: err}
	}

	// First run: initialize and persist the empty document.
	s.mu.Lock()
	defer s.mu.Unlock()
	if db, err := s.read(); err == nil {
		return db, nil
	}
	db = domain.NewDatabase()
	if err := s.write(db); err != nil {
		return nil, &domain.StorageError{Op: "init", Err: err}
	}
	s.logger.Info("initialized empty database", slog.String("path", s.path))
	return db, nil
}

// Save overwrites the whole document with db.
func (s *Store) Save(db *domain.Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(db); err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}
	return nil
}

// Update runs fn on the current document under the write lock and persists
// the result. When fn returns an error nothing is written, so repository
// operations stay atomic from the caller's point of view.
func (s *Store) Update(fn func(*domain.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.read()
	if err != nil {
		if !os.IsNotExist(err) {
			return &domain.StorageError{Op: "load", Err: err}
		}
		db = domain.NewDatabase()
	}

	if err := fn(db); err != nil {
		return err
	}

	if err := s.write(db); err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}
	return nil
}

// read decodes the backing file. Callers hold at least the read lock.
func (s *Store) read() (*domain.Database, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	db := &domain.Database{}
	if err := json.Unmarshal(raw, db); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	db.Normalize()
	return db, nil
}

// write persists db via a temp file and rename so a crashed write never
// leaves a truncated database behind. Callers hold the write lock.
func (s *Store) write(db *domain.Database) error {
	start := time.Now()
	db.Normalize()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode database: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace database file: %w", err)
	}

	metrics.ObserveStoreSave(time.Since(start))
	metrics.SetCollectionSizes(map[string]int{
		"properties":      len(db.Properties),
		"customers":       len(db.Customers),
		"rentals":         len(db.Rentals),
		"receipts":        len(db.Receipts),
		"documents":       len(db.Documents),
		"rentalContracts": len(db.RentalContracts),
	})
	return nil
}
