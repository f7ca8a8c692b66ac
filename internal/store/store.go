// Package store owns the persisted document: load on Open, guarded access
// for the engine, revision bookkeeping, and atomic persistence back to
// disk. A Store is the single-writer boundary for one document; all
// concurrent access goes through its lock.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/minibase-io/minibase/pkg/types"
)

// DocumentFile is the name of the persisted document inside the data
// directory.
const DocumentFile = "document.json"

// Store holds one in-memory document and its persistence lifecycle.
// The zero value is not usable; call New.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	doc    *types.Document
	path   string
	dirty  bool

	// now is replaceable in tests for deterministic timestamps.
	now func() time.Time
}

// New creates an unopened Store; call Open with a Config to initialize.
func New() *Store {
	return &Store{now: time.Now}
}

// Open loads the persisted document from the configured data directory,
// creating the directory and a fresh empty document at revision 0 when
// none exists. Returns ErrAlreadyOpen if called while open; a corrupt
// document file is a load error, never silently reset.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dataDir, DocumentFile)
	doc, err := readDocument(path)
	if errors.Is(err, fs.ErrNotExist) {
		doc = types.NewDocument(s.now().UTC())
		if err := writeDocumentAtomic(path, doc); err != nil {
			return fmt.Errorf("initialize document: %w", err)
		}
	} else if err != nil {
		return err
	}

	s.config = config
	s.doc = doc
	s.path = path
	s.dirty = false
	s.open = true
	return nil
}

// Close flushes any deferred writes and releases the document. Idempotent;
// after Close all accessors return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	if s.dirty {
		if err := s.persistLocked(); err != nil {
			return fmt.Errorf("flush on close: %w", err)
		}
	}
	s.open = false
	s.doc = nil
	return nil
}

// View runs fn with read access to the document. The document must not be
// mutated through a View; callers needing mutation use Mutate.
func (s *Store) View(fn func(*types.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return types.ErrStoreClosed
	}
	return fn(s.doc)
}

// Mutate runs fn with exclusive access to the document. When fn reports
// the document changed, the revision is bumped by exactly 1, updated_at is
// refreshed, and the document is persisted per the sync strategy. When fn
// returns an error it must leave the document untouched; the revision does
// not move for failed or unchanged calls.
func (s *Store) Mutate(fn func(*types.Document) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}

	changed, err := fn(s.doc)
	if err != nil || !changed {
		return err
	}

	s.doc.Meta.Revision++
	s.doc.Meta.UpdatedAt = s.now().UTC()

	if s.config.EffectiveSyncStrategy() == types.SyncImmediate {
		return s.persistLocked()
	}
	s.dirty = true
	return nil
}

// Flush writes any deferred mutations to disk. A no-op when the in-memory
// document already matches the persisted form.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}
	if !s.dirty {
		return nil
	}
	return s.persistLocked()
}

// Revision returns the current document revision.
func (s *Store) Revision() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return 0, types.ErrStoreClosed
	}
	return s.doc.Meta.Revision, nil
}

// persistLocked writes the document to disk. The caller must hold the
// write lock.
func (s *Store) persistLocked() error {
	if err := writeDocumentAtomic(s.path, s.doc); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
