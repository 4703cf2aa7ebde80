package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Snapshot maps uppercase symbols to their most recent entries. It is
// the unit the store loads and saves; partial writes never happen.
type Snapshot map[string]*Entry

// Symbols returns the snapshot's symbols in sorted order, for stable
// iteration in status output and tests.
func (s Snapshot) Symbols() []string {
	symbols := make([]string, 0, len(s))
	for symbol := range s {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// FileStore reads and writes the snapshot file. Thread-safe for
// concurrent access.
type FileStore struct {
	// path is the snapshot file location.
	path string

	// mu protects concurrent access to file operations.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewFileStore creates a store backed by the snapshot file at path.
// The file does not need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used for load diagnostics and returns the
// store for chaining.
func (s *FileStore) WithLogger(logger zerolog.Logger) *FileStore {
	s.logger = logger
	return s
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot from disk. A missing, empty, or malformed
// file yields an empty snapshot with a log line, never an error; a
// corrupt snapshot costs one refetch cycle, not the run.
func (s *FileStore) Load() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("path", s.path).Msg("Cache file not found, starting empty")
		} else {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to read cache file, starting empty")
		}
		return Snapshot{}
	}

	if len(data) == 0 {
		s.logger.Debug().Str("path", s.path).Msg("Cache file empty, starting empty")
		return Snapshot{}
	}

	var snapshot Snapshot
	if unmarshalErr := json.Unmarshal(data, &snapshot); unmarshalErr != nil {
		s.logger.Warn().Err(unmarshalErr).Str("path", s.path).Msg("Failed to parse cache file, starting empty")
		return Snapshot{}
	}
	if snapshot == nil {
		return Snapshot{}
	}

	// Entries are keyed by symbol in the file; backfill the field for
	// entries written without one.
	for symbol, entry := range snapshot {
		if entry == nil {
			delete(snapshot, symbol)
			continue
		}
		if entry.Symbol == "" {
			entry.Symbol = symbol
		}
	}

	return snapshot
}

// Save writes the full snapshot to disk, replacing any previous file.
// The snapshot is written to a temporary file in the same directory and
// renamed into place, so readers never observe a partial file.
func (s *FileStore) Save(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot == nil {
		snapshot = Snapshot{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache snapshot: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.path), 0o700); mkdirErr != nil {
		return fmt.Errorf("failed to create cache directory: %w", mkdirErr)
	}

	tempPath := s.path + ".tmp"
	if writeErr := os.WriteFile(tempPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}

	if renameErr := os.Rename(tempPath, s.path); renameErr != nil {
		_ = os.Remove(tempPath) // Clean up temp file on error
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return nil
}

// Clear removes the snapshot file. Returns nil if the file doesn't
// exist (idempotent).
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// Merge combines a loaded snapshot with the entries fetched this pass.
// Fetched entries win per symbol; symbols only present in existing are
// retained, so one run over a short ticker list never discards what a
// longer list accumulated. Neither input is modified.
func Merge(existing, updates Snapshot) Snapshot {
	merged := make(Snapshot, len(existing)+len(updates))
	for symbol, entry := range existing {
		merged[symbol] = entry
	}
	for symbol, entry := range updates {
		merged[symbol] = entry
	}
	return merged
}
