package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"npofeed/internal/scraper"
	"npofeed/logger"
)

// FileStore implements Store on a single JSON file. Writes are plain
// overwrites; concurrent pipeline runs may race on the file.
type FileStore struct {
	path string
	ttl  time.Duration
	log  *logger.Logger
	now  func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed cache store
func NewFileStore(path string, ttl time.Duration) *FileStore {
	return &FileStore{
		path: path,
		ttl:  ttl,
		log:  logger.ForCache(),
		now:  time.Now,
	}
}

// Load returns the cached programs when the file holds a fresh entry
func (s *FileStore) Load() []scraper.Program {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("path", s.path).Msg("Failed to read cache file")
		}
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("Failed to decode cache file")
		return nil
	}

	age := float64(s.now().Unix()) - entry.Timestamp
	if age >= s.ttl.Seconds() {
		s.log.Debug().Float64("age_seconds", age).Msg("Cache entry expired")
		return nil
	}

	s.log.Info().Int("programs", len(entry.Programs)).Msg("Using programs from cache")
	return entry.Programs
}

// Save overwrites the cache file with a fresh entry
func (s *FileStore) Save(programs []scraper.Program) error {
	entry := Entry{
		Timestamp: float64(s.now().Unix()),
		Programs:  programs,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	s.log.Info().Int("programs", len(programs)).Str("path", s.path).Msg("Saved programs to cache")
	return nil
}
