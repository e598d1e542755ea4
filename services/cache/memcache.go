package cache

import (
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"npofeed/internal/scraper"
	"npofeed/logger"
)

// memcacheKey is the single cache entry's key
const memcacheKey = "npo_programs"

// MemcacheStore implements Store on memcached, storing the same envelope
// as the file backend under a fixed key. The backend expiry and the
// envelope timestamp both enforce the validity window.
type MemcacheStore struct {
	client *memcache.Client
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time
}

var _ Store = (*MemcacheStore)(nil)

// NewMemcacheStore creates a memcached-backed cache store
func NewMemcacheStore(serverAddr string, ttl time.Duration) *MemcacheStore {
	return &MemcacheStore{
		client: memcache.New(serverAddr),
		ttl:    ttl,
		log:    logger.ForCache(),
		now:    time.Now,
	}
}

// Load returns the cached programs when memcached holds a fresh entry
func (s *MemcacheStore) Load() []scraper.Program {
	item, err := s.client.Get(memcacheKey)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			s.log.Error().Err(err).Msg("Failed to read cache from memcached")
		}
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(item.Value, &entry); err != nil {
		s.log.Error().Err(err).Msg("Failed to decode cache entry from memcached")
		return nil
	}

	age := float64(s.now().Unix()) - entry.Timestamp
	if age >= s.ttl.Seconds() {
		s.log.Debug().Float64("age_seconds", age).Msg("Cache entry expired")
		return nil
	}

	s.log.Info().Int("programs", len(entry.Programs)).Msg("Using programs from memcached")
	return entry.Programs
}

// Save overwrites the cache entry in memcached
func (s *MemcacheStore) Save(programs []scraper.Program) error {
	entry := Entry{
		Timestamp: float64(s.now().Unix()),
		Programs:  programs,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.client.Set(&memcache.Item{
		Key:        memcacheKey,
		Value:      data,
		Expiration: int32(s.ttl.Seconds()),
	})
}
