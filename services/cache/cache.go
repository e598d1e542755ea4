package cache

import (
	"npofeed/internal/scraper"
)

// Entry is the persisted cache envelope. The timestamp is kept as epoch
// seconds in a float for compatibility with previously written cache files.
type Entry struct {
	Timestamp float64           `json:"timestamp"`
	Programs  []scraper.Program `json:"programs"`
}

// Store represents the single-entry program cache
type Store interface {
	// Load returns the cached program list when a valid entry exists.
	// A missing, malformed or expired entry yields an empty list; it is
	// never an error.
	Load() []scraper.Program

	// Save overwrites the cache entry with the given programs, stamped
	// with the current time
	Save(programs []scraper.Program) error
}
