package scraper

import "time"

// Program represents one program entry extracted from the NPO site or
// seeded from the fallback catalog. The JSON tags are the cache file
// contract and must not change.
type Program struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	IsNew       bool   `json:"is_new"`
	PublishedAt string `json:"published_date"`
	Image       string `json:"image,omitempty"`
}

// Source defines the contract for anything that can produce a program
// list for one pipeline run
type Source interface {
	// FetchPrograms retrieves the current program list, stamping
	// entries with the given run time
	FetchPrograms(now time.Time) []Program
}
