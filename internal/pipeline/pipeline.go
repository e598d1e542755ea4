package pipeline

import (
	"encoding/json"
	"time"

	"npofeed/internal/scraper"
	"npofeed/logger"
	"npofeed/pkg/errors"
	"npofeed/services/cache"
	"npofeed/services/publisher"
)

// streamField is the field key under which program lists are published
const streamField = "b64_programs"

// FeedWriter assembles and writes the feed artifact for a program list
type FeedWriter interface {
	Write(programs []scraper.Program) error
}

// Pipeline sequences one full run: cache load, scrape on miss, cache
// save, feed assembly, artifact write and the optional announcement.
// Runs are fully sequential with no internal parallelism.
type Pipeline struct {
	source    scraper.Source
	store     cache.Store
	builder   FeedWriter
	publisher publisher.Publisher

	log *logger.Logger
	now func() time.Time
}

// New creates a pipeline. The publisher may be nil, which disables
// announcements.
func New(source scraper.Source, store cache.Store, builder FeedWriter, pub publisher.Publisher) *Pipeline {
	return &Pipeline{
		source:    source,
		store:     store,
		builder:   builder,
		publisher: pub,
		log:       logger.ForPipeline(),
		now:       time.Now,
	}
}

// Run executes one pipeline run. The only failure it reports is an
// artifact write failure; everything upstream degrades to a safe default
// and at worst leaves the previous artifact in place.
func (p *Pipeline) Run() error {
	programs := p.store.Load()
	fresh := false

	if len(programs) == 0 {
		programs = p.source.FetchPrograms(p.now())
		fresh = true

		if len(programs) > 0 {
			if err := p.store.Save(programs); err != nil {
				// The feed is still published from memory this run
				p.log.Error().Err(err).Msg("Error saving cache")
			}
		}
	}

	if len(programs) == 0 {
		p.log.Warn().Msg("No programs found")
		return nil
	}

	if err := p.builder.Write(programs); err != nil {
		return errors.NewFeed("pipeline", "failed to write feed artifact", err)
	}

	if fresh && p.publisher != nil {
		p.announce(programs)
	}

	p.log.Info().
		Int("programs", len(programs)).
		Bool("from_cache", !fresh).
		Msg("Successfully processed programs")
	return nil
}

// announce pushes the freshly scraped program list to the stream. A
// publish failure never affects the run's outcome.
func (p *Pipeline) announce(programs []scraper.Program) {
	data, err := json.Marshal(programs)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to encode programs for publishing")
		return
	}

	if err := p.publisher.Publish(streamField, data); err != nil {
		p.log.Error().Err(err).Msg("Failed to publish programs")
		return
	}

	if err := p.publisher.Trim(); err != nil {
		p.log.Error().Err(err).Msg("Failed to trim program stream")
	}
}
