package feed

import (
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gorilla/feeds"

	"npofeed/internal/scraper"
	"npofeed/logger"
)

// Channel metadata is fixed; the feed always describes the same source
const (
	ChannelTitle       = "NPO Nieuwe Programma's"
	ChannelDescription = "Een RSS feed van nieuwe en recente programma's op NPO"
	ChannelLanguage    = "nl"

	// newTitlePrefix decorates titles of programs flagged as new
	newTitlePrefix = "NIEUW: "

	// enclosureType is the fixed MIME type for program images
	enclosureType = "image/jpeg"
)

// Builder assembles the RSS document from a program list and writes it
// to the artifact path
type Builder struct {
	Link string
	Path string

	log *logger.Logger
	now func() time.Time
}

// NewBuilder creates a feed builder. link is the channel link, path the
// output artifact location.
func NewBuilder(link, path string) *Builder {
	return &Builder{
		Link: link,
		Path: path,
		log:  logger.ForFeed(),
		now:  time.Now,
	}
}

// Render produces the RSS 2.0 document for the given program list
func (b *Builder) Render(programs []scraper.Program) ([]byte, error) {
	f := &feeds.Feed{
		Title:       ChannelTitle,
		Description: ChannelDescription,
		Link:        &feeds.Link{Href: b.Link},
		Created:     b.now(),
	}

	for _, p := range programs {
		title := p.Title
		if p.IsNew {
			title = newTitlePrefix + title
		}

		item := &feeds.Item{
			Title:       title,
			Link:        &feeds.Link{Href: p.Link},
			Description: p.Description,
			Created:     b.publishedAt(p),
		}

		if p.Image != "" {
			item.Enclosure = &feeds.Enclosure{
				Url:    p.Image,
				Length: "0",
				Type:   enclosureType,
			}
		}

		f.Items = append(f.Items, item)
	}

	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = ChannelLanguage

	xml, err := feeds.ToXML(rss)
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %w", err)
	}
	return []byte(xml), nil
}

// Write renders the feed and fully overwrites the artifact file
func (b *Builder) Write(programs []scraper.Program) error {
	data, err := b.Render(programs)
	if err != nil {
		return err
	}

	if err := os.WriteFile(b.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write feed file: %w", err)
	}

	b.log.Info().Int("programs", len(programs)).Str("path", b.Path).Msg("RSS feed generated")
	return nil
}

// publishedAt parses the stored publication date leniently. Any value
// that cannot be parsed resolves to the current time; assembly never
// aborts over a bad date.
func (b *Builder) publishedAt(p scraper.Program) time.Time {
	if p.PublishedAt == "" {
		return b.now()
	}

	parsed, err := dateparse.ParseAny(p.PublishedAt)
	if err != nil {
		b.log.Warn().Err(err).Str("title", p.Title).Msg("Date parsing error, using current time")
		return b.now()
	}
	return parsed
}
