package scraper

import (
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"npofeed/helpers"
	"npofeed/logger"
)

const (
	// maxPrograms bounds the program list produced by one run
	maxPrograms = 20

	// defaultDescription is used when no description can be extracted
	defaultDescription = "Programma op NPO"

	// newMarker flags a program as new when any descendant text of its
	// anchor contains it, case-insensitively
	newMarker = "nieuw"
)

// Scraper extracts programs from the NPO homepage
type Scraper struct {
	URL        string
	UserAgent  string
	Classifier Classifier

	fetchFunc func() (io.Reader, error)
	log       *logger.Logger
}

var _ Source = (*Scraper)(nil)

// NewScraper creates a scraper for the given source URL
func NewScraper(sourceURL, userAgent string) *Scraper {
	s := &Scraper{
		URL:        sourceURL,
		UserAgent:  userAgent,
		Classifier: ClassKeywordClassifier{},
		log:        logger.ForScraper(),
	}
	s.fetchFunc = func() (io.Reader, error) {
		return helpers.FetchPage(s.URL, s.UserAgent)
	}
	return s
}

// FetchPrograms scrapes the source page and returns the bounded, ordered
// program list for this run. It never fails: a fetch or parse error falls
// back to the first two seed programs, and a scrape that matches nothing
// falls back to the full seed catalog.
func (s *Scraper) FetchPrograms(now time.Time) []Program {
	body, err := s.fetchFunc()
	if err != nil {
		s.log.Error().Err(err).Str("url", s.URL).Msg("Failed to fetch source page")
		return FallbackPrograms(now)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to parse source page")
		return FallbackPrograms(now)
	}

	programs := s.extract(doc, now)
	if len(programs) == 0 {
		s.log.Warn().Msg("No programs found, using seed catalog")
		return SeedCatalog(now)
	}

	newCount := 0
	for _, p := range programs {
		if p.IsNew {
			newCount++
		}
	}
	s.log.Info().
		Int("programs", len(programs)).
		Int("new", newCount).
		Msg("Scraped source page")

	return programs
}

// extract walks every anchor on the page and collects program entries.
// Overlapping anchors can produce duplicate entries; they are kept as-is.
func (s *Scraper) extract(doc *goquery.Document, now time.Time) []Program {
	var programs []Program

	root := strings.TrimRight(s.URL, "/")
	published := now.UTC().Format(time.RFC3339)

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		// Skip page fragments and external links
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "http") {
			return
		}

		heading := sel.Find("h1, h2, h3, h4, h5, h6").First()
		if heading.Length() == 0 {
			return
		}

		title := strings.TrimSpace(heading.Text())
		if title == "" || utf8.RuneCountInString(title) < 3 {
			return
		}

		link := href
		if !strings.HasPrefix(link, "http") {
			link = root + link
		}

		description, found := s.Classifier.Classify(sel)
		if !found || description == "" {
			description = defaultDescription
		}

		programs = append(programs, Program{
			Title:       title,
			Link:        link,
			Description: description,
			IsNew:       containsNewMarker(sel),
			PublishedAt: published,
		})

		s.log.Debug().Str("title", title).Msg("Found program")
	})

	// New programs first; encounter order is preserved within each group
	sort.SliceStable(programs, func(i, j int) bool {
		return programs[i].IsNew && !programs[j].IsNew
	})

	if len(programs) > maxPrograms {
		programs = programs[:maxPrograms]
	}

	return programs
}

// containsNewMarker reports whether any descendant text node contains the
// new-marker token, case-insensitively
func containsNewMarker(sel *goquery.Selection) bool {
	for _, node := range sel.Nodes {
		if textContains(node, newMarker) {
			return true
		}
	}
	return false
}

func textContains(n *html.Node, marker string) bool {
	if n.Type == html.TextNode && strings.Contains(strings.ToLower(n.Data), marker) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if textContains(c, marker) {
			return true
		}
	}
	return false
}
