package scraper

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestScraper(html string, fetchErr error) *Scraper {
	s := NewScraper("https://npo.nl/", "test-agent")
	s.fetchFunc = func() (io.Reader, error) {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return strings.NewReader(html), nil
	}
	return s
}

func TestFetchProgramsExtractsProgram(t *testing.T) {
	html := `<html><body>
		<a href="/start/test-show">
			<h3>Test Show</h3>
			<span class="program-desc">Een hele leuke show.</span>
			<span>Nieuw!</span>
		</a>
	</body></html>`

	s := newTestScraper(html, nil)
	now := time.Now()
	programs := s.FetchPrograms(now)

	assert.Len(t, programs, 1)
	assert.Equal(t, "Test Show", programs[0].Title)
	assert.Equal(t, "https://npo.nl/start/test-show", programs[0].Link)
	assert.Equal(t, "Een hele leuke show.", programs[0].Description)
	assert.True(t, programs[0].IsNew)
	assert.Equal(t, now.UTC().Format(time.RFC3339), programs[0].PublishedAt)
}

func TestFetchProgramsSkipsUnusableAnchors(t *testing.T) {
	html := `<html><body>
		<a href="#top"><h2>Fragment Link</h2></a>
		<a href="https://example.com/elders"><h2>External Link</h2></a>
		<a href="/start/zonder-kop">geen kop hier</a>
		<a href="/start/kort"><h2>ab</h2></a>
		<a href="/start/leeg"><h2>   </h2></a>
		<a href="/start/goed"><h2>Goede Show</h2></a>
	</body></html>`

	s := newTestScraper(html, nil)
	programs := s.FetchPrograms(time.Now())

	assert.Len(t, programs, 1)
	assert.Equal(t, "Goede Show", programs[0].Title)
	assert.Equal(t, "https://npo.nl/start/goed", programs[0].Link)
}

func TestFetchProgramsDefaultDescription(t *testing.T) {
	html := `<html><body>
		<a href="/start/show"><h3>Zonder Omschrijving</h3></a>
	</body></html>`

	s := newTestScraper(html, nil)
	programs := s.FetchPrograms(time.Now())

	assert.Len(t, programs, 1)
	assert.Equal(t, "Programma op NPO", programs[0].Description)
	assert.False(t, programs[0].IsNew)
}

func TestFetchProgramsNewMarkerIsCaseInsensitive(t *testing.T) {
	html := `<html><body>
		<a href="/start/a"><h3>Show A</h3><span>NIEUW deze week</span></a>
		<a href="/start/b"><h3>Show B</h3><span>vernieuwde aflevering</span></a>
		<a href="/start/c"><h3>Show C</h3><span>gewoon tekst</span></a>
	</body></html>`

	s := newTestScraper(html, nil)
	programs := s.FetchPrograms(time.Now())

	assert.Len(t, programs, 3)
	// "vernieuwde" contains the marker as a substring, so B is new too
	assert.True(t, programs[0].IsNew)
	assert.True(t, programs[1].IsNew)
	assert.False(t, programs[2].IsNew)
	assert.Equal(t, "Show C", programs[2].Title)
}

func TestFetchProgramsStablePartition(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	// Interleave new and not-new anchors
	for i := 0; i < 6; i++ {
		marker := ""
		if i%2 == 1 {
			marker = "<span>Nieuw</span>"
		}
		fmt.Fprintf(&b, `<a href="/start/show-%d"><h3>Show %d</h3>%s</a>`, i, i, marker)
	}
	b.WriteString("</body></html>")

	s := newTestScraper(b.String(), nil)
	programs := s.FetchPrograms(time.Now())

	titles := make([]string, 0, len(programs))
	for _, p := range programs {
		titles = append(titles, p.Title)
	}

	// New ones first, both groups in encounter order
	assert.Equal(t, []string{"Show 1", "Show 3", "Show 5", "Show 0", "Show 2", "Show 4"}, titles)
}

func TestFetchProgramsTruncatesToTwenty(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, `<a href="/start/show-%02d"><h3>Show %02d</h3></a>`, i, i)
	}
	b.WriteString("</body></html>")

	s := newTestScraper(b.String(), nil)
	programs := s.FetchPrograms(time.Now())

	assert.Len(t, programs, 20)
	assert.Equal(t, "Show 00", programs[0].Title)
	assert.Equal(t, "Show 19", programs[19].Title)
}

func TestFetchProgramsKeepsDuplicates(t *testing.T) {
	html := `<html><body>
		<a href="/start/show"><h3>Dubbele Show</h3></a>
		<a href="/start/show"><h3>Dubbele Show</h3></a>
	</body></html>`

	s := newTestScraper(html, nil)
	programs := s.FetchPrograms(time.Now())

	// Overlapping anchor matches are not deduplicated
	assert.Len(t, programs, 2)
	assert.Equal(t, programs[0].Title, programs[1].Title)
	assert.Equal(t, programs[0].Link, programs[1].Link)
}

func TestFetchProgramsFetchFailureFallsBack(t *testing.T) {
	s := newTestScraper("", errors.New("connection refused"))
	now := time.Now()
	programs := s.FetchPrograms(now)

	assert.Equal(t, FallbackPrograms(now), programs)
	assert.Len(t, programs, 2)
	assert.Equal(t, "Chateau Promenade", programs[0].Title)
	assert.Equal(t, "Date On Stage", programs[1].Title)
}

func TestFetchProgramsEmptyPageUsesSeedCatalog(t *testing.T) {
	s := newTestScraper("<html><body><p>niets te zien</p></body></html>", nil)
	now := time.Now()
	programs := s.FetchPrograms(now)

	assert.Equal(t, SeedCatalog(now), programs)
	assert.Len(t, programs, 4)
}
