package scraper

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

func selectionFromHTML(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc.Find("a").First()
}

func TestClassKeywordClassifier(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		want  string
		found bool
	}{
		{
			name:  "desc keyword",
			html:  `<a href="/x"><h3>T</h3><p class="program-desc"> Omschrijving hier </p></a>`,
			want:  "Omschrijving hier",
			found: true,
		},
		{
			name:  "summary keyword",
			html:  `<a href="/x"><h3>T</h3><div class="Summary">Korte samenvatting</div></a>`,
			want:  "Korte samenvatting",
			found: true,
		},
		{
			name:  "text keyword inside token",
			html:  `<a href="/x"><h3>T</h3><span class="card-text-body">Tekst</span></a>`,
			want:  "Tekst",
			found: true,
		},
		{
			name:  "first match wins",
			html:  `<a href="/x"><h3>T</h3><p class="summary">eerste</p><p class="desc">tweede</p></a>`,
			want:  "eerste",
			found: true,
		},
		{
			name:  "no matching class",
			html:  `<a href="/x"><h3>T</h3><p class="title-bar">niks</p></a>`,
			found: false,
		},
		{
			name:  "matching class with empty text",
			html:  `<a href="/x"><h3>T</h3><p class="desc">   </p></a>`,
			found: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := selectionFromHTML(t, tc.html)
			got, found := ClassKeywordClassifier{}.Classify(sel)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, got)
		})
	}
}

// staticClassifier is used to verify that the scrape loop consults the
// configured classifier instead of hardcoding the keyword heuristic.
type staticClassifier struct {
	description string
}

var _ Classifier = staticClassifier{}

func (c staticClassifier) Classify(*goquery.Selection) (string, bool) {
	return c.description, c.description != ""
}

func TestScraperUsesConfiguredClassifier(t *testing.T) {
	html := `<html><body><a href="/start/show"><h3>Show</h3></a></body></html>`

	s := newTestScraper(html, nil)
	s.Classifier = staticClassifier{description: "vaste omschrijving"}

	programs := s.FetchPrograms(time.Now())
	assert.Len(t, programs, 1)
	assert.Equal(t, "vaste omschrijving", programs[0].Description)
}
