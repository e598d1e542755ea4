package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Classifier extracts a description from a program anchor. Implementations
// can be swapped without touching the scrape loop.
type Classifier interface {
	// Classify returns the description found under the selection, if any
	Classify(sel *goquery.Selection) (string, bool)
}

// descriptionKeywords are matched against class attribute tokens
var descriptionKeywords = []string{"desc", "summary", "text"}

// ClassKeywordClassifier picks the first descendant element whose class
// attribute tokens contain one of the descriptive keywords and returns
// its trimmed text.
type ClassKeywordClassifier struct{}

// Classify implements Classifier
func (ClassKeywordClassifier) Classify(sel *goquery.Selection) (string, bool) {
	var description string

	sel.Find("[class]").EachWithBreak(func(_ int, d *goquery.Selection) bool {
		class, _ := d.Attr("class")
		for _, token := range strings.Fields(strings.ToLower(class)) {
			for _, keyword := range descriptionKeywords {
				if strings.Contains(token, keyword) {
					description = strings.TrimSpace(d.Text())
					return false
				}
			}
		}
		return true
	})

	if description == "" {
		return "", false
	}
	return description, true
}
