package scraper

import "time"

// SeedCatalog returns the fixed program catalog substituted when a scrape
// of the source site yields nothing. The literal contents are part of the
// external contract; tests assert against them by reference.
func SeedCatalog(now time.Time) []Program {
	published := now.UTC().Format(time.RFC3339)

	return []Program{
		{
			Title:       "Chateau Promenade",
			Link:        "https://npo.nl/start/chateau-promenade",
			Description: "Diederik Ebbinge ontvangt drie vaste gasten op zijn schilderachtige Noord-Franse chateau.",
			IsNew:       true,
			PublishedAt: published,
		},
		{
			Title:       "Date On Stage",
			Link:        "https://npo.nl/start/date-on-stage",
			Description: "In deze datingshow gaan singles op zoek naar de liefde.",
			IsNew:       true,
			PublishedAt: published,
		},
		{
			Title:       "Boer zoekt vrouw",
			Link:        "https://npo.nl/start/boer-zoekt-vrouw",
			Description: "Boeren op zoek naar de liefde van hun leven.",
			IsNew:       false,
			PublishedAt: published,
		},
		{
			Title:       "Week van de Lentekriebels",
			Link:        "https://npo.nl/start/week-van-de-lentekriebels",
			Description: "Collectie programma's over de lente.",
			IsNew:       false,
			PublishedAt: published,
		},
	}
}

// FallbackPrograms returns the part of the seed catalog used when the
// source page cannot be fetched or parsed at all.
func FallbackPrograms(now time.Time) []Program {
	return SeedCatalog(now)[:2]
}
