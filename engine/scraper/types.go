// Package scraper fetches institutional pages and turns them into raw
// records for the ingest pipeline.
package scraper

// SeedSource is one page the scraper harvests. Name becomes the record's
// data source tag and must be a valid source, optionally with a ":detail"
// suffix for subpages.
type SeedSource struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
}

// DefaultSeeds lists the institutional pages harvested by default.
var DefaultSeeds = []SeedSource{
	{Name: "tentangITB", URL: "https://itb.ac.id/tentang-itb"},
	{Name: "wikipediaITB", URL: "https://id.wikipedia.org/wiki/Institut_Teknologi_Bandung"},
	{Name: "multikampusITB", URL: "https://itb.ac.id/multikampus"},
	{Name: "infoITB", URL: "https://itb.ac.id"},
}
