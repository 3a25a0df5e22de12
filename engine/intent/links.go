package intent

import (
	"sort"
	"strings"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/domain"
)

// linksPerEntry caps how many links one corpus entry may contribute.
const linksPerEntry = 2

// FindLinks mines the corpus for links supporting an intent answer.
// Entries are restricted to the intent's categories, ranked by token
// overlap with the query plus a quality bonus, and the best topK entries
// each contribute their leading links.
func (c *Classifier) FindLinks(corp *corpus.Corpus, query, intent string, topK int) []domain.Link {
	if corp == nil || topK <= 0 {
		return nil
	}
	categories, ok := intentCategories[intent]
	if !ok {
		return nil
	}

	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return nil
	}

	type scored struct {
		entry     corpus.Entry
		relevance float64
	}
	var ranked []scored
	for _, entry := range corp.ByCategory(categories) {
		if len(entry.Links) == 0 {
			continue
		}
		overlap := 0
		for _, w := range queryWords {
			if strings.Contains(entry.ContentLower, w) {
				overlap++
			}
		}
		relevance := float64(overlap)/float64(len(queryWords)) + float64(entry.QualityScore)/100*0.5
		if relevance > 0 {
			ranked = append(ranked, scored{entry: entry, relevance: relevance})
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].relevance > ranked[b].relevance
	})
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}

	var links []domain.Link
	seen := make(map[string]bool)
	for _, item := range ranked {
		taken := 0
		for _, url := range item.entry.Links {
			if taken == linksPerEntry {
				break
			}
			if seen[url] {
				continue
			}
			seen[url] = true
			links = append(links, domain.Link{
				URL:       url,
				Category:  item.entry.Category,
				Relevance: item.relevance,
			})
			taken++
		}
	}
	return links
}
