// Package domain defines core domain types, constants, and validation for
// the question-answering pipeline. It acts as the validation gate at
// pipeline entry points.
package domain

import "time"

// CorpusEntry is one retrievable text record from the institutional
// knowledge base. Entries are immutable after load and shared read-only
// across concurrent queries.
type CorpusEntry struct {
	RecordID     string   `json:"record_id"`
	Source       string   `json:"source"`
	Content      string   `json:"content"`
	Normalized   string   `json:"content_cleaned"`
	Category     string   `json:"category"`
	QualityScore float64  `json:"quality_score"`
	Length       int      `json:"content_length"`
	Links        []string `json:"links,omitempty"`
}

// Link is a URL attached to an answer, with the category it was mined from
// and its relevance to the query.
type Link struct {
	URL       string  `json:"url"`
	Category  string  `json:"category"`
	Relevance float64 `json:"relevance_score"`
}

// AnswerSource tags where an answer came from.
type AnswerSource string

const (
	SourceIntent   AnswerSource = "intent_detector"
	SourceCorpus   AnswerSource = "corpus_matching"
	SourceFallback AnswerSource = "fallback"
)

// AnalysisResult is the outcome of answering one query. Produced fresh per
// query; it has no persistent identity.
type AnalysisResult struct {
	OriginalQuery   string       `json:"original_query"`
	NormalizedQuery string       `json:"normalized_query"`
	Intent          string       `json:"intent,omitempty"`
	Confidence      float64      `json:"confidence,omitempty"`
	Answer          string       `json:"answer"`
	Source          AnswerSource `json:"source"`
	Links           []Link       `json:"links,omitempty"`
}

// HasLinks reports whether the result carries any mined links.
func (r *AnalysisResult) HasLinks() bool { return len(r.Links) > 0 }

// ScrapedRecord is a raw text row produced by the scraper before it is
// validated, categorised, and scored into a CorpusEntry.
type ScrapedRecord struct {
	Source    string    `json:"source"`
	Content   string    `json:"content"`
	URL       string    `json:"url,omitempty"`
	Links     []string  `json:"links,omitempty"`
	ScrapedAt time.Time `json:"scraped_at"`
}
