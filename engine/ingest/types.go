package ingest

import "github.com/rlukassa/simpanan-backend-1/engine/domain"

// CleanedRecord is a scraped record after text cleaning, carrying the
// normalised form used downstream.
type CleanedRecord struct {
	domain.ScrapedRecord

	Cleaned    string
	Normalized string
}

// CategorizedRecord is a cleaned record with its assigned category.
type CategorizedRecord struct {
	CleanedRecord

	Category string
}

// ScoredRecord is a categorized record with its quality score on a 0-100
// scale.
type ScoredRecord struct {
	CategorizedRecord

	QualityScore float64
}
