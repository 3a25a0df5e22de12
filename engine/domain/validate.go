package domain

import "strings"

// MinContentLength is the shortest content a corpus row may carry.
const MinContentLength = 5

// ValidSources enumerates accepted scrape sources. Prefixed sources like
// "wikipediaITB:kampus-ganesa" are also accepted.
var ValidSources = map[string]bool{
	"tentangITB":     true,
	"wikipediaITB":   true,
	"multikampusITB": true,
	"infoITB":        true,
}

func validSource(src string) bool {
	if ValidSources[src] {
		return true
	}
	for base := range ValidSources {
		if strings.HasPrefix(src, base+":") {
			return true
		}
	}
	return false
}

// ValidateScrapedRecord checks a ScrapedRecord before ingestion.
func ValidateScrapedRecord(rec ScrapedRecord) error {
	content := strings.TrimSpace(rec.Content)
	if content == "" {
		return NewValidationError("content", "", ErrEmptyContent)
	}
	if len(content) < MinContentLength {
		return NewValidationError("content", content, ErrContentTooShort)
	}
	if !validSource(rec.Source) {
		return NewValidationError("source", rec.Source, ErrUnknownSource)
	}
	return nil
}
