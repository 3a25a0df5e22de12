package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateScrapedRecord(t *testing.T) {
	valid := ScrapedRecord{
		Source:    "tentangITB",
		Content:   "ITB memiliki 12 fakultas dan sekolah",
		ScrapedAt: time.Now(),
	}
	assert.NoError(t, ValidateScrapedRecord(valid))

	empty := valid
	empty.Content = "   "
	assert.ErrorIs(t, ValidateScrapedRecord(empty), ErrEmptyContent)

	short := valid
	short.Content = "abc"
	assert.ErrorIs(t, ValidateScrapedRecord(short), ErrContentTooShort)

	unknown := valid
	unknown.Source = "blogAcak"
	assert.ErrorIs(t, ValidateScrapedRecord(unknown), ErrUnknownSource)
}

func TestValidateScrapedRecord_PrefixedSource(t *testing.T) {
	rec := ScrapedRecord{
		Source:  "wikipediaITB:kampus-ganesa",
		Content: "Kampus Ganesa adalah kampus utama ITB",
	}
	assert.NoError(t, ValidateScrapedRecord(rec))

	rec.Source = "wikipediaITBkampus"
	assert.ErrorIs(t, ValidateScrapedRecord(rec), ErrUnknownSource)
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := NewValidationError("source", "x", ErrUnknownSource)
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.Contains(t, err.Error(), "source")
	assert.Contains(t, err.Error(), `"x"`)
}

func TestHasLinks(t *testing.T) {
	r := AnalysisResult{}
	assert.False(t, r.HasLinks())
	r.Links = []Link{{URL: "https://itb.ac.id"}}
	assert.True(t, r.HasLinks())
}
