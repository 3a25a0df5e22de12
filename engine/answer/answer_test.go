package answer

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/domain"
	"github.com/rlukassa/simpanan-backend-1/engine/intent"
	"github.com/rlukassa/simpanan-backend-1/engine/match"
)

func newTestService(c *corpus.Corpus) *Service {
	logger := slog.Default()
	classifier := intent.NewClassifier(logger)
	scorer := match.NewScorer(c, nil, match.DefaultOptions(), logger)
	return New(c, classifier, scorer, DefaultOptions(), logger)
}

func testCorpus() *corpus.Corpus {
	return corpus.New([]domain.CorpusEntry{
		{
			Source:       "tentangITB",
			Content:      "Pendaftaran mahasiswa baru ITB dibuka melalui jalur SNBP dan SNBT setiap tahun",
			Category:     "pendaftaran",
			QualityScore: 70,
		},
		{
			Source:       "tentangITB",
			Content:      "Daftar fakultas dan sekolah di ITB beserta program studinya",
			Category:     "akademik",
			QualityScore: 80,
			Links:        []string{"https://itb.ac.id/fakultas"},
		},
	})
}

func TestAnswerQuery_IntentPath(t *testing.T) {
	s := newTestService(testCorpus())
	got := s.AnswerQuery(context.Background(), "apa kepanjangan ITB?")

	assert.Equal(t, domain.SourceIntent, got.Source)
	assert.Equal(t, "kepanjangan_itb", got.Intent)
	assert.GreaterOrEqual(t, got.Confidence, 0.5)
	assert.Contains(t, got.Answer, "Institut Teknologi Bandung")
}

func TestAnswerQuery_IntentPathMinesLinks(t *testing.T) {
	s := newTestService(testCorpus())
	got := s.AnswerQuery(context.Background(), "berapa fakultas di ITB?")

	require.Equal(t, domain.SourceIntent, got.Source)
	assert.Equal(t, "jumlah_fakultas", got.Intent)
	require.True(t, got.HasLinks())
	assert.Equal(t, "https://itb.ac.id/fakultas", got.Links[0].URL)
}

func TestAnswerQuery_CorpusPath(t *testing.T) {
	s := newTestService(testCorpus())
	got := s.AnswerQuery(context.Background(), "bagaimana cara pendaftaran mahasiswa baru lewat SNBP")

	assert.Equal(t, domain.SourceCorpus, got.Source)
	assert.Empty(t, got.Intent)
	assert.Contains(t, got.Answer, "SNBP")
}

func TestAnswerQuery_FallbackTerminal(t *testing.T) {
	s := newTestService(corpus.New(nil))

	for _, q := range []string{"", "z", "xqzw vvkk"} {
		got := s.AnswerQuery(context.Background(), q)
		assert.Equal(t, domain.SourceFallback, got.Source, "query %q", q)
		assert.Equal(t, fallbackAnswer, got.Answer)
		assert.False(t, got.HasLinks())
	}
}

func TestAnswerQuery_AlwaysAnswers(t *testing.T) {
	s := newTestService(testCorpus())
	for _, q := range []string{"apa kepanjangan ITB", "pendaftaran SNBP", "zzzz", "?"} {
		got := s.AnswerQuery(context.Background(), q)
		assert.NotEmpty(t, got.Answer, "query %q", q)
		assert.NotEmpty(t, got.Source, "query %q", q)
		assert.Equal(t, q, got.OriginalQuery)
	}
}

func TestAnswerQuery_ThresholdConfigurable(t *testing.T) {
	c := testCorpus()
	logger := slog.Default()
	classifier := intent.NewClassifier(logger)
	scorer := match.NewScorer(c, nil, match.DefaultOptions(), logger)

	// A prohibitive threshold pushes an intent-worthy query to the corpus.
	strict := New(c, classifier, scorer, Options{ConfidenceThreshold: 0.99, LinkTopK: 3}, logger)
	got := strict.AnswerQuery(context.Background(), "berapa fakultas di ITB?")
	assert.NotEqual(t, domain.SourceIntent, got.Source)
}
