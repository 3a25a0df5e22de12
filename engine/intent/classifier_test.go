package intent

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/domain"
)

func TestClassify_KepanjanganITB(t *testing.T) {
	c := NewClassifier(slog.Default())
	got := c.Classify("apa kepanjangan ITB")

	assert.Equal(t, "kepanjangan_itb", got.Intent)
	assert.GreaterOrEqual(t, got.Confidence, 0.5)
}

func TestClassify_JumlahFakultasBeatsCatchAll(t *testing.T) {
	c := NewClassifier(slog.Default())
	got := c.Classify("berapa fakultas di ITB")

	assert.Equal(t, "jumlah_fakultas", got.Intent)
	assert.Greater(t, got.Confidence, got.Breakdown["info_umum_itb"].Final)
}

func TestClassify_LokasiWithTypoCorrection(t *testing.T) {
	c := NewClassifier(slog.Default())
	got := c.Classify("dimana lokasi ITB?")

	assert.Equal(t, "lokasi_itb", got.Intent)
	assert.GreaterOrEqual(t, got.Confidence, 0.5)
	// The informal spelling is rewritten before feature extraction.
	assert.Equal(t, "di mana lokasi itb", got.ProcessedQuery)
}

func TestClassify_InformalQuery(t *testing.T) {
	c := NewClassifier(slog.Default())
	got := c.Classify("apaan sih ITB")

	assert.Equal(t, "kepanjangan_itb", got.Intent)
	assert.Greater(t, got.Confidence, 0.0)
}

func TestClassify_AsalUsulIsHistory(t *testing.T) {
	c := NewClassifier(slog.Default())
	got := c.Classify("asal usul ITB")

	assert.Equal(t, "sejarah_itb", got.Intent)
	assert.Greater(t, got.Breakdown["sejarah_itb"].Keyword, 0.0)
}

func TestClassify_EmptyQuery(t *testing.T) {
	c := NewClassifier(slog.Default())
	got := c.Classify("   ")

	assert.Empty(t, got.Intent)
	assert.Zero(t, got.Confidence)
}

func TestClassify_BreakdownComponents(t *testing.T) {
	c := NewClassifier(slog.Default())
	got := c.Classify("kapan ITB didirikan")

	require.Contains(t, got.Breakdown, "sejarah_itb")
	b := got.Breakdown["sejarah_itb"]
	assert.Equal(t, 1.0, b.MustHave)
	assert.Equal(t, 1.0, b.Should)
	assert.Greater(t, b.Keyword, 0.0)
	assert.InDelta(t, (b.MustHave*0.5+b.Should*0.3+b.Keyword*0.2)*1.0, b.Final, 1e-9)
}

func TestPreprocessQuery(t *testing.T) {
	assert.Equal(t, "bagaimana sih itb", preprocessQuery("Gimana sih ITB?"))
	assert.Equal(t, "apa itu itb", preprocessQuery("  Apa itu ITB!!!  "))
	assert.Equal(t, "", preprocessQuery("???"))
}

func TestAnswer_AllIntentsCovered(t *testing.T) {
	for _, rule := range rules {
		answer, ok := Answer(rule.Name)
		assert.True(t, ok, "intent %s has no answer", rule.Name)
		assert.NotEmpty(t, answer)
	}
	_, ok := Answer("tidak_ada")
	assert.False(t, ok)
}

func TestFindLinks(t *testing.T) {
	c := NewClassifier(slog.Default())
	corp := corpus.New([]domain.CorpusEntry{
		{
			Source:       "tentangITB",
			Content:      "Daftar fakultas dan sekolah di ITB",
			Category:     "akademik",
			QualityScore: 80,
			Links:        []string{"https://itb.ac.id/fakultas", "https://itb.ac.id/sekolah", "https://itb.ac.id/extra"},
		},
		{
			Source:       "tentangITB",
			Content:      "Sejarah berdirinya kampus Ganesa",
			Category:     "sejarah",
			QualityScore: 90,
			Links:        []string{"https://itb.ac.id/sejarah"},
		},
		{
			Source:   "tentangITB",
			Content:  "Fakultas tanpa tautan apa pun",
			Category: "akademik",
		},
	})

	links := c.FindLinks(corp, "berapa fakultas di itb", "jumlah_fakultas", 3)
	require.NotEmpty(t, links)
	// At most two links per entry, only from matching categories.
	assert.Len(t, links, 2)
	for _, l := range links {
		assert.Equal(t, "akademik", l.Category)
		assert.Greater(t, l.Relevance, 0.0)
	}

	assert.Nil(t, c.FindLinks(corp, "berapa fakultas", "tidak_ada", 3))
	assert.Nil(t, c.FindLinks(nil, "berapa fakultas", "jumlah_fakultas", 3))
}
