package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlukassa/simpanan-backend-1/engine/answer"
	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/domain"
	"github.com/rlukassa/simpanan-backend-1/engine/intent"
	"github.com/rlukassa/simpanan-backend-1/engine/match"
	"github.com/rlukassa/simpanan-backend-1/pkg/metrics"
)

func newTestHandler() http.HandlerFunc {
	logger := slog.Default()
	corp := corpus.New([]domain.CorpusEntry{
		{
			Source:       "tentangITB",
			Content:      "Pendaftaran mahasiswa baru ITB dibuka melalui jalur SNBP dan SNBT setiap tahun",
			Category:     "pendaftaran",
			QualityScore: 70,
		},
	})
	classifier := intent.NewClassifier(logger)
	scorer := match.NewScorer(corp, nil, match.DefaultOptions(), logger)
	svc := answer.New(corp, classifier, scorer, answer.DefaultOptions(), logger)
	return handleAsk(svc, metrics.New(), logger)
}

func TestHandleAsk_IntentAnswer(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ask",
		strings.NewReader(`{"question":"apa kepanjangan ITB?"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "intent_detector", resp.Source)
	assert.Equal(t, "kepanjangan_itb", resp.Intent)
	assert.GreaterOrEqual(t, resp.Confidence, 0.5)
	assert.NotEmpty(t, resp.Answer)
	assert.NotEmpty(t, resp.ProcessedQuery)
}

func TestHandleAsk_FallbackAnswer(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ask",
		strings.NewReader(`{"question":"xqzw vvkk"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fallback", resp.Source)
	assert.False(t, resp.HasLinks)
}

func TestHandleAsk_ResponseKeys(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ask",
		strings.NewReader(`{"question":"apa kepanjangan ITB?"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	// Clients are written against these exact keys.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "processedQuery")
	assert.Contains(t, raw, "hasLinks")
	assert.NotContains(t, raw, "processed_query")
	assert.NotContains(t, raw, "has_links")
}

func TestHandleAsk_BadRequests(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ask", strings.NewReader(`{not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ask", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAsk_CountsBySource(t *testing.T) {
	logger := slog.Default()
	corp := corpus.New(nil)
	svc := answer.New(corp, intent.NewClassifier(logger),
		match.NewScorer(corp, nil, match.DefaultOptions(), logger), answer.DefaultOptions(), logger)
	reg := metrics.New()
	h := handleAsk(svc, reg, logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ask",
		strings.NewReader(`{"question":"zzzz"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, reg.Render(), `answers_total{source="fallback"} 1`)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data", cfg.CorpusDir)
	assert.Equal(t, "*", cfg.CORSOrigin)
}
