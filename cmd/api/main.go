// Package main implements the question-answering API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rlukassa/simpanan-backend-1/engine/answer"
	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/domain"
	"github.com/rlukassa/simpanan-backend-1/engine/intent"
	"github.com/rlukassa/simpanan-backend-1/engine/match"
	"github.com/rlukassa/simpanan-backend-1/engine/semantic"
	"github.com/rlukassa/simpanan-backend-1/pkg/metrics"
	"github.com/rlukassa/simpanan-backend-1/pkg/mid"
)

// Config holds all environment-based configuration.
type Config struct {
	Port       string
	CorpusDir  string
	QdrantURL  string
	Collection string
	CORSOrigin string
	RateRPS    float64
	RateBurst  int
}

func loadConfig() Config {
	return Config{
		Port:       envOr("PORT", "8080"),
		CorpusDir:  envOr("CORPUS_DIR", "data"),
		QdrantURL:  envOr("QDRANT_URL", ""),
		Collection: envOr("QDRANT_COLLECTION", "simpanan"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
		RateRPS:    envFloat("RATE_RPS", 20),
		RateBurst:  envInt("RATE_BURST", 40),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Load the corpus snapshot ---
	corp := corpus.LoadDir(cfg.CorpusDir, logger)
	logger.Info("corpus loaded", "entries", corp.Len())

	// --- Vector strategy: in-process index, or Qdrant when configured ---
	index := semantic.BuildIndex(corp)
	var vectors match.VectorSearcher = index
	if cfg.QdrantURL != "" {
		store, err := semantic.NewStore(cfg.QdrantURL, cfg.Collection)
		if err != nil {
			return fmt.Errorf("qdrant connect: %w", err)
		}
		defer store.Close()
		if err := index.Sync(ctx, store, corp); err != nil {
			return fmt.Errorf("qdrant sync: %w", err)
		}
		logger.Info("corpus synced to vector store", "collection", cfg.Collection)
		vectors = semantic.NewRemoteSearcher(store, index.Vectorizer(), 10)
	}

	// --- Build the answering service ---
	classifier := intent.NewClassifier(logger)
	scorer := match.NewScorer(corp, vectors, match.DefaultOptions(), logger)
	svc := answer.New(corp, classifier, scorer, answer.DefaultOptions(), logger)

	// --- Metrics ---
	reg := metrics.New()
	reg.Gauge("corpus_entries", "Number of loaded corpus entries").Set(int64(corp.Len()))

	// --- Build HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("POST /api/ask", handleAsk(svc, reg, logger))
	mux.Handle("GET /metrics", reg.Handler())

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.RequestID(),
		mid.Logger(logger),
		mid.RateLimit(cfg.RateRPS, cfg.RateBurst),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("simpanan-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// --- Handlers ---

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// AskRequest is the JSON body for POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the JSON response for POST /api/ask. The camelCase keys
// are a published client contract and must not change.
type AskResponse struct {
	Answer         string        `json:"answer"`
	Source         string        `json:"source"`
	Intent         string        `json:"intent,omitempty"`
	Confidence     float64       `json:"confidence,omitempty"`
	ProcessedQuery string        `json:"processedQuery"`
	Links          []domain.Link `json:"links,omitempty"`
	HasLinks       bool          `json:"hasLinks"`
}

func handleAsk(svc *answer.Service, reg *metrics.Registry, logger *slog.Logger) http.HandlerFunc {
	duration := reg.Histogram("ask_duration_seconds", "Latency of /api/ask", nil)

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Question == "" {
			http.Error(w, `{"error":"question is required"}`, http.StatusBadRequest)
			return
		}

		result := svc.AnswerQuery(r.Context(), req.Question)
		reg.Counter(metrics.WithLabels("answers_total", "source", string(result.Source)),
			"Answers served by source").Inc()
		duration.Since(start)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AskResponse{
			Answer:         result.Answer,
			Source:         string(result.Source),
			Intent:         result.Intent,
			Confidence:     result.Confidence,
			ProcessedQuery: result.NormalizedQuery,
			Links:          result.Links,
			HasLinks:       result.HasLinks(),
		})
	}
}
