// Package main implements the ingest worker. It consumes scraped records
// from NATS, runs them through the ingest pipeline, and appends accepted
// entries to the corpus snapshot and the vector store when configured.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/ingest"
	"github.com/rlukassa/simpanan-backend-1/engine/semantic"
	"github.com/rlukassa/simpanan-backend-1/pkg/metrics"
	"github.com/rlukassa/simpanan-backend-1/pkg/natsutil"
)

// Config holds all environment-based configuration.
type Config struct {
	NATSURL      string
	CorpusDir    string
	SnapshotPath string
	QdrantURL    string
	Collection   string
	MetricsPort  int
}

func loadConfig() Config {
	return Config{
		NATSURL:      envOr("NATS_URL", nats.DefaultURL),
		CorpusDir:    envOr("CORPUS_DIR", "data"),
		SnapshotPath: envOr("SNAPSHOT_PATH", "data/ingested.csv"),
		QdrantURL:    envOr("QDRANT_URL", ""),
		Collection:   envOr("QDRANT_COLLECTION", "simpanan"),
		MetricsPort:  envInt("METRICS_PORT", 9091),
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

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("ingest worker exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nc, err := nats.Connect(cfg.NATSURL, nats.Name("simpanan-ingest"))
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Drain()

	deps := ingest.Deps{
		SnapshotPath: cfg.SnapshotPath,
		Logger:       logger,
	}

	// The vector store is optional: the vectorizer is fitted on the
	// current snapshot so new entries land in the same space the API
	// queries in.
	if cfg.QdrantURL != "" {
		corp := corpus.LoadDir(cfg.CorpusDir, logger)
		index := semantic.BuildIndex(corp)

		store, err := semantic.NewStore(cfg.QdrantURL, cfg.Collection)
		if err != nil {
			return fmt.Errorf("qdrant connect: %w", err)
		}
		defer store.Close()
		if err := store.EnsureCollection(ctx, index.Vectorizer().Dims()); err != nil {
			return fmt.Errorf("qdrant collection: %w", err)
		}

		deps.VectorStore = store
		deps.Vectorizer = index.Vectorizer()
	}

	sub, err := ingest.StartConsumer(nc, deps)
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer sub.Unsubscribe()

	reg := metrics.New()
	reg.Gauge("ingest_worker_up", "Ingest worker liveness").Set(1)
	dlqCounter := reg.Counter("ingest_dlq_total", "Records parked on the dead letter queue")

	dlqSub, err := natsutil.Subscribe(nc, ingest.DLQSubject, func(_ context.Context, dlq ingest.DLQMessage) {
		dlqCounter.Inc()
		logger.Warn("record dead-lettered",
			"source", dlq.Record.Source,
			"retries", dlq.Retries,
			"err", dlq.Error,
		)
	})
	if err != nil {
		return fmt.Errorf("dlq subscribe: %w", err)
	}
	defer dlqSub.Unsubscribe()

	reg.ServeAsync(cfg.MetricsPort)

	logger.Info("ingest worker started",
		"subject", ingest.IngestSubject,
		"queue", ingest.QueueGroup,
		"snapshot", cfg.SnapshotPath,
	)

	<-ctx.Done()
	logger.Info("shutdown signal received")
	return nil
}
