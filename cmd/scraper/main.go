// Package main implements the institutional page scraper. It harvests the
// seed pages and publishes raw records to NATS for the ingest workers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/rlukassa/simpanan-backend-1/engine/ingest"
	"github.com/rlukassa/simpanan-backend-1/engine/scraper"
	"github.com/rlukassa/simpanan-backend-1/pkg/natsutil"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("scraper exited with error", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nc, err := nats.Connect(envOr("NATS_URL", nats.DefaultURL), nats.Name("simpanan-scraper"))
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Drain()

	s := scraper.New(nil, logger)
	records := s.FetchAll(ctx)
	logger.Info("harvest complete", "records", len(records))

	published := 0
	for _, rec := range records {
		if err := natsutil.Publish(ctx, nc, ingest.IngestSubject, rec); err != nil {
			logger.Error("publish failed", "source", rec.Source, "err", err)
			continue
		}
		published++
	}
	if err := nc.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	logger.Info("scrape run finished", "published", published, "dropped", len(records)-published)
	return nil
}
