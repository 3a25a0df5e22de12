// Package ingest processes scraped records through validation, cleaning,
// categorisation, and quality scoring before appending them to the corpus
// snapshot and, when configured, the vector store.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/domain"
	"github.com/rlukassa/simpanan-backend-1/engine/semantic"
	"github.com/rlukassa/simpanan-backend-1/pkg/fn"
	"github.com/rlukassa/simpanan-backend-1/pkg/natsutil"
	"github.com/rlukassa/simpanan-backend-1/pkg/textnorm"
)

const (
	// IngestSubject is the NATS subject for incoming scraped records.
	IngestSubject = "corpus.ingest"
	// DLQSubject is the dead letter queue subject for failed messages.
	DLQSubject = "corpus.ingest.dlq"
	// QueueGroup shares the subject across ingest workers.
	QueueGroup = "ingest-workers"
	// MaxRetries before a record is parked on the DLQ.
	MaxRetries = 3
)

// Deps holds the external dependencies of the ingest pipeline. VectorStore
// and Vectorizer are optional; without them entries are only appended to
// the snapshot.
type Deps struct {
	SnapshotPath string
	VectorStore  *semantic.VectorStore
	Vectorizer   *semantic.Vectorizer
	Logger       *slog.Logger
}

// --- Pipeline stages ---

// Validate gates raw records through domain validation.
var Validate fn.Stage[domain.ScrapedRecord, domain.ScrapedRecord] = func(_ context.Context, rec domain.ScrapedRecord) fn.Result[domain.ScrapedRecord] {
	if err := domain.ValidateScrapedRecord(rec); err != nil {
		return fn.Err[domain.ScrapedRecord](err)
	}
	return fn.Ok(rec)
}

// Clean strips noise from the content and computes the normalised form.
var Clean fn.Stage[domain.ScrapedRecord, CleanedRecord] = func(_ context.Context, rec domain.ScrapedRecord) fn.Result[CleanedRecord] {
	cleaned := cleanContent(rec.Content)
	if len(cleaned) < domain.MinContentLength {
		return fn.Errf[CleanedRecord]("ingest: content too short after cleaning: %q", cleaned)
	}
	return fn.Ok(CleanedRecord{
		ScrapedRecord: rec,
		Cleaned:       cleaned,
		Normalized:    textnorm.Normalize(cleaned),
	})
}

// Categorize assigns a category by keyword.
var Categorize fn.Stage[CleanedRecord, CategorizedRecord] = func(_ context.Context, rec CleanedRecord) fn.Result[CategorizedRecord] {
	return fn.Ok(CategorizedRecord{CleanedRecord: rec, Category: categorize(rec.Cleaned)})
}

// Score rates the record quality.
var Score fn.Stage[CategorizedRecord, ScoredRecord] = func(_ context.Context, rec CategorizedRecord) fn.Result[ScoredRecord] {
	return fn.Ok(ScoredRecord{CategorizedRecord: rec, QualityScore: qualityScore(rec.Cleaned)})
}

// ToEntry converts a scored record into a corpus entry with a fresh id.
var ToEntry fn.Stage[ScoredRecord, domain.CorpusEntry] = func(_ context.Context, rec ScoredRecord) fn.Result[domain.CorpusEntry] {
	return fn.Ok(domain.CorpusEntry{
		RecordID:     uuid.NewString(),
		Source:       rec.Source,
		Content:      rec.Cleaned,
		Normalized:   rec.Normalized,
		Category:     rec.Category,
		QualityScore: rec.QualityScore,
		Length:       len(rec.Cleaned),
		Links:        rec.Links,
	})
}

// NewStore creates the terminal stage: append to the snapshot and, when a
// vector store is wired, upsert the entry vector.
func NewStore(deps Deps) fn.Stage[domain.CorpusEntry, string] {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	// Appends are serialised: pipeline workers share one snapshot file.
	var mu sync.Mutex
	return func(ctx context.Context, entry domain.CorpusEntry) fn.Result[string] {
		mu.Lock()
		err := corpus.AppendFile(deps.SnapshotPath, []domain.CorpusEntry{entry})
		mu.Unlock()
		if err != nil {
			return fn.Err[string](fmt.Errorf("ingest: snapshot append: %w", err))
		}

		if deps.VectorStore != nil && deps.Vectorizer != nil {
			rec := semantic.VectorRecord{
				ID:        entry.RecordID,
				Embedding: deps.Vectorizer.Vector(entry.Normalized),
				Payload: map[string]any{
					"record_id": entry.RecordID,
					"source":    entry.Source,
					"category":  entry.Category,
					"content":   entry.Content,
				},
			}
			if err := deps.VectorStore.Upsert(ctx, []semantic.VectorRecord{rec}); err != nil {
				// The snapshot write already succeeded; vector loss only
				// degrades one optional ranking strategy.
				log.Warn("vector upsert failed", "record_id", entry.RecordID, "err", err)
			}
		}

		return fn.Ok(entry.RecordID)
	}
}

// LoggedTap returns a pass-through stage that logs entry with duration.
func LoggedTap[T any](name string, log *slog.Logger) fn.Stage[T, T] {
	return func(_ context.Context, t T) fn.Result[T] {
		log.Info("stage.enter", "stage", name)
		start := time.Now()
		defer func() {
			log.Info("stage.exit", "stage", name, "duration", time.Since(start))
		}()
		return fn.Ok(t)
	}
}

// NewPipeline composes the full ingest pipeline.
func NewPipeline(deps Deps) fn.Stage[domain.ScrapedRecord, string] {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	validated := fn.Then(LoggedTap[domain.ScrapedRecord]("validate", log), Validate)
	cleaned := fn.Then(validated, Clean)
	categorized := fn.Then(cleaned, Categorize)
	scored := fn.Then(categorized, Score)
	entry := fn.Then(scored, ToEntry)
	return fn.Then(entry, NewStore(deps))
}

// ProcessBatch runs a batch of records through the pipeline with bounded
// concurrency and returns the ids of stored entries. Failed records are
// logged and dropped.
func ProcessBatch(ctx context.Context, deps Deps, records []domain.ScrapedRecord, workers int) []string {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	pipeline := NewPipeline(deps)

	var ids []string
	for i, r := range fn.ParMapResult(records, workers, func(rec domain.ScrapedRecord) fn.Result[string] {
		return pipeline(ctx, rec)
	}) {
		id, err := r.Unwrap()
		if err != nil {
			log.Warn("record dropped", "index", i, "err", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// DLQMessage is published to the DLQ on repeated failure.
type DLQMessage struct {
	Record  domain.ScrapedRecord `json:"record"`
	Error   string               `json:"error"`
	Retries int                  `json:"retries"`
}

// StartConsumer subscribes the ingest pipeline to the scraper subject via
// a queue group, with retry and DLQ handling.
func StartConsumer(nc *nats.Conn, deps Deps) (*nats.Subscription, error) {
	pipeline := NewPipeline(deps)
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return nc.QueueSubscribe(IngestSubject, QueueGroup, func(msg *nats.Msg) {
		var rec domain.ScrapedRecord
		if err := json.Unmarshal(msg.Data, &rec); err != nil {
			log.Error("ingest: unmarshal failed", "err", err)
			return
		}

		retries := 0
		if msg.Header != nil {
			if v := msg.Header.Get("X-Retry-Count"); v != "" {
				retries, _ = strconv.Atoi(v)
			}
		}

		ctx := context.Background()
		result := pipeline(ctx, rec)
		if result.IsErr() {
			_, pipeErr := result.Unwrap()
			retries++
			log.Error("ingest: pipeline failed",
				"err", pipeErr,
				"source", rec.Source,
				"retry", retries,
			)

			if retries >= MaxRetries {
				dlq := DLQMessage{Record: rec, Error: pipeErr.Error(), Retries: retries}
				if err := natsutil.Publish(ctx, nc, DLQSubject, dlq); err != nil {
					log.Error("ingest: dlq publish failed", "err", err)
				}
				return
			}

			retry := nats.NewMsg(IngestSubject)
			retry.Data = msg.Data
			retry.Header.Set("X-Retry-Count", strconv.Itoa(retries))
			if err := nc.PublishMsg(retry); err != nil {
				log.Error("ingest: retry publish failed", "err", err)
			}
			return
		}

		id, _ := result.Unwrap()
		log.Info("ingest: record stored", "record_id", id, "source", rec.Source)
	})
}
