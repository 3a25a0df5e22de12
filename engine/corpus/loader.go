package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rlukassa/simpanan-backend-1/engine/domain"
)

// Snapshot column names. The loader resolves columns by header name, so
// column order and extra columns do not matter.
const (
	colRecordID = "record_id"
	colSource   = "data_source"
	colContent  = "content"
	colCleaned  = "content_cleaned"
	colCategory = "category"
	colQuality  = "quality_score"
	colLength   = "content_length"
	colLinks    = "links"
)

// defaultQuality is assigned to rows from snapshots without a score column.
const defaultQuality = 50

// LoadFile reads one CSV snapshot. Rows missing required fields are skipped
// individually; a file that cannot be parsed at all returns
// domain.ErrCorpusUnreadable so callers can distinguish data corruption
// from an ordinary empty corpus.
func LoadFile(path string, log *slog.Logger) ([]domain.CorpusEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("corpus: read header %s: %w: %v", path, domain.ErrCorpusUnreadable, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col[colContent]; !ok {
		return nil, fmt.Errorf("corpus: %s missing %q column: %w", path, colContent, domain.ErrCorpusUnreadable)
	}

	source := strings.TrimSuffix(filepath.Base(path), ".csv")

	var entries []domain.CorpusEntry
	skipped := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A single bad row is skipped, not fatal.
			skipped++
			continue
		}
		entry, ok := entryFromRow(row, col, source)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	log.Info("corpus file loaded", "path", path, "entries", len(entries), "skipped", skipped)
	return entries, nil
}

func entryFromRow(row []string, col map[string]int, fallbackSource string) (domain.CorpusEntry, bool) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	content := field(colContent)
	if len(content) < domain.MinContentLength {
		return domain.CorpusEntry{}, false
	}

	source := field(colSource)
	if source == "" {
		source = fallbackSource
	}
	category := field(colCategory)
	if category == "" {
		category = "uncategorized"
	}
	quality := defaultQuality
	if q, err := strconv.Atoi(field(colQuality)); err == nil {
		quality = q
	}
	length := len(content)
	if n, err := strconv.Atoi(field(colLength)); err == nil && n > 0 {
		length = n
	}

	return domain.CorpusEntry{
		RecordID:     field(colRecordID),
		Source:       source,
		Content:      content,
		Normalized:   field(colCleaned),
		Category:     category,
		QualityScore: float64(quality),
		Length:       length,
		Links:        ParseLinks(field(colLinks)),
	}, true
}

// LoadDir loads every *.csv under dir in name order. A missing or empty
// directory yields an empty corpus, never an error: the matcher degrades to
// its fallback intents instead of crashing.
func LoadDir(dir string, log *slog.Logger) *Corpus {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil || len(paths) == 0 {
		log.Warn("no corpus files found, matcher degrades to fallback intents", "dir", dir)
		return New(nil)
	}
	sort.Strings(paths)

	var all []domain.CorpusEntry
	for _, p := range paths {
		entries, err := LoadFile(p, log)
		if err != nil {
			log.Error("corpus file unreadable, skipping", "path", p, "err", err)
			continue
		}
		all = append(all, entries...)
	}
	return New(all)
}

// AppendFile appends entries to a CSV snapshot, writing the header first
// when the file is new. Used by the ingest pipeline.
func AppendFile(path string, entries []domain.CorpusEntry) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("corpus: append %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{colRecordID, colSource, colContent, colCleaned, colCategory, colQuality, colLength, colLinks}); err != nil {
			return fmt.Errorf("corpus: write header: %w", err)
		}
	}
	for _, e := range entries {
		row := []string{
			e.RecordID,
			e.Source,
			e.Content,
			e.Normalized,
			e.Category,
			strconv.Itoa(int(e.QualityScore)),
			strconv.Itoa(e.Length),
			strings.Join(e.Links, " "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("corpus: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
