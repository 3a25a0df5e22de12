// Package corpus owns the immutable knowledge-base snapshot. A Corpus is
// constructed once at startup and shared read-only by every query; all
// per-entry token lists are precomputed at load time so scoring never
// mutates shared state.
package corpus

import (
	"strings"

	"github.com/rlukassa/simpanan-backend-1/engine/domain"
	"github.com/rlukassa/simpanan-backend-1/pkg/textnorm"
)

// Entry is a corpus record plus the caches the scorer needs per query.
type Entry struct {
	domain.CorpusEntry

	// ContentLower is the raw content lowercased, for substring checks.
	ContentLower string
	// RawTokens are lowercase whitespace tokens of length > 1.
	RawTokens []string
	// NormTokens are the normalised-content tokens of length > 1.
	NormTokens []string
}

// Corpus is an immutable, ordered collection of entries.
type Corpus struct {
	entries []Entry
}

// New builds a Corpus from loaded records, computing every cache the
// scorer relies on. Records with a missing normalised form get one.
func New(records []domain.CorpusEntry) *Corpus {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		if rec.Normalized == "" {
			rec.Normalized = textnorm.Normalize(rec.Content)
		}
		if rec.Length == 0 {
			rec.Length = len(rec.Content)
		}
		entries = append(entries, Entry{
			CorpusEntry:  rec,
			ContentLower: strings.ToLower(rec.Content),
			RawTokens:    tokensOver(strings.ToLower(rec.Content), 1),
			NormTokens:   tokensOver(rec.Normalized, 1),
		})
	}
	return &Corpus{entries: entries}
}

// Entries returns the entries in load order. Callers must not mutate them.
func (c *Corpus) Entries() []Entry { return c.entries }

// Len returns the number of entries.
func (c *Corpus) Len() int { return len(c.entries) }

// ByCategory returns entries whose category is in the given set.
func (c *Corpus) ByCategory(categories map[string]bool) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if categories[e.Category] {
			out = append(out, e)
		}
	}
	return out
}

// tokensOver splits on whitespace and keeps tokens longer than minLen.
func tokensOver(text string, minLen int) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > minLen {
			out = append(out, f)
		}
	}
	return out
}

// ParseLinks splits a raw link field (space or comma delimited) and keeps
// only absolute http(s) URLs.
func ParseLinks(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == ';'
	})
	var links []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if strings.HasPrefix(f, "http") {
			links = append(links, f)
		}
	}
	return links
}
