package semantic

import (
	"context"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
)

// Index is an in-process cosine index over a corpus. Vectors are built once
// from the corpus at startup; lookups never mutate shared state, so an
// Index is safe for concurrent use.
type Index struct {
	vectorizer *Vectorizer
	vectors    [][]float32
}

// BuildIndex fits a vectorizer on the corpus and materialises one vector
// per entry, in entry order.
func BuildIndex(c *corpus.Corpus) *Index {
	entries := c.Entries()
	docs := make([]string, len(entries))
	for i, e := range entries {
		docs[i] = e.Normalized
	}

	vec := NewVectorizer(docs)
	vectors := make([][]float32, len(docs))
	for i, doc := range docs {
		vectors[i] = vec.Vector(doc)
	}
	return &Index{vectorizer: vec, vectors: vectors}
}

// Vectorizer returns the fitted vectorizer, shared with any remote backend
// so both score queries in the same space.
func (ix *Index) Vectorizer() *Vectorizer { return ix.vectorizer }

// Sync mirrors the indexed corpus into the vector store. Points are keyed
// by entry index so every sync overwrites the previous snapshot in place,
// and the entry_index payload lets remote hits map back to corpus entries.
func (ix *Index) Sync(ctx context.Context, store *VectorStore, c *corpus.Corpus) error {
	if err := store.EnsureCollection(ctx, ix.vectorizer.Dims()); err != nil {
		return err
	}

	entries := c.Entries()
	records := make([]VectorRecord, len(entries))
	for i, e := range entries {
		records[i] = VectorRecord{
			NumID:     uint64(i),
			Embedding: ix.vectors[i],
			Payload: map[string]any{
				"record_id":   e.RecordID,
				"source":      e.Source,
				"category":    e.Category,
				"content":     e.Content,
				"entry_index": i,
			},
		}
	}
	return store.Upsert(ctx, records)
}

// Scores returns the cosine similarity of the query against every entry
// with a positive score, keyed by entry index. Vectors are L2-normalised
// at build time, so cosine reduces to a dot product.
func (ix *Index) Scores(_ context.Context, query string) (map[int]float64, error) {
	qv := ix.vectorizer.Vector(query)

	scores := make(map[int]float64)
	for i, ev := range ix.vectors {
		var dot float64
		for j, q := range qv {
			if q != 0 && ev[j] != 0 {
				dot += float64(q) * float64(ev[j])
			}
		}
		if dot > 0 {
			scores[i] = dot
		}
	}
	return scores, nil
}
